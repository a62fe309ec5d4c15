package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	domainuser "github.com/CristhianAlv-ing/HotelFind/internal/domain/user"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/s3"
)

const maxAvatarBytes = 5 << 20

type ProfileHTTP interface {
	Update(c *gin.Context)
	UploadAvatar(c *gin.Context)
}

type ProfileHandler struct {
	Users   domainuser.Repository
	Avatars s3.AvatarUploader
	Logger  *slog.Logger
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h ProfileHandler) Update(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.Users.ByID(c.Request.Context(), domainuser.ID(principal.ID))
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	if req.Name != "" {
		if err := user.UpdateName(req.Name, time.Now()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(user))
}

func (h ProfileHandler) UploadAvatar(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	if h.Avatars == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage unavailable"})
		return
	}
	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if header.Size > maxAvatarBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar exceeds the size limit"})
		return
	}
	source, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is unreadable"})
		return
	}
	defer source.Close()

	publicURL, err := h.Avatars.UploadAvatar(c.Request.Context(), principal.ID, source, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, s3.ErrUnsupportedImage) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		h.respondProfileError(c, err)
		return
	}

	user, err := h.Users.ByID(c.Request.Context(), domainuser.ID(principal.ID))
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	user.SetProfileImage(publicURL, time.Now())
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(user))
}

func (h ProfileHandler) respondProfileError(c *gin.Context, err error) {
	if errors.Is(err, domainuser.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if h.Logger != nil {
		h.Logger.Error("profile operation failed", "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

var _ ProfileHTTP = (*ProfileHandler)(nil)
