package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/prefs"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/file"
)

type PreferencesHTTP interface {
	Get(c *gin.Context)
	Update(c *gin.Context)
}

type PreferencesHandler struct {
	Store *file.PrefsStore
}

func (h PreferencesHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPreferencesResponse(h.Store.Language(), h.Store.Theme()))
}

func (h PreferencesHandler) Update(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language != "" {
		if lang, ok := prefs.ParseLanguage(req.Language); ok {
			h.Store.SetLanguage(lang)
		}
	}
	if req.Theme != "" {
		if theme, ok := prefs.ParseTheme(req.Theme); ok {
			h.Store.SetTheme(theme)
		}
	}
	c.JSON(http.StatusOK, dto.NewPreferencesResponse(h.Store.Language(), h.Store.Theme()))
}

var _ PreferencesHTTP = (*PreferencesHandler)(nil)
