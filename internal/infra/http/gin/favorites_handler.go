package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/favorites"
)

type FavoritesHTTP interface {
	List(c *gin.Context)
	AddHotel(c *gin.Context)
	RemoveHotel(c *gin.Context)
	AddOffer(c *gin.Context)
	RemoveOffer(c *gin.Context)
}

type FavoritesHandler struct {
	Store  favorites.Store
	Logger *slog.Logger
}

func (h FavoritesHandler) List(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	list, err := h.Store.ListByUser(c.Request.Context(), principal.ID)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFavoritesResponse(list))
}

func (h FavoritesHandler) AddHotel(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AddFavoriteHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotel name is required"})
		return
	}
	if err := h.Store.AddHotel(c.Request.Context(), principal.ID, req.Hotel); err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.respondList(c, principal.ID)
}

func (h FavoritesHandler) RemoveHotel(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.RemoveFavoriteHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.Store.RemoveHotel(c.Request.Context(), principal.ID, req.Key()); err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.respondList(c, principal.ID)
}

func (h FavoritesHandler) AddOffer(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AddFavoriteOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer id is required"})
		return
	}
	if err := h.Store.AddOffer(c.Request.Context(), principal.ID, req.Offer); err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.respondList(c, principal.ID)
}

func (h FavoritesHandler) RemoveOffer(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.RemoveFavoriteOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.Store.RemoveOffer(c.Request.Context(), principal.ID, req.Key()); err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.respondList(c, principal.ID)
}

func (h FavoritesHandler) respondList(c *gin.Context, userID string) {
	list, err := h.Store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFavoritesResponse(list))
}

func (h FavoritesHandler) respondStoreError(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.Error("favorites operation failed", "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

var _ FavoritesHTTP = (*FavoritesHandler)(nil)
