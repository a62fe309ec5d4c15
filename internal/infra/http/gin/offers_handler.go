package ginserver

import (
	"context"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
)

type OffersHTTP interface {
	List(c *gin.Context)
}

// OffersFeed never fails; a degraded feed serves the built-in samples.
type OffersFeed interface {
	Fetch(ctx context.Context) []offers.Offer
}

type OffersHandler struct {
	Feed OffersFeed
}

func (h OffersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewOffersResponse(h.Feed.Fetch(c.Request.Context())))
}

var _ OffersHTTP = (*OffersHandler)(nil)
