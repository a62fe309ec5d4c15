package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	tripsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/trips"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/pricing"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
)

type ReservationHTTP interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Extend(c *gin.Context)
	Shorten(c *gin.Context)
	RefundEstimate(c *gin.Context)
	Remove(c *gin.Context)
}

type ReservationHandler struct {
	Service *tripsvc.Service
	Logger  *slog.Logger
}

func (h ReservationHandler) Create(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, checkOut := req.Dates()
	created, err := h.Service.Create(c.Request.Context(), tripsvc.CreateParams{
		UserID:      principal.ID,
		HotelName:   req.HotelName,
		PlaceID:     req.PlaceID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
		Notes:       req.Notes,
		RoomTierID:  req.RoomTierID,
		HotelRating: req.HotelRating,
	})
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapReservation(created))
}

func (h ReservationHandler) List(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	trips, err := h.Service.List(c.Request.Context(), principal.ID)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TripListResponse{
		Upcoming: dto.MapReservations(trips.Upcoming),
		Past:     dto.MapReservations(trips.Past),
	})
}

func (h ReservationHandler) Extend(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	updated, err := h.Service.Extend(c.Request.Context(), principal.ID, c.Param("id"))
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(updated))
}

func (h ReservationHandler) Shorten(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	updated, err := h.Service.Shorten(c.Request.Context(), principal.ID, c.Param("id"))
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(updated))
}

func (h ReservationHandler) RefundEstimate(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	refund, err := h.Service.RefundEstimate(c.Request.Context(), principal.ID, c.Param("id"))
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RemoveReservationResponse{RefundEstimate: refund})
}

func (h ReservationHandler) Remove(c *gin.Context) {
	principal, ok := requireUser(c)
	if !ok {
		return
	}
	refund, err := h.Service.Remove(c.Request.Context(), principal.ID, c.Param("id"))
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RemoveReservationResponse{RefundEstimate: refund})
}

func (h ReservationHandler) respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
	case errors.Is(err, reservation.ErrGuestNameRequired),
		errors.Is(err, reservation.ErrDatesRequired),
		errors.Is(err, reservation.ErrHotelNameRequired),
		errors.Is(err, reservation.ErrInvalidNights),
		errors.Is(err, pricing.ErrUnknownTier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrCapacityExceeded),
		errors.Is(err, reservation.ErrShortenBelowCheckIn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("reservation operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ReservationHTTP = (*ReservationHandler)(nil)
