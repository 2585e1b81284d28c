package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// AccommodationController handles accommodation listings and bookings
type AccommodationController struct {
	shell
}

// NewAccommodationController creates a new AccommodationController
func NewAccommodationController(session *services.SessionStore, notifications *services.NotificationStore, logger zerolog.Logger) *AccommodationController {
	return &AccommodationController{shell{session: session, notifications: notifications, logger: logger}}
}

// ListAccommodations renders the cached accommodations
func (a *AccommodationController) ListAccommodations(c *gin.Context) {
	a.view(c, http.StatusOK, "accommodations", gin.H{
		"accommodations": a.session.Accommodations(),
		"loading":        a.session.Loading(),
	})
}

// CreateAccommodation validates the listing form and creates the listing
func (a *AccommodationController) CreateAccommodation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	form, ok := middleware.BindAndValidate[dto.AccommodationForm](c)
	if !ok {
		return
	}

	res := a.session.AddAccommodation(c.Request.Context(), form.ToModel(user.ID))
	respond(a.shell, c, res, http.StatusCreated, "Accommodation listed")
}

// DeleteAccommodation deletes a listing
func (a *AccommodationController) DeleteAccommodation(c *gin.Context) {
	res := a.session.DeleteAccommodation(c.Request.Context(), models.ID(c.Param("id")))
	respond(a.shell, c, res, http.StatusOK, "Accommodation deleted")
}

// BookAccommodation books a listing for the current user
func (a *AccommodationController) BookAccommodation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	form, ok := middleware.BindAndValidate[dto.BookingForm](c)
	if !ok {
		return
	}

	booking := form.ToModel(models.ID(c.Param("id")), user.ID)
	res := a.session.BookAccommodation(c.Request.Context(), booking)
	respond(a.shell, c, res, http.StatusCreated, "Booking confirmed")
}

// ListBookings renders the cached bookings
func (a *AccommodationController) ListBookings(c *gin.Context) {
	a.view(c, http.StatusOK, "bookings", gin.H{
		"bookings": a.session.Bookings(),
		"loading":  a.session.Loading(),
	})
}
