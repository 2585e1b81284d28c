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

// UserController handles the dashboard and profile pages
type UserController struct {
	shell
}

// NewUserController creates a new UserController
func NewUserController(session *services.SessionStore, notifications *services.NotificationStore, logger zerolog.Logger) *UserController {
	return &UserController{shell{session: session, notifications: notifications, logger: logger}}
}

// Dashboard renders the dashboard matching the user's profile type
func (u *UserController) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}

	loading := u.session.Loading()
	switch user.ProfileType {
	case models.ProfileStudent:
		events := u.session.Events()
		accommodations := u.session.Accommodations()
		feed := make([]interface{}, 0, len(events)+len(accommodations))
		for _, e := range events {
			feed = append(feed, e)
		}
		for _, a := range accommodations {
			feed = append(feed, a)
		}
		u.view(c, http.StatusOK, "studentDashboard", gin.H{
			"user":     user,
			"feed":     feed,
			"bookings": u.session.Bookings(),
			"loading":  loading,
		})

	case models.ProfileEventOrganiser:
		own := make([]models.Event, 0)
		for _, e := range u.session.Events() {
			if e.OrganiserID == user.ID {
				own = append(own, e)
			}
		}
		u.view(c, http.StatusOK, "eventOrganiserDashboard", gin.H{
			"user":    user,
			"events":  own,
			"loading": loading,
		}, dto.Action{Label: "Add Event", Href: "/events"})

	case models.ProfileAccommodationProvider:
		own := make([]models.Accommodation, 0)
		for _, a := range u.session.Accommodations() {
			if a.ProviderID == user.ID {
				own = append(own, a)
			}
		}
		u.view(c, http.StatusOK, "accommodationProviderDashboard", gin.H{
			"user":           user,
			"accommodations": own,
			"loading":        loading,
		}, dto.Action{Label: "Add Accommodation", Href: "/accommodations"})

	default:
		u.logger.Warn().Str("profileType", string(user.ProfileType)).Msg("Unknown profile type, sending to login")
		c.Redirect(http.StatusSeeOther, services.RouteLogin)
	}
}

// GetProfile renders the profile page
func (u *UserController) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	u.view(c, http.StatusOK, "profile", user)
}

// UpdateProfile applies the profile form to the current user and saves it
func (u *UserController) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	form, ok := middleware.BindAndValidate[dto.ProfileForm](c)
	if !ok {
		return
	}

	res := u.session.UpdateProfile(c.Request.Context(), form.Apply(user))
	respond(u.shell, c, res, http.StatusOK, "Profile updated")
}
