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

// EventController handles event listing and management
type EventController struct {
	shell
}

// NewEventController creates a new EventController
func NewEventController(session *services.SessionStore, notifications *services.NotificationStore, logger zerolog.Logger) *EventController {
	return &EventController{shell{session: session, notifications: notifications, logger: logger}}
}

// ListEvents renders the cached events
func (e *EventController) ListEvents(c *gin.Context) {
	e.view(c, http.StatusOK, "events", gin.H{
		"events":  e.session.Events(),
		"loading": e.session.Loading(),
	})
}

// CreateEvent validates the event form and creates the event
func (e *EventController) CreateEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	form, ok := middleware.BindAndValidate[dto.EventForm](c)
	if !ok {
		return
	}

	res := e.session.AddEvent(c.Request.Context(), form.ToModel(user.ID))
	respond(e.shell, c, res, http.StatusCreated, "Event created")
}

// DeleteEvent deletes an event
func (e *EventController) DeleteEvent(c *gin.Context) {
	res := e.session.DeleteEvent(c.Request.Context(), models.ID(c.Param("id")))
	respond(e.shell, c, res, http.StatusOK, "Event deleted")
}

// JoinEvent registers the current user for an event
func (e *EventController) JoinEvent(c *gin.Context) {
	res := e.session.JoinEvent(c.Request.Context(), models.ID(c.Param("id")))
	respond(e.shell, c, res, http.StatusCreated, "You have joined the event")
}
