package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
)

// PageController serves the informational pages and the feedback forms
type PageController struct {
	shell
}

// NewPageController creates a new PageController
func NewPageController(session *services.SessionStore, notifications *services.NotificationStore, logger zerolog.Logger) *PageController {
	return &PageController{shell{session: session, notifications: notifications, logger: logger}}
}

// Static returns a handler rendering a view that needs no data
func (p *PageController) Static(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.view(c, http.StatusOK, name, nil, dto.HomeAction)
	}
}

// SubmitContact sends the contact form
func (p *PageController) SubmitContact(c *gin.Context) {
	form, ok := middleware.BindAndValidate[dto.ContactForm](c)
	if !ok {
		return
	}
	res := p.session.SubmitFeedback(c.Request.Context(), form.ToFeedback())
	respond(p.shell, c, res, http.StatusOK, "Thanks for contacting us")
}

// SubmitFeedback sends the feedback form, signed with the current user if any
func (p *PageController) SubmitFeedback(c *gin.Context) {
	form, ok := middleware.BindAndValidate[dto.FeedbackForm](c)
	if !ok {
		return
	}

	feedback := models.Feedback{Text: form.Text}
	if user, ok := p.session.CurrentUser(); ok {
		feedback.Name = user.DisplayName()
		feedback.Email = user.Email
	}
	res := p.session.SubmitFeedback(c.Request.Context(), feedback)
	respond(p.shell, c, res, http.StatusOK, "Thanks for your feedback")
}

// Healthz reports liveness
func (p *PageController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
