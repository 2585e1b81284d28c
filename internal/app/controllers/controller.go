// Package controllers maps shell requests onto store operations and renders
// the JSON view models the front end draws.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
)

// actionFailedStatus answers an action the backend refused or could not complete
const actionFailedStatus = http.StatusUnprocessableEntity

// shell bundles what every controller needs to render a response
type shell struct {
	session       *services.SessionStore
	notifications *services.NotificationStore
	logger        zerolog.Logger
}

// view renders a named view with the UI chrome state
func (s shell) view(c *gin.Context, status int, name string, data interface{}, actions ...dto.Action) {
	resp := dto.ViewResponse{
		View:     name,
		Data:     data,
		Actions:  actions,
		DarkMode: s.session.DarkMode(),
	}
	if snackbar, ok := s.notifications.Current(); ok {
		resp.Snackbar = &dto.Snackbar{Message: snackbar.Message, Severity: string(snackbar.Severity)}
	}
	c.JSON(status, resp)
}

// respond writes a store Result. Failures also raise an error toast.
func respond[T any](s shell, c *gin.Context, res services.Result[T], status int, successMessage string) {
	if !res.Success {
		s.notifications.ShowSnackbar(res.Message, services.SeverityError)
		c.JSON(actionFailedStatus, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, res.Message),
		).WithRedirect(res.Redirect))
		return
	}

	message := successMessage
	if res.Message != "" {
		message = res.Message
	}
	if message != "" {
		s.notifications.ShowSnackbar(message, services.SeveritySuccess)
	}
	resp := dto.NewSuccessResponse(res.Record, message)
	resp.Redirect = res.Redirect
	c.JSON(status, resp)
}
