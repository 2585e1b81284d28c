package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
)

// UIController exposes the dark mode, dialog and toast state
type UIController struct {
	shell
	dialogs *services.DialogStore
}

// NewUIController creates a new UIController
func NewUIController(
	session *services.SessionStore,
	dialogs *services.DialogStore,
	notifications *services.NotificationStore,
	logger zerolog.Logger,
) *UIController {
	return &UIController{
		shell:   shell{session: session, notifications: notifications, logger: logger},
		dialogs: dialogs,
	}
}

type dialogRequest struct {
	Type  string                 `json:"type" validate:"notblank"`
	Props map[string]interface{} `json:"props"`
}

type snackbarRequest struct {
	Message  string `json:"message" validate:"notblank"`
	Severity string `json:"severity" validate:"omitempty,oneof=success info warning error"`
}

// State renders the UI state
func (u *UIController) State(c *gin.Context) {
	state := gin.H{
		"darkMode": u.session.DarkMode(),
		"dialog":   u.dialogs.State(),
	}
	if snackbar, ok := u.notifications.Current(); ok {
		state["snackbar"] = snackbar
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(state, ""))
}

// ToggleDarkMode flips and persists the theme preference
func (u *UIController) ToggleDarkMode(c *gin.Context) {
	mode := u.session.ToggleDarkMode(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"darkMode": mode}, ""))
}

// OpenDialog replaces the active dialog
func (u *UIController) OpenDialog(c *gin.Context) {
	req, ok := middleware.BindAndValidate[dialogRequest](c)
	if !ok {
		return
	}
	u.dialogs.OpenDialog(req.Type, req.Props)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(u.dialogs.State(), ""))
}

// CloseDialog hides the active dialog
func (u *UIController) CloseDialog(c *gin.Context) {
	u.dialogs.CloseDialog()
	c.JSON(http.StatusOK, dto.NewSuccessResponse(u.dialogs.State(), ""))
}

// ShowSnackbar raises a toast
func (u *UIController) ShowSnackbar(c *gin.Context) {
	req, ok := middleware.BindAndValidate[snackbarRequest](c)
	if !ok {
		return
	}
	u.notifications.ShowSnackbar(req.Message, services.Severity(req.Severity))
	snackbar, _ := u.notifications.Current()
	c.JSON(http.StatusOK, dto.NewSuccessResponse(snackbar, ""))
}
