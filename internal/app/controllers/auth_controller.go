package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// AuthController handles the signup, OTP, login and logout flows
type AuthController struct {
	shell
}

// NewAuthController creates a new AuthController
func NewAuthController(session *services.SessionStore, notifications *services.NotificationStore, logger zerolog.Logger) *AuthController {
	return &AuthController{shell{session: session, notifications: notifications, logger: logger}}
}

// ShowLogin renders the login form
func (a *AuthController) ShowLogin(c *gin.Context) {
	a.view(c, http.StatusOK, "login", nil)
}

// Login signs in with email and password
func (a *AuthController) Login(c *gin.Context) {
	form, ok := middleware.BindAndValidate[dto.LoginForm](c)
	if !ok {
		return
	}

	res := a.session.SignIn(c.Request.Context(), form.Email, form.Password)
	respond(a.shell, c, res, http.StatusOK, "")
}

// ShowSignup renders the signup form with the selectable profile types
func (a *AuthController) ShowSignup(c *gin.Context) {
	a.view(c, http.StatusOK, "signup", gin.H{
		"profileTypes": []models.ProfileType{
			models.ProfileStudent,
			models.ProfileEventOrganiser,
			models.ProfileAccommodationProvider,
		},
	})
}

// Signup validates the form for the chosen profile type and submits it
func (a *AuthController) Signup(c *gin.Context) {
	var selector struct {
		ProfileType models.ProfileType `json:"profileType"`
	}
	if err := c.ShouldBindBodyWith(&selector, binding.JSON); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request format"))
		return
	}

	var payload models.SignupPayload
	switch selector.ProfileType {
	case models.ProfileStudent:
		form, ok := middleware.BindAndValidate[dto.StudentSignupForm](c)
		if !ok {
			return
		}
		payload = form.ToPayload()
	case models.ProfileEventOrganiser:
		form, ok := middleware.BindAndValidate[dto.EventOrganiserSignupForm](c)
		if !ok {
			return
		}
		payload = form.ToPayload()
	case models.ProfileAccommodationProvider:
		form, ok := middleware.BindAndValidate[dto.AccommodationProviderSignupForm](c)
		if !ok {
			return
		}
		payload = form.ToPayload()
	default:
		middleware.HandleAPIError(c, apperrors.NewValidationError("Validation failed", map[string]string{
			"profileType": "Profile type is required",
		}))
		return
	}

	a.logger.Info().
		Str("email", payload.Email).
		Str("profileType", string(payload.ProfileType)).
		Msg("Signup request received")

	res := a.session.Signup(c.Request.Context(), payload)
	respond(a.shell, c, res, http.StatusCreated, "")
}

// ShowOtp renders the OTP form for the pending signup
func (a *AuthController) ShowOtp(c *gin.Context) {
	pending, ok := a.session.SignupPayload()
	if !ok {
		c.Redirect(http.StatusSeeOther, services.RouteSignup)
		return
	}
	a.view(c, http.StatusOK, "otp", gin.H{"email": pending.Email})
}

// VerifyOtp confirms the pending signup
func (a *AuthController) VerifyOtp(c *gin.Context) {
	form, ok := middleware.BindAndValidate[dto.OtpForm](c)
	if !ok {
		return
	}

	if _, pending := a.session.SignupPayload(); !pending {
		a.notifications.ShowSnackbar("Please sign up first", services.SeverityWarning)
		middleware.HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrNoSignupPayload, "Please sign up first"))
		return
	}

	res := a.session.VerifyOtp(c.Request.Context(), form.OTP)
	respond(a.shell, c, res, http.StatusOK, "Account verified")
}

// Logout ends the session
func (a *AuthController) Logout(c *gin.Context) {
	a.session.Logout(c.Request.Context())
	resp := dto.NewSuccessResponse(nil, "Logged out")
	resp.Redirect = services.RouteLogin
	c.JSON(http.StatusOK, resp)
}
