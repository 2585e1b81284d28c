package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/gateway"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// HandleAPIError handles common errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
	}
	withMessage := func(fallback string) string {
		if message != "" {
			return message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, withMessage("Validation failed")).
			WithSeverity(dto.ErrorSeverityWarning)
		if custom != nil && custom.Details != nil {
			errorDetail = errorDetail.WithDetails(custom.Details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, withMessage("Invalid request")),
		))
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, withMessage("Authentication required")),
		).WithRedirect(services.RouteLogin))
	case errors.Is(err, apperrors.ErrNoSignupPayload):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeMissingSignup, withMessage("Please sign up first")),
		).WithRedirect(services.RouteSignup))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, withMessage("Session expired")).
				WithDetails("Please log in again"),
		).WithRedirect(services.RouteLogin))
	case errors.Is(err, apperrors.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalTimeout, gateway.MessageFor(err, "The server took too long to respond")),
		))
	case errors.Is(err, apperrors.ErrTransport), errors.Is(err, apperrors.ErrApplication), errors.Is(err, apperrors.ErrDecode):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, gateway.MessageFor(err, "Backend request failed")),
		))
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStorageError, "Client storage unavailable"),
		))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

// Recovery turns a panic into the "error" view with a way home
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ViewResponse{
			View:    "error",
			Data:    gin.H{"message": "Something went wrong."},
			Actions: []dto.Action{dto.HomeAction},
		})
	})
}

// NotFound renders the "notFound" view for unmatched routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ViewResponse{
			View:    "notFound",
			Data:    gin.H{"path": c.Request.URL.Path},
			Actions: []dto.Action{dto.HomeAction},
		})
	}
}
