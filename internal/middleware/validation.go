package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/validation"
)

// BindAndValidate decodes the JSON body into T and runs the form rules. On
// failure it writes the 400 response and returns false.
func BindAndValidate[T any](c *gin.Context) (T, bool) {
	var form T
	if err := c.ShouldBindBodyWith(&form, binding.JSON); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return form, false
	}

	if errs := validation.ValidateStruct(form); errs.HasErrors() {
		HandleAPIError(c, apperrors.NewValidationError("Validation failed", errs))
		return form, false
	}
	return form, true
}
