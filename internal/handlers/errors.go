// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/panjabighar/panjabi-backend/internal/services"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

// serviceError maps the services error taxonomy onto HTTP responses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
