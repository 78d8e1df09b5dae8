package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/gin-gonic/gin"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// HandleServiceError writes the status for a service error. Causes wrapped
// under common.ErrorUnauthorized and unexpected errors are recorded on the
// gin context for the request log, never sent to the client.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		_ = c.Error(err)
		ErrorResponse(c, http.StatusUnauthorized, "invalid or missing token")
	case errors.Is(err, common.ErrorForbidden):
		ErrorResponse(c, http.StatusForbidden, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorNotFound):
		ErrorResponse(c, http.StatusNotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorConflict):
		ErrorResponse(c, http.StatusConflict, common.ErrorConflict.Error())
	case errors.Is(err, common.ErrorValidation):
		ErrorResponse(c, http.StatusBadRequest, common.ErrorValidation.Error())
	case errors.Is(err, common.ErrorPhotosDisabled):
		ErrorResponse(c, http.StatusNotImplemented, common.ErrorPhotosDisabled.Error())
	default:
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
