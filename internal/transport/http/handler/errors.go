package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/observability"
	"intelimed/internal/transport/http/response"
)

// writeServiceError maps service sentinels to envelope codes. Anything else
// is a storage fault: it is logged and answered with failMessage only.
func writeServiceError(c *gin.Context, err error, invalidMessage, failMessage string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, invalidMessage)
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrUsernameExists):
		response.Error(c, http.StatusConflict, response.CodeUsernameExists, err.Error())
	default:
		observability.LoggerFromContext(c.Request.Context()).Error(failMessage, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, failMessage)
	}
}
