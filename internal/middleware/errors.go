package middleware

import (
	"net/http"

	"github.com/cperes/tickerpulse/internal/domain/dto"
	"github.com/cperes/tickerpulse/internal/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the gin context into a single
// 500-class JSON body after the handler chain has run.
//
// Handlers that already wrote a response are left alone. The underlying
// error text is logged but not echoed to the client, so executor failures
// never leak statement text.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
}
