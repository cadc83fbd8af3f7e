package middleware

import (
	"net/http"
	"runtime/debug"

	"recipe-admin-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const ErrCodePanic = "SYS_001"

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// client đóng kết nối giữa chừng: để net/http xử lý
				if err == http.ErrAbortHandler {
					panic(err)
				}

				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.ErrorResponse(c, http.StatusInternalServerError, ErrCodePanic, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
