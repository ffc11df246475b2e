package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindwell-backend/utilities"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestDumpMiddleware tags each request with an id and logs method, URL and
// body. Enabled by the REQUEST_DUMP config attribute.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		utilities.Info(
			"[Request %s]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tBody: %s",
			requestID,
			c.Request.Method,
			c.Request.URL.String(),
			string(bodyBytes),
		)

		c.Next()
	}
}
