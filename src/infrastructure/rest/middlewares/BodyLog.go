package middlewares

import (
	"bytes"

	"github.com/gin-gonic/gin"
)

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// GinBodyLogMiddleware captures the response body so failed requests can be
// inspected. Only the status is surfaced here; the body stays inside the
// context for handlers that need it. Request bodies are not captured because
// correspondent payloads carry credentials.
func GinBodyLogMiddleware(c *gin.Context) {
	blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
	if c.Writer.Status() >= 500 {
		c.Set("responseBody", blw.body.String())
	}
}
