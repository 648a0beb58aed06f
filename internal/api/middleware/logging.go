package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// StructuredLoggingMiddleware logs each request as one JSON line with the
// request ID carried through from RequestIDMiddleware.
func StructuredLoggingMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}

	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		if skip[param.Path] {
			return ""
		}

		requestID := ""
		if param.Keys != nil {
			if id, ok := param.Keys[string(RequestIDKey)].(string); ok {
				requestID = id
			}
		}

		rec := map[string]interface{}{
			"timestamp":  param.TimeStamp.Format("2006-01-02T15:04:05Z07:00"),
			"status":     param.StatusCode,
			"latency":    param.Latency.String(),
			"client_ip":  param.ClientIP,
			"method":     param.Method,
			"path":       param.Path,
			"request_id": requestID,
			"error":      param.ErrorMessage,
		}

		b, _ := json.Marshal(rec)
		return string(b) + "\n"
	})
}
