package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/logger"

	"github.com/gin-gonic/gin"
)

// principalKey matches the field name logger.WithContext reads from the
// request context, like the request_id key below.
const principalKey = "principal"

// PrincipalHeader carries the already-authenticated caller identity, set by
// the identity gateway in front of this service. Authentication itself is
// out of scope here; an empty header is rejected.
const PrincipalHeader = "X-Principal"

func ContextWithPrincipal(ctx context.Context, p ledger.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (ledger.Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return ledger.Nobody, false
	}
	p, ok := v.(ledger.Principal)
	return p, ok
}

// PrincipalAuth extracts the authenticated principal and aborts the request
// when it is missing.
func PrincipalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := ledger.Principal(c.GetHeader(PrincipalHeader))
		if p == ledger.Nobody {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("principal", string(p))
		c.Request = c.Request.WithContext(ContextWithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// MustPrincipal returns the principal set by PrincipalAuth. Routes using it
// are always registered behind that middleware.
func MustPrincipal(c *gin.Context) ledger.Principal {
	p, _ := PrincipalFromContext(c.Request.Context())
	return p
}

// RequestID attaches a request id to the context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = logger.NewRequestID()
		}
		c.Header("X-Request-ID", reqID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "request_id", reqID))
		c.Next()
	}
}

// Logger logs completed requests with structured fields.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		principal, _ := c.Get("principal")

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if principal != nil {
			logFields = append(logFields, "principal", principal)
		}

		if c.Writer.Status() >= 500 {
			slog.Error("Request failed", logFields...)
		} else {
			slog.Info("Request completed", logFields...)
		}
	}
}

// Recovery turns panics into 500 responses with full logging.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}
