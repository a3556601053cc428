package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontix/internal/ledger"
)

func TestContextWithPrincipal(t *testing.T) {
	ctx := ContextWithPrincipal(context.Background(), ledger.Principal("alice"))

	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, ledger.Principal("alice"), p)

	// The request logger reads the principal by its field name; both
	// sides must agree on the key.
	assert.NotNil(t, ctx.Value("principal"))
}

func TestPrincipalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/guarded", PrincipalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"principal": string(MustPrincipal(c))})
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/guarded", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header principal reaches the handler", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/guarded", nil)
		req.Header.Set(PrincipalHeader, "alice")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})
}
