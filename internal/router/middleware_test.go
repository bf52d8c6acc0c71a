package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinacl/storefront-api/pkg/auth"
)

func checkoutContext(t *testing.T) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/webpay/create/s1", nil)
	return c
}

func TestBearerClaimsParsesSignedInCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)

	token, err := auth.NewAccessToken("68b4a1f2e4b0c83d5a7f1c02", "ana@example.com", "cliente")
	require.NoError(t, err)

	c := checkoutContext(t)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	claims, ok := bearerClaims(c)
	require.True(t, ok)
	assert.Equal(t, "68b4a1f2e4b0c83d5a7f1c02", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestBearerClaimsGuestAndGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Guest checkout carries no Authorization header.
	_, ok := bearerClaims(checkoutContext(t))
	assert.False(t, ok)

	c := checkoutContext(t)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")
	_, ok = bearerClaims(c)
	assert.False(t, ok)
}
