package Token

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithRequest(target, authHeader string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	token, err := GenerateToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c := contextWithRequest("/patients", "Bearer "+token)
	require.NoError(t, TokenValid(c))

	id, err := ExtractTokenID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestTokenFromQueryParam(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := GenerateToken(1)
	require.NoError(t, err)

	c := contextWithRequest("/invoice/abc?token="+token, "")
	require.NoError(t, TokenValid(c))
}

func TestTokenMissing(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	c := contextWithRequest("/patients", "")
	assert.Error(t, TokenValid(c))
}

func TestTokenWrongSecret(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	token, err := GenerateToken(1)
	require.NoError(t, err)

	t.Setenv("API_SECRET", "another-secret")
	c := contextWithRequest("/patients", "Bearer "+token)
	assert.Error(t, TokenValid(c))
}

func TestBareHeaderToken(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	token, err := GenerateToken(3)
	require.NoError(t, err)

	// Some clients send the raw token without the Bearer prefix.
	c := contextWithRequest("/patients", token)
	require.NoError(t, TokenValid(c))
}
