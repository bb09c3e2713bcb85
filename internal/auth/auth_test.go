package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginAndVerify(t *testing.T) {
	svc := New("test-secret", "admin", "123", time.Hour)

	token, err := svc.Login("admin", "123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, svc.Verify(token))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := New("test-secret", "admin", "123", time.Hour)

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("root", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	svc := New("test-secret", "admin", "123", time.Hour)
	other := New("other-secret", "admin", "123", time.Hour)

	token, err := other.Login("admin", "123")
	assert.NoError(t, err)
	assert.Error(t, svc.Verify(token))
	assert.Error(t, svc.Verify("not-a-token"))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New("test-secret", "admin", "123", -time.Minute)

	token, err := svc.Login("admin", "123")
	assert.NoError(t, err)
	assert.Error(t, svc.Verify(token))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New("test-secret", "admin", "123", time.Hour)

	router := gin.New()
	router.GET("/protected", svc.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	token, err := svc.Login("admin", "123")
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
