// Package auth issues and verifies the admin session tokens guarding the
// dashboard routes.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// ErrInvalidCredentials is returned for a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service validates admin credentials and signs session tokens.
type Service struct {
	secret   []byte
	user     string
	password string
	ttl      time.Duration
}

// New creates the auth service
func New(secret, user, password string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), user: user, password: password, ttl: ttl}
}

// Login checks the credentials and returns a signed token
func (s *Service) Login(user, password string) (string, error) {
	if user != s.user || password != s.password {
		return "", ErrInvalidCredentials
	}
	claims := jwt.MapClaims{
		"sub":  user,
		"role": "admin",
		"exp":  time.Now().Add(s.ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string
func (s *Service) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// Middleware guards admin routes with a Bearer token
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if err := s.Verify(tokenString); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}
