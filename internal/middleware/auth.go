package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

type TokenVerifier interface {
	Authenticate(token string) (*domain.Claims, error)
}

// Auth requires a valid Bearer access token and stores its claims on the context.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use: Bearer <token>"})
			return
		}

		claims, err := v.Authenticate(strings.TrimSpace(token))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims set by Auth, or nil on public routes.
func ClaimsFrom(c *gin.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey)
	cl, _ := claims.(*domain.Claims)
	return cl
}
