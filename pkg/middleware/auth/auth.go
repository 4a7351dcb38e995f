package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

const contextSubjectKey = "admin_subject"

// AdminJWT guards operator-only endpoints with an HS256 bearer token.
// With no secret configured the guarded routes are effectively
// disabled.
func AdminJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abortUnauthorized(c, "admin access not configured")
			return
		}

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims.GetSubject(); sub != "" {
				c.Set(contextSubjectKey, sub)
			}
		}

		c.Next()
	}
}

// Subject returns the authenticated admin subject, if any.
func Subject(c *gin.Context) string {
	if v, exists := c.Get(contextSubjectKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, appErrors.New(appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, message))
	c.Abort()
}
