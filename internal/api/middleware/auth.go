package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/timmy/dailyreel/internal/logger"
)

// AuthSubjectKey is the gin context key holding the authenticated caller.
const AuthSubjectKey = "auth_subject"

// AuthConfig holds the accepted trigger credentials.
type AuthConfig struct {
	// CronSecret is compared against the bearer token as-is.
	CronSecret string
	// JWTSecret verifies HS256 bearer tokens.
	JWTSecret string
}

// Enabled reports whether any credential is configured.
func (a AuthConfig) Enabled() bool {
	return a.CronSecret != "" || a.JWTSecret != ""
}

// RequireToken rejects requests without a valid bearer token. With no
// credential configured every request passes.
func RequireToken(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled() {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.CtxWarn(c.Request.Context(), "Missing bearer token: path=%s, client_ip=%s", c.Request.URL.Path, c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if cfg.CronSecret != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cfg.CronSecret)) == 1 {
			c.Set(AuthSubjectKey, "cron")
			c.Next()
			return
		}

		if cfg.JWTSecret != "" {
			if subject, err := verifyJWT(token, cfg.JWTSecret); err == nil {
				c.Set(AuthSubjectKey, subject)
				c.Next()
				return
			}
		}

		logger.CtxWarn(c.Request.Context(), "Invalid bearer token: path=%s, client_ip=%s", c.Request.URL.Path, c.ClientIP())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func verifyJWT(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
