package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"extract-store/internal/service"
)

const ingestSubjectKey = "ingest_subject"

// BearerAuthMiddleware exige un token de ingesta valido y deja su subject en el contexto.
// Los rechazos llevan el challenge WWW-Authenticate de RFC 6750.
func BearerAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			rejectUnauthorized(c, "", "missing bearer token")
			return
		}

		claims, err := tokens.Parse(token)
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			rejectUnauthorized(c, "invalid_token", "token expired")
			return
		case err != nil:
			rejectUnauthorized(c, "invalid_token", "invalid token")
			return
		}

		c.Set(ingestSubjectKey, claims.Subject)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, code, msg string) {
	challenge := `Bearer realm="records"`
	if code != "" {
		challenge += `, error="` + code + `"`
	}
	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// IngestSubject devuelve el subject autenticado, tal cual viene en el token.
func IngestSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(ingestSubjectKey)
	return subject, subject != ""
}
