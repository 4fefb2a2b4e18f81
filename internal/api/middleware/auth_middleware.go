package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Sachin1yadav/aitrendpromt/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

const bearerSchema = "Bearer "

// CredentialChecker validates an admin credential. Implementations other than
// the static shared secret can be swapped in without touching any handler.
type CredentialChecker interface {
	Check(credential string) bool
}

// SharedSecretChecker compares the presented credential against a single
// static secret in constant time.
type SharedSecretChecker struct {
	secret string
}

func NewSharedSecretChecker(secret string) *SharedSecretChecker {
	return &SharedSecretChecker{secret: secret}
}

func (c *SharedSecretChecker) Check(credential string) bool {
	if c.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(c.secret)) == 1
}

// AdminAuth guards the admin surface with a bearer credential.
func AdminAuth(checker CredentialChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization header is required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid authorization header format"})
			c.Abort()
			return
		}

		credential := authHeader[len(bearerSchema):]
		if !checker.Check(credential) {
			log.Warn("Rejected admin request with invalid credential", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
