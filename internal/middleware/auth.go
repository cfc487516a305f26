package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/dollarcard/internal/auth"
	"github.com/example/dollarcard/internal/models"
)

const principalKey = "principal"

// GetPrincipal extracts the authenticated principal from the context.
// It only exists after BasicAuth has run.
func GetPrincipal(c *gin.Context) (*models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*models.Principal)
	return p, ok
}

// BasicAuth returns a middleware that authenticates every request with HTTP
// basic credentials against the credential store. Missing credentials,
// unknown usernames and wrong passwords all produce the same 401 response,
// so the surface leaks nothing about which users exist.
func BasicAuth(creds auth.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		principal, err := creds.Verify(username, password)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects authenticated principals
// whose role does not match. Distinct from the 401 path: the caller proved
// who they are, they just may not be here.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			unauthorized(c)
			return
		}
		if principal.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Access denied",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="dollarcards"`)
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": "Invalid credentials",
	})
	c.Abort()
}
