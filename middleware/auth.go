package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"heaven-palace/services"
	"heaven-palace/utils"
)

const ContextIdentity = "identity"

// Identifier turns a bearer token into the caller's identity.
type Identifier interface {
	Identify(token string) (*services.Identity, error)
}

func bearer(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Identity attaches the caller when a valid token is present and lets the
// request through either way. A bad token is treated as no token.
func Identity(id Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearer(c); tok != "" {
			if who, err := id.Identify(tok); err == nil {
				c.Set(ContextIdentity, who)
			}
		}
		c.Next()
	}
}

// CurrentIdentity is nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *services.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	who, _ := v.(*services.Identity)
	return who
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			utils.JSONError(c, http.StatusUnauthorized, "sign in required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		who := CurrentIdentity(c)
		if who == nil {
			utils.JSONError(c, http.StatusUnauthorized, "sign in required")
			c.Abort()
			return
		}
		if !who.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "admins only")
			c.Abort()
			return
		}
		c.Next()
	}
}
