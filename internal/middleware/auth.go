package middleware

import (
	"net/http"

	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "currentIdentity"

// AuthMiddleware admits requests carrying a valid bearer token and stores
// the token's identity in the context. Everything else gets 403.
func AuthMiddleware(tokens *util.TokenService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := util.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			log.Debug("auth rejected", zap.String("path", c.FullPath()), zap.Error(err))
			util.Error(c, http.StatusForbidden, http.StatusText(http.StatusForbidden))
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			log.Debug("auth rejected", zap.String("path", c.FullPath()), zap.Error(err))
			util.Error(c, http.StatusForbidden, http.StatusText(http.StatusForbidden))
			return
		}

		c.Set(identityKey, claims.Identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (util.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return util.Identity{}, false
	}
	id, ok := v.(util.Identity)
	return id, ok
}
