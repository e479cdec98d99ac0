package middleware

import (
	"net/http"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
)

// ApiKeyHeader carries the opaque key on the external surface.
const ApiKeyHeader = "X-API-Key"

// RequireAdmin gates the panel's mutating namespaces. It insists on BOTH a
// resolved end-user identity and a live admin session; either one alone is
// not enough to authorize admin actions.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil || AdminFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("unauthorized"))
			return
		}
		c.Next()
	}
}

// ApiKeyAuth authenticates external REST callers by the X-API-Key header,
// binds the resolved key to the request, and enforces the key's permission
// list (read for GETs, write for mutations).
func ApiKeyAuth(keys service.ApiKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ApiKeyHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing API key",
			})
			return
		}

		key, err := keys.Resolve(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		if key == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or revoked API key",
			})
			return
		}

		required := model.PermissionWrite
		if c.Request.Method == http.MethodGet {
			required = model.PermissionRead
		}
		if !key.Can(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "API key lacks " + required + " permission",
			})
			return
		}

		c.Set(CtxApiKey, key)
		c.Next()
	}
}

// ApiKeyFrom returns the key bound by ApiKeyAuth.
func ApiKeyFrom(c *gin.Context) *model.ApiKey {
	if v, ok := c.Get(CtxApiKey); ok {
		if k, ok := v.(*model.ApiKey); ok {
			return k
		}
	}
	return nil
}
