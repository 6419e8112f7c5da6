package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/identity"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []identity.Role)
}

// RequireRole creates middleware that requires a specific role
func RequireRole(role identity.Role) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole creates middleware that lets the request through when the
// authenticated user holds at least one of the listed roles. Admin always
// passes.
func RequireAnyRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig creates role middleware with custom config
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		userRole := identity.Role(claims.Role)
		if !roleAllowed(userRole, roles) {
			handleRoleDenied(c, cfg, roles, "User lacks required role")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Role check passed",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
			)
		}

		c.Next()
	}
}

// roleAllowed reports whether the user role satisfies the requirement.
// Admin bypasses every role check.
func roleAllowed(userRole identity.Role, required []identity.Role) bool {
	if userRole == identity.RoleAdmin {
		return true
	}
	for _, r := range required {
		if userRole == r {
			return true
		}
	}
	return false
}

// handleRoleDenied aborts the request with a 403 response
func handleRoleDenied(c *gin.Context, cfg RoleConfig, roles []identity.Role, reason string) {
	if cfg.Logger != nil {
		roleNames := make([]string, 0, len(roles))
		for _, r := range roles {
			roleNames = append(roleNames, string(r))
		}
		cfg.Logger.Warn("Role check failed",
			zap.String("reason", reason),
			zap.Strings("required_roles", roleNames),
			zap.String("path", c.Request.URL.Path),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, roles)
		return
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Insufficient role for this operation",
		},
	})
}
