package middleware

import (
	"net/http"
	"slices"
	"strings"

	"htga/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for handlers to read.
const (
	ContextSubjectKey = "subject"
	ContextRolesKey   = "roles"
)

// AuthMiddleware provides middleware for authentication and authorization.
// Evaluator sessions carry portal-issued JWTs; admin sessions carry identity
// provider ID tokens. Both arrive as Bearer tokens and are tried in that
// order.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	identitySvc service.IdentityService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, identitySvc service.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, identitySvc: identitySvc}
}

// Authenticate validates the bearer token and sets the subject and roles on
// the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		if subject, roles, err := m.tokenSvc.ValidateAccessToken(tokenString); err == nil {
			c.Set(ContextSubjectKey, subject)
			c.Set(ContextRolesKey, roles)

			return next(c)
		}

		user, err := m.identitySvc.VerifyIDToken(c.Request().Context(), tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		roles := []string{user.Role}
		// Superadmins hold every admin capability.
		if user.Role == service.RoleSuperadmin {
			roles = append(roles, service.RoleAdmin)
		}
		c.Set(ContextSubjectKey, user.UID)
		c.Set(ContextRolesKey, roles)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the caller has a
// specific role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rolesVal := c.Get(ContextRolesKey)
			roles, ok := rolesVal.([]string)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if !slices.Contains(roles, requiredRole) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole + "' role"})
			}

			return next(c)
		}
	}
}

// Subject returns the authenticated subject set by Authenticate.
func Subject(c echo.Context) string {
	subject, _ := c.Get(ContextSubjectKey).(string)

	return subject
}
