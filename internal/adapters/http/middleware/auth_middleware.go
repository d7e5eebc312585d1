package middleware

import (
	"strings"

	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthMiddleware creates authentication middleware. The validated token's
// identity is stored in the request context for handlers and policies.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(identityKey, identityFromClaims(claims))
		return c.Next()
	}
}

// OptionalAuth middleware - doesn't require auth but sets the identity if
// a valid token is present. Unauthenticated requests proceed as anonymous.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := extractToken(c); accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret); err == nil {
				c.Locals(identityKey, identityFromClaims(claims))
			}
		}
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity.IsAnonymous() {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if identity.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// StaffOnly middleware allows only the STAFF role
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleStaff)
}

// CatalogWrite gates catalog mutation on staff or catalog editors
func CatalogWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity.IsAnonymous() {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !domain.AdminWriteElseRead(identity, domain.VerbWrite, nil) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// Identity returns the acting identity of the request, anonymous when the
// request carries no valid token.
func Identity(c *fiber.Ctx) domain.Identity {
	if identity, ok := c.Locals(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.Anonymous
}

// extractToken reads the access token from the cookie, falling back to
// the Authorization header.
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func identityFromClaims(claims *jwt.Claims) domain.Identity {
	identity := domain.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     domain.Role(claims.Role),
	}
	for _, grant := range claims.Capabilities {
		identity.Capabilities = append(identity.Capabilities, domain.Capability(grant))
	}
	return identity
}
