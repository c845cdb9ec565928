package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The staff record comes from
// the directory, so a disabled identity never produces a principal.
type Principal struct {
	Staff *domain.Staff
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	staff  repository.StaffRepository
	cache  *StaffCache
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, staff repository.StaffRepository, cache *StaffCache) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, staff: staff, cache: cache}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if staff, ok := m.cache.Get(c.UserContext(), claims.SubjectID); ok {
		c.Locals(principalKey, &Principal{Staff: staff})
		return c.Next()
	}

	staff, err := m.staff.GetByID(c.UserContext(), claims.SubjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Absent and disabled identities are indistinguishable here.
			return apperrors.NewUnauthorized("staff not found")
		}
		return apperrors.MapError(err)
	}

	m.cache.Put(c.UserContext(), staff)
	c.Locals(principalKey, &Principal{Staff: staff})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
