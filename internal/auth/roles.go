package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/domain"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// Rank returns the seniority ordinal of a role: Agent < Admin < SuperAdmin.
// Unknown roles rank below everything.
func Rank(role domain.StaffRole) int {
	switch role {
	case domain.StaffRoleAgent:
		return 0
	case domain.StaffRoleAdmin:
		return 1
	case domain.StaffRoleSuperAdmin:
		return 2
	default:
		return -1
	}
}

// MayActOn reports whether actor strictly outranks target. A role never acts
// on a peer or a senior, including itself. Unknown roles act on nothing and
// nothing may act on them.
func MayActOn(actor, target domain.StaffRole) bool {
	actorRank := Rank(actor)
	targetRank := Rank(target)
	if actorRank < 0 || targetRank < 0 {
		return false
	}
	return actorRank > targetRank
}

// RequireStaffRole ensures the principal has one of the allowed roles.
func RequireStaffRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewForbidden("staff role required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Staff.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
