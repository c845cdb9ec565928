package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

func TestRankOrdering(t *testing.T) {
	require.Less(t, Rank(domain.StaffRoleAgent), Rank(domain.StaffRoleAdmin))
	require.Less(t, Rank(domain.StaffRoleAdmin), Rank(domain.StaffRoleSuperAdmin))
	require.Negative(t, Rank(domain.StaffRole("Intern")))
	require.Negative(t, Rank(domain.StaffRole("")))
}

func TestMayActOnMatchesRankOrdering(t *testing.T) {
	roles := []domain.StaffRole{
		domain.StaffRoleAgent,
		domain.StaffRoleAdmin,
		domain.StaffRoleSuperAdmin,
	}
	for _, actor := range roles {
		for _, target := range roles {
			require.Equal(t, Rank(actor) > Rank(target), MayActOn(actor, target),
				"actor=%s target=%s", actor, target)
		}
	}
}

func TestMayActOnNeverOnSelf(t *testing.T) {
	for _, role := range []domain.StaffRole{
		domain.StaffRoleAgent,
		domain.StaffRoleAdmin,
		domain.StaffRoleSuperAdmin,
	} {
		require.False(t, MayActOn(role, role), "role=%s", role)
	}
}

func TestMayActOnAgentActsOnNothing(t *testing.T) {
	for _, target := range []domain.StaffRole{
		domain.StaffRoleAgent,
		domain.StaffRoleAdmin,
		domain.StaffRoleSuperAdmin,
	} {
		require.False(t, MayActOn(domain.StaffRoleAgent, target), "target=%s", target)
	}
}

func TestMayActOnUnknownRoles(t *testing.T) {
	unknown := domain.StaffRole("Contractor")
	require.False(t, MayActOn(unknown, domain.StaffRoleAgent))
	require.False(t, MayActOn(domain.StaffRoleSuperAdmin, unknown))
	require.False(t, MayActOn(unknown, unknown))
}
