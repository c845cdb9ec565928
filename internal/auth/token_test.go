package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("sub-42", domain.StaffRoleAgent)
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "sub-42", claims.SubjectID)
	require.Equal(t, domain.StaffRoleAgent, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("sub-42", domain.StaffRoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 60).ParseToken("not-a-token")
	require.Error(t, err)
}
