// Package identity is the boundary to the external identity provider that
// issues credentials for staff. All operations key on the email address,
// which doubles as the provider-side username.
package identity

import "context"

// UserAttributes are the provider-side profile attributes kept in sync with
// the local directory.
type UserAttributes struct {
	Email      string
	GivenName  string
	FamilyName string
}

// Gateway exposes the provider operations the staff lifecycle needs.
// Implementations classify failures into the ProviderRejected /
// ProviderUnavailable taxonomy; they never retry.
type Gateway interface {
	// CreateUser registers the identity with a temporary password and
	// returns the provider-assigned subject identifier.
	CreateUser(ctx context.Context, email, temporaryPassword string, attrs UserAttributes) (string, error)
	AddUserToGroup(ctx context.Context, email, group string) error
	UpdateUserAttributes(ctx context.Context, email string, attrs UserAttributes) error
	SetUserPassword(ctx context.Context, email, password string) error
}
