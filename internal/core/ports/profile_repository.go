package ports

import (
	"context"

	"github.com/facilityops/access-system/internal/core/domain"
)

// ProfileRepository is the durable profile store. Single-document writes are
// atomic; nothing here spans documents.
type ProfileRepository interface {
	// Get returns the profile for uid, or domain.ErrProfileNotFound.
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)

	// Set writes the given fields on the profile document. With merge=true
	// the document is created if absent and unrelated fields are preserved.
	Set(ctx context.Context, uid string, fields map[string]any, merge bool) error

	// Update applies a field-level partial update to an existing profile.
	// Returns domain.ErrProfileNotFound when no document matches.
	Update(ctx context.Context, uid string, fields map[string]any) error
}

// CredentialRepository looks up login credentials for provisioned accounts.
type CredentialRepository interface {
	// FindByEmail returns domain.ErrCredentialsInvalid when no account has
	// the given email.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}
