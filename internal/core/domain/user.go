package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("user profile not found")
var ErrUnauthenticated = errors.New("authentication required")
var ErrPermissionDenied = errors.New("permission denied")
var ErrCredentialsInvalid = errors.New("invalid credentials")
var ErrBootstrapDisabled = errors.New("bootstrap secret not configured")

// UserProfile is the durable per-user record. The role field here is the
// role of record; the claim side (see ClaimStore) is a projection of it and
// may transiently lag behind.
type UserProfile struct {
	UID        string    `json:"uid" bson:"_id"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Role       Role      `json:"role" bson:"role"`
	FCMToken   string    `json:"-" bson:"fcm_token,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	ElevatedAt time.Time `json:"elevated_at,omitempty" bson:"elevated_at,omitempty"`
}

// Credential holds the login secret for a provisioned account. Account
// provisioning itself happens outside this service.
type Credential struct {
	UID          string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
}
