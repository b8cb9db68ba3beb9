package ports

import "context"

// AuthService issues credentials for provisioned accounts. Token issuance
// is where claim-store values become effective claims: the role claim is
// read from the ClaimStore at mint time.
type AuthService interface {
	// Login verifies email and password and returns a signed token. The
	// error is domain.ErrCredentialsInvalid for both unknown accounts and
	// wrong passwords.
	Login(ctx context.Context, email, password string) (string, error)
}
