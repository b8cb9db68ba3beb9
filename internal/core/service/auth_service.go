package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// AuthService verifies credentials and mints tokens. The role claim inside
// a minted token comes from the claim store at issuance time, which is how
// claim-store writes become a caller's effective authorization: they apply
// on the next token, never retroactively.
type AuthService struct {
	creds     ports.CredentialRepository
	claims    ports.ClaimStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(creds ports.CredentialRepository, claims ports.ClaimStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{creds: creds, claims: claims, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrCredentialsInvalid
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialsInvalid) {
			return "", domain.ErrCredentialsInvalid
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrCredentialsInvalid
	}

	return s.generateToken(ctx, cred)
}

func (s *AuthService) generateToken(ctx context.Context, cred *domain.Credential) (string, error) {
	claims := jwt.MapClaims{
		"sub":   cred.UID,
		"email": cred.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	// Absent claim means the token simply carries no role, matching a user
	// whose claim has never been set or synced.
	role, ok, err := s.claims.RoleClaim(ctx, cred.UID)
	if err != nil {
		return "", err
	}
	if ok {
		claims["role"] = string(role)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
