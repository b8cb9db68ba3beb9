package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/facilityops/access-system/internal/core/domain"
)

type stubCredentialRepo struct {
	creds map[string]*domain.Credential // keyed by email
}

func (r *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	c, ok := r.creds[email]
	if !ok {
		return nil, domain.ErrCredentialsInvalid
	}
	clone := *c
	return &clone, nil
}

func seedCredential(t *testing.T, email, password string) *stubCredentialRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &stubCredentialRepo{creds: map[string]*domain.Credential{
		email: {UID: "U1", Email: email, PasswordHash: string(hash)},
	}}
}

func TestAuthService_Login_TokenCarriesClaimStoreRole(t *testing.T) {
	creds := seedCredential(t, "carol@example.com", "s3cret")
	claims := newStubClaimStore()
	claims.claims["U1"] = domain.RoleAdmin

	svc := NewAuthService(creds, claims, "jwt-secret", time.Hour)
	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	parsedClaims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, parsedClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if parsedClaims["sub"] != "U1" {
		t.Errorf("sub = %v, want U1", parsedClaims["sub"])
	}
	if parsedClaims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", parsedClaims["role"])
	}
}

func TestAuthService_Login_NoClaimMeansNoRoleClaim(t *testing.T) {
	creds := seedCredential(t, "dave@example.com", "goodpass")
	svc := NewAuthService(creds, newStubClaimStore(), "jwt-secret", time.Hour)

	token, err := svc.Login(context.Background(), "dave@example.com", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	parsedClaims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, parsedClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if _, ok := parsedClaims["role"]; ok {
		t.Errorf("token carries a role claim for a user with none recorded")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	creds := seedCredential(t, "dave@example.com", "goodpass")
	svc := NewAuthService(creds, newStubClaimStore(), "jwt-secret", time.Hour)

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}
}

func TestAuthService_Login_UnknownAccountSameError(t *testing.T) {
	svc := NewAuthService(&stubCredentialRepo{creds: map[string]*domain.Credential{}}, newStubClaimStore(), "jwt-secret", time.Hour)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}
}

func TestAuthService_Login_EmptyInputs(t *testing.T) {
	svc := NewAuthService(&stubCredentialRepo{}, newStubClaimStore(), "jwt-secret", time.Hour)
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}
}
