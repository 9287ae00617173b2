package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// StaticAdminVerifier recognizes exactly one administrator account, given by
// email and bcrypt hash. It stands in for a real credential store: there is
// no user database behind the storefront.
type StaticAdminVerifier struct {
	email string
	hash  []byte
}

// NewStaticAdminVerifier builds a verifier from a bcrypt hash.
func NewStaticAdminVerifier(email string, passwordHash []byte) *StaticAdminVerifier {
	return &StaticAdminVerifier{email: email, hash: passwordHash}
}

// HashPassword hashes a plain administrator password for NewStaticAdminVerifier.
// A cost of zero uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return hash, nil
}

// IsAdministrator compares email literally and the password against the hash.
func (v *StaticAdminVerifier) IsAdministrator(_ context.Context, email, password string) (bool, error) {
	if v.email == "" || email != v.email {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil, nil
}
