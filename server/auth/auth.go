// Package auth resolves bearer tokens to users.
package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/showrunnerhq/showrunner/store"
)

// Authenticator checks access tokens against the store.
type Authenticator struct {
	store *store.Store
}

func NewAuthenticator(s *store.Store) *Authenticator {
	return &Authenticator{store: s}
}

// AuthenticateToUser resolves an Authorization header to its user.
// Returns nil without error when the header carries no usable token.
func (a *Authenticator) AuthenticateToUser(ctx context.Context, authHeader string) (*store.User, error) {
	token := extractBearerToken(authHeader)
	if token == "" {
		return nil, nil
	}
	accessToken, err := a.store.GetAccessToken(ctx, &store.FindAccessToken{Token: &token})
	if err != nil {
		return nil, errors.Wrap(err, "lookup access token")
	}
	if accessToken == nil {
		return nil, nil
	}
	user, err := a.store.GetUser(ctx, &store.FindUser{ID: &accessToken.UserID})
	if err != nil {
		return nil, errors.Wrap(err, "lookup token user")
	}
	return user, nil
}

func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// HashPassword prepares a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
