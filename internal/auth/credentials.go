// Package auth provides credential verification for the basic-auth gate.
package auth

import (
	"errors"
	"fmt"

	"github.com/example/dollarcard/internal/models"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords. The two cases are deliberately indistinguishable so that the
// login surface cannot be used to enumerate users.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialStore answers identity+credential verification queries.
type CredentialStore interface {
	// Verify checks the password against the stored hash for username and
	// returns the principal on success. Returns ErrInvalidCredentials for
	// unknown users and password mismatches alike.
	Verify(username, password string) (*models.Principal, error)
}

// SnapshotStore is an immutable in-memory CredentialStore built once at
// process start. It never mutates after construction, so concurrent reads
// need no locking.
type SnapshotStore struct {
	users map[string]models.User
}

// NewSnapshotStore builds a credential snapshot from the given users.
// Duplicate usernames are rejected so a misconfigured bootstrap fails loudly
// instead of silently shadowing a principal.
func NewSnapshotStore(users []models.User) (*SnapshotStore, error) {
	byName := make(map[string]models.User, len(users))
	for _, u := range users {
		if _, exists := byName[u.Username]; exists {
			return nil, fmt.Errorf("duplicate user %q in bootstrap", u.Username)
		}
		byName[u.Username] = u
	}
	return &SnapshotStore{users: byName}, nil
}

// Verify implements CredentialStore.
func (s *SnapshotStore) Verify(username, password string) (*models.Principal, error) {
	user, ok := s.users[username]
	if !ok {
		// Burn a comparison anyway so unknown users cost the same as
		// known users with a wrong password.
		checkPassword(unknownUserHash, password)
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &models.Principal{Username: user.Username, Role: user.Role}, nil
}

// unknownUserHash is a throwaway bcrypt hash compared against when the
// username does not exist, keeping verification timing uniform.
const unknownUserHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BootstrapUsers hashes the given plaintext credentials into Users at the
// provided bcrypt cost. It replaces any external user provisioning: the
// service has no runtime user management, so the full set of principals is
// fixed here at startup.
func BootstrapUsers(cost int, creds ...Credential) ([]models.User, error) {
	users := make([]models.User, 0, len(creds))
	for _, c := range creds {
		hash, err := HashPassword(c.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap user %q: %w", c.Username, err)
		}
		users = append(users, models.User{
			Username:     c.Username,
			PasswordHash: hash,
			Role:         c.Role,
		})
	}
	return users, nil
}

// Credential is a plaintext bootstrap entry consumed by BootstrapUsers.
type Credential struct {
	Username string
	Password string
	Role     models.Role
}
