// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and the
// session lifecycle (login, resolve, logout).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/password"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notekeeper/internal/server/sessions"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// tokenValidity returns the lifetime used for the signed credential. When
// sessions never expire server-side, the wrapper token still needs a bound.
const unboundedTokenValidity = 365 * 24 * time.Hour

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and open a session
// - Resolve: map a presented token back to its user
// - Logout: destroy a session (idempotent)
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       sessions.Store
	jwtSecret   []byte
	sessionTTL  time.Duration
	bcryptCost  int
}

// NewUserService constructs a UserService using repositories, the session
// store, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, store sessions.Store, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		store:       store,
		jwtSecret:   []byte(cfg.SecretKey),
		sessionTTL:  cfg.SessionTTL,
		bcryptCost:  cfg.BcryptCost,
	}
}

func validateCredentials(username, plaintext string) error {
	ve := common.NewValidationError()
	if username == "" {
		ve.Add("username", "is required")
	} else if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		ve.Add("username", fmt.Sprintf("must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if plaintext == "" {
		ve.Add("password", "is required")
	} else if len(plaintext) < minPasswordLen {
		ve.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}

// Register creates a new user. A taken username yields
// common.ErrorDuplicateUsername and no row is written.
func (s *UserService) Register(ctx context.Context, username, plaintext string) (*models.User, error) {
	if err := validateCredentials(username, plaintext); err != nil {
		return nil, err
	}

	hash, err := password.New(plaintext, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrorOperationFailed, err)
	}

	user := &models.User{Username: username, Password: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorDuplicateUsername
		}
		return nil, fmt.Errorf("%w: creating user: %v", common.ErrorOperationFailed, err)
	}
	return u, nil
}

// Login verifies the password and, on success, opens a server-side session
// and returns the user along with the signed session credential.
//
// An unknown username yields common.ErrorNotFound and a wrong password
// common.ErrorUnauthorized; in neither case is a session created.
func (s *UserService) Login(ctx context.Context, username, plaintext string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", common.ErrorInternal
	}

	if !user.Password.Verify(plaintext) {
		return nil, "", common.ErrorUnauthorized
	}

	sess, err := s.store.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(sess.ID, s.jwtSecret, s.tokenValidity())
	if err != nil {
		// A session whose credential was never issued is unreachable; drop it.
		_ = s.store.Destroy(ctx, sess.ID)
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Resolve maps a presented credential back to its user. Any failure along
// the way (bad signature, unknown or expired session, vanished user)
// collapses to common.ErrorUnauthorized.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	sessionID, err := auth.GetSessionIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.store.Resolve(ctx, sessionID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Logout destroys the session carried by token. It is idempotent: invalid
// tokens and already-destroyed sessions are not errors.
func (s *UserService) Logout(ctx context.Context, token string) error {
	sessionID, err := auth.GetSessionIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	return s.store.Destroy(ctx, sessionID)
}

func (s *UserService) tokenValidity() time.Duration {
	if s.sessionTTL > 0 {
		return s.sessionTTL
	}
	return unboundedTokenValidity
}
