// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout and resolving the
// session cookie into an identity.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/server/auth"
	"github.com/dmitrijs2005/picshare/internal/server/config"
	"github.com/dmitrijs2005/picshare/internal/server/models"
	"github.com/dmitrijs2005/picshare/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides authentication-related operations:
// - Register: create users with bcrypt password hashes
// - Login: verify credentials, open a session and sign its token
// - Logout: revoke the session a token points at
// - ResolveSession: turn a token back into an Identity
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	hashCost                int
	now                     func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		hashCost:                bcrypt.DefaultCost,
		now:                     time.Now,
	}
}

// Register creates a new user. Empty username or password yields
// common.ErrValidation; a taken username yields common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// users and wrong passwords both cost one bcrypt comparison and yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	return s.openSession(ctx, user.ID)
}

// Logout revokes the session behind token. Empty, malformed and already
// revoked tokens are a no-op; expired tokens still revoke their row.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := auth.ParseTokenIgnoringExpiry(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// ResolveSession validates token, its session row and its user. Anything
// short of a live session yields common.ErrUnauthenticated; store failures
// are returned as is.
func (s *UserService) ResolveSession(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, err
	}
	if session.UserID != userID || session.Expired(s.now()) {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, err
	}

	return &models.Identity{UserID: user.ID, UserName: user.UserName, SessionID: session.ID}, nil
}

// --- helpers below ---

func (s *UserService) openSession(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()

	expiresAt, err := s.repomanager.Sessions(s.db).Create(ctx, sessionID, userID, s.sessionValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(userID, sessionID, s.jwtSecret, expiresAt)
	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}
	return token, nil
}

// getDummyHash returns a hash of a random password at the service's cost,
// compared against when the username is unknown.
func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.hashCost)
		if err != nil {
			panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
