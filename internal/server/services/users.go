// Package services contains server-side business logic. UserService owns
// registration, login and token resolution; PostService owns posts and the
// ownership rule that guards their mutation.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	"github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/passwords"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides authentication operations. Every successful Register
// or Login overwrites the user's stored token, so only the most recently
// issued token resolves.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                passwords.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	log                   logging.Logger

	dummyOnce sync.Once
	dummy     string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher passwords.Hasher,
	cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		log:                   log.With("service", "users"),
	}
}

// Register creates a user and returns the token that is now its only valid one.
func (s *UserService) Register(ctx context.Context, userName, password string) (string, error) {
	if userName == "" || password == "" {
		return "", common.ErrorValidation
	}

	token, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (string, error) {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByName(ctx, userName)
		if err == nil {
			return "", common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return "", err
		}

		hash, err := s.hasher.Hash(password)
		if errors.Is(err, passwords.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}

		token, err := s.issueToken(userName)
		if err != nil {
			return "", err
		}

		if err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash, Token: token}); err != nil {
			return "", err
		}
		return token, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		if errors.Is(err, common.ErrorValidation) {
			s.log.Info(ctx, "register rejected", "user", userName, "error", err)
			return "", common.ErrorValidation
		}
		s.log.Error(ctx, "register failed", "user", userName, "error", err)
		return "", common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "user", userName)
	return token, nil
}

// Login verifies the password and issues a fresh token, revoking the previous
// one. Unknown users and wrong passwords fail identically.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	token, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (string, error) {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByName(ctx, userName)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// Same hashing work as a wrong password.
				s.hasher.Verify(password, s.dummyHash())
				return "", common.ErrorUnauthorized
			}
			return "", err
		}

		if !s.hasher.Verify(password, user.PasswordHash) {
			return "", common.ErrorUnauthorized
		}

		token, err := s.issueToken(userName)
		if err != nil {
			return "", err
		}

		if err := repo.UpdateToken(ctx, userName, token); err != nil {
			return "", err
		}
		return token, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.log.Info(ctx, "login rejected", "user", userName)
			return "", common.ErrorUnauthorized
		}
		s.log.Error(ctx, "login failed", "user", userName, "error", err)
		return "", common.ErrorInternal
	}

	s.log.Info(ctx, "user logged in", "user", userName)
	return token, nil
}

// Resolve maps a presented token to the identity it proves. Every rejection
// is common.ErrorUnauthorized; the wrapped cause is for logs only.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	userName, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users(s.db).GetUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrorUnauthorized)
		}
		s.log.Error(ctx, "resolve failed", "user", userName, "error", err)
		return nil, common.ErrorInternal
	}

	if subtle.ConstantTimeCompare([]byte(user.Token), []byte(token)) != 1 {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrStaleToken)
	}

	return &models.Identity{UserName: user.UserName}, nil
}

// dummyHash is a hash of a throwaway password, computed once with the
// configured scheme and verified against for unknown users.
func (s *UserService) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.Error(context.Background(), "dummy hash", "error", err)
			return
		}
		s.dummy = h
	})
	return s.dummy
}

func (s *UserService) issueToken(userName string) (string, error) {
	token, err := auth.GenerateToken(userName, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
