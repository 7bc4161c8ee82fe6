package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	// TooMany reports whether the email has exceeded the failure budget.
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// UserService implements account registration, login, and management.
type UserService struct {
	repo     ports.UserRepository
	issuer   *TokenIssuer
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, issuer *TokenIssuer, throttle LoginThrottle, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, issuer: issuer, throttle: throttle, log: log}
}

// Register creates a Customer account. The email existence check here is a
// fast-fail courtesy; the repository's unique index is the real guard against
// two concurrent registrations racing on the same email.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access token. Unknown email,
// wrong password, and an inactive account all return ErrInvalidLogin so the
// failure cause is not enumerable by the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if blocked {
			return "", nil, domain.ErrLoginThrottled
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidLogin
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !user.Active || !domain.VerifyPassword(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidLogin
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *UserService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// Get returns the user with the given id. A non-admin caller may only fetch
// their own record.
func (s *UserService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.User, error) {
	if caller.Role != domain.RoleAdmin && caller.UserID != id {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Update replaces name, email, and password on an existing account,
// re-hashing the new password. Moving the email onto one already held by
// another account fails with ErrEmailInUse.
func (s *UserService) Update(ctx context.Context, id, name, email, password string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if other, err := s.repo.FindByEmail(ctx, email); err == nil && other.ID != id {
		return domain.ErrEmailInUse
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("update user: %w", err)
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	user.Name = name
	user.Email = email
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return nil
}

// Delete removes the account. Deleting a missing id reports ErrUserNotFound,
// never a silent no-op.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
