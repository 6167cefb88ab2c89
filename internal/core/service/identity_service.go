package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// IdentityService implements registration, login and password update. It
// composes the credential store, the password hasher and the token codec;
// throttle and audit are optional collaborators and may be nil.
type IdentityService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	codec    ports.TokenCodec
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	logger   zerolog.Logger
}

func NewIdentityService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *IdentityService {
	return &IdentityService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		throttle: throttle,
		audit:    audit,
		logger:   logger,
	}
}

// Register creates a new account with the given role. The role must be a
// member of the closed role set. The duplicate check here is best-effort:
// the unique email index in the store is what actually decides the race
// between two concurrent registrations.
func (s *IdentityService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	s.record(domain.AuditEvent{Email: created.Email, Action: domain.AuditRegistered, Role: created.Role, OccurredAt: now})

	return created.Sanitized(), nil
}

// Login authenticates by email and password and issues a session token
// carrying the account's current id and role.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if exceeded := s.attemptsExceeded(ctx, email); exceeded {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		s.record(domain.AuditEvent{Email: email, Action: domain.AuditLoginFailure, OccurredAt: now})
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Role, now)
	if err != nil {
		return nil, err
	}

	s.resetAttempts(ctx, email)
	s.record(domain.AuditEvent{Email: email, Action: domain.AuditLoginSuccess, Role: user.Role, OccurredAt: now})

	return &ports.LoginResult{Token: token, User: user.Sanitized()}, nil
}

// UpdatePassword overwrites the account's password hash in place. Tokens
// issued before the change stay valid until their own expiry; there is no
// revocation list.
func (s *IdentityService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("password updated")
	s.record(domain.AuditEvent{Email: email, Action: domain.AuditPasswordChanged, OccurredAt: time.Now().UTC()})
	return nil
}

func (s *IdentityService) record(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}

// attemptsExceeded fails open: a throttle backend error only logs.
func (s *IdentityService) attemptsExceeded(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	exceeded, err := s.throttle.Exceeded(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle unavailable")
		return false
	}
	return exceeded
}

func (s *IdentityService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *IdentityService) resetAttempts(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle reset failed")
	}
}
