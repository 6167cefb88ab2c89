package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
	"github.com/billtrack/billing-system/internal/infrastructure/crypto"
	"github.com/billtrack/billing-system/internal/infrastructure/token"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	next  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.next++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("id-%d", r.next)
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

type stubThrottle struct {
	exceeded bool
	failures int
	resets   int
}

func (t *stubThrottle) Exceeded(context.Context, string) (bool, error) { return t.exceeded, nil }
func (t *stubThrottle) RecordFailure(context.Context, string) error    { t.failures++; return nil }
func (t *stubThrottle) Reset(context.Context, string) error            { t.resets++; return nil }

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

func newTestIdentity(repo ports.UserRepository, throttle ports.LoginThrottle, audit ports.AuditSink) (*IdentityService, *token.JWTCodec) {
	codec := token.NewJWTCodec("test-secret", time.Hour)
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)
	return NewIdentityService(repo, hasher, codec, throttle, audit, zerolog.Nop()), codec
}

func TestIdentityService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestIdentity(repo, nil, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "alice@x.com", Password: "pass123", Name: "Alice", Phone: "555", Role: domain.RoleAccountant,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must be sanitized")
	}

	stored, err := repo.FindByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "pass123" || stored.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestIdentityService_Register_InvalidRole(t *testing.T) {
	svc, _ := newTestIdentity(newStubUserRepo(), nil, nil)

	for _, role := range []string{"", "superuser", "Admin", "billingofficer"} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{
			Email: "bob@x.com", Password: "pass", Role: role,
		})
		if err != domain.ErrInvalidRole {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestIdentityService_Register_MissingFields(t *testing.T) {
	svc, _ := newTestIdentity(newStubUserRepo(), nil, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "p", Role: domain.RoleAdmin}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Role: domain.RoleAdmin}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestIdentityService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestIdentity(repo, nil, nil)

	input := ports.RegisterInput{Email: "a@x.com", Password: "p1", Role: domain.RoleAdmin}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	input.Password = "p2"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	users, _ := repo.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("store contains %d records, want 1", len(users))
	}
}

func TestIdentityService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestIdentity(repo, nil, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "carol@x.com", Password: "s3cret", Name: "Carol", Role: domain.RoleBillingOfficer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if result.User.PasswordHash != "" {
		t.Fatalf("login result must be sanitized")
	}

	claims, err := codec.Verify(result.Token, time.Now().UTC())
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleBillingOfficer {
		t.Fatalf("token role = %q, want %q", claims.Role, domain.RoleBillingOfficer)
	}
	if claims.SubjectID != result.User.ID {
		t.Fatalf("token subject = %q, want %q", claims.SubjectID, result.User.ID)
	}
}

func TestIdentityService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestIdentity(newStubUserRepo(), nil, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "dave@x.com", Password: "goodpass", Role: domain.RoleAccountant,
	})
	if _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_Login_UserNotFound(t *testing.T) {
	svc, _ := newTestIdentity(newStubUserRepo(), nil, nil)

	if _, err := svc.Login(context.Background(), "missing@x.com", "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentityService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc, _ := newTestIdentity(repo, throttle, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "eve@x.com", Password: "pw", Role: domain.RoleAccountant,
	})

	if _, err := svc.Login(context.Background(), "eve@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("failure not recorded")
	}

	throttle.exceeded = true
	if _, err := svc.Login(context.Background(), "eve@x.com", "pw"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	throttle.exceeded = false
	if _, err := svc.Login(context.Background(), "eve@x.com", "pw"); err != nil {
		t.Fatalf("login after throttle lift: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("counter not reset on success")
	}
}

func TestIdentityService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestIdentity(repo, nil, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "frank@x.com", Password: "oldpass", Role: domain.RoleAdmin,
	})

	before, err := svc.Login(context.Background(), "frank@x.com", "oldpass")
	if err != nil {
		t.Fatalf("login before change: %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), "frank@x.com", "newpass"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if _, err := svc.Login(context.Background(), "frank@x.com", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still works: %v", err)
	}
	if _, err := svc.Login(context.Background(), "frank@x.com", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Tokens issued before the change ride until their own expiry.
	if _, err := codec.Verify(before.Token, time.Now().UTC()); err != nil {
		t.Fatalf("pre-change token invalidated: %v", err)
	}
}

func TestIdentityService_UpdatePassword_Errors(t *testing.T) {
	svc, _ := newTestIdentity(newStubUserRepo(), nil, nil)

	if err := svc.UpdatePassword(context.Background(), "", "new"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if err := svc.UpdatePassword(context.Background(), "a@x.com", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if err := svc.UpdatePassword(context.Background(), "ghost@x.com", "new"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentityService_AuditTrail(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc, _ := newTestIdentity(repo, nil, audit)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "gina@x.com", Password: "pw", Role: domain.RoleAccountant,
	})
	_, _ = svc.Login(context.Background(), "gina@x.com", "wrong")
	_, _ = svc.Login(context.Background(), "gina@x.com", "pw")
	_ = svc.UpdatePassword(context.Background(), "gina@x.com", "pw2")

	want := []string{
		domain.AuditRegistered,
		domain.AuditLoginFailure,
		domain.AuditLoginSuccess,
		domain.AuditPasswordChanged,
	}
	got := audit.actions()
	if len(got) != len(want) {
		t.Fatalf("audit actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit actions = %v, want %v", got, want)
		}
	}
}
