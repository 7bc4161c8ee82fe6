package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
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
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailInUse
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubThrottle struct {
	failures map[string]int
	blocked  map[string]bool
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), blocked: make(map[string]bool)}
}

func (t *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return t.blocked[email], nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.failures[email] = 0
	return nil
}

func newTestUserService(t *testing.T, repo ports.UserRepository, throttle LoginThrottle) *UserService {
	t.Helper()
	issuer, err := NewTokenIssuer("secret", "cameshop-api", "cameshop-clients", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return NewUserService(repo, issuer, throttle, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "Abcdef1@" || user.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}
	if !domain.VerifyPassword("Abcdef1@", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("role = %q, want Customer", user.Role)
	}
	if !user.Active {
		t.Fatalf("expected new account to be active")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestUserService_Register_EmailInUse(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Other", "ana@x.com", "Abcdef1@"); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc := newTestUserService(t, repo, throttle)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ana@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user == nil || user.Email != "ana@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleCustomer {
		t.Fatalf("role claim = %q, want Customer", claims.Role)
	}
}

func TestUserService_Login_FailuresShareOneError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// wrong password and unknown email must be indistinguishable
	_, _, errWrongPw := svc.Login(context.Background(), "ana@x.com", "wrong")
	_, _, errNoUser := svc.Login(context.Background(), "ghost@x.com", "Abcdef1@")

	if !errors.Is(errWrongPw, domain.ErrInvalidLogin) {
		t.Fatalf("wrong password: expected ErrInvalidLogin, got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, domain.ErrInvalidLogin) {
		t.Fatalf("unknown email: expected ErrInvalidLogin, got %v", errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", errWrongPw, errNoUser)
	}
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := repo.users[user.ID]
	stored.Active = false

	if _, _, err := svc.Login(context.Background(), "ana@x.com", "Abcdef1@"); !errors.Is(err, domain.ErrInvalidLogin) {
		t.Fatalf("expected ErrInvalidLogin for inactive account, got %v", err)
	}
}

func TestUserService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	throttle.blocked["ana@x.com"] = true
	svc := newTestUserService(t, repo, throttle)

	if _, _, err := svc.Login(context.Background(), "ana@x.com", "Abcdef1@"); !errors.Is(err, domain.ErrLoginThrottled) {
		t.Fatalf("expected ErrLoginThrottled, got %v", err)
	}
}

func TestUserService_Login_RecordsAndResetsFailures(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc := newTestUserService(t, repo, throttle)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "ana@x.com", "wrong")
	if throttle.failures["ana@x.com"] != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures["ana@x.com"])
	}

	if _, _, err := svc.Login(context.Background(), "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if throttle.failures["ana@x.com"] != 0 {
		t.Fatalf("expected failures reset, got %d", throttle.failures["ana@x.com"])
	}
}

func TestUserService_Get_SelfOrAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// self
	if _, err := svc.Get(context.Background(), ports.Caller{UserID: user.ID, Role: domain.RoleCustomer}, user.ID); err != nil {
		t.Fatalf("self get: %v", err)
	}

	// admin fetching someone else
	if _, err := svc.Get(context.Background(), ports.Caller{UserID: "admin_1", Role: domain.RoleAdmin}, user.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	// another customer
	if _, err := svc.Get(context.Background(), ports.Caller{UserID: "user_999", Role: domain.RoleCustomer}, user.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Update(context.Background(), user.ID, "Ana Maria", "ana.maria@x.com", "Newpass1@"); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated := repo.users[user.ID]
	if updated.Name != "Ana Maria" || updated.Email != "ana.maria@x.com" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if !domain.VerifyPassword("Newpass1@", updated.PasswordHash) {
		t.Fatalf("password not re-hashed")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	err := svc.Update(context.Background(), "missing", "Ana", "ana@x.com", "Abcdef1@")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_EmailTakenByOther(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "Abcdef1@"); err != nil {
		t.Fatalf("register: %v", err)
	}
	bob, err := svc.Register(context.Background(), "Bob", "bob@x.com", "Abcdef1@")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.Update(context.Background(), bob.ID, "Bob", "ana@x.com", "Abcdef1@")
	if !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(t, repo, nil)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
