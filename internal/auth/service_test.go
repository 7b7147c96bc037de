package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/security"
)

type stubProfilesRepo struct {
	created   *models.Profile
	createErr error
	byEmail   *models.Profile
	findErr   error
	lastLogin *time.Time
}

func (s *stubProfilesRepo) Create(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	profile.ID = uuid.New()
	s.created = profile
	return profile, nil
}

func (s *stubProfilesRepo) FindByEmail(_ context.Context, _ string) (*models.Profile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.byEmail, nil
}

func (s *stubProfilesRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubSessions struct {
	opened  []string
	revoked []string
}

func (s *stubSessions) Open(_ context.Context, accessID string) error {
	s.opened = append(s.opened, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "inspectai-test", ExpirationMinutes: 30}
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	return jwtCfg, passwordCfg
}

func newTestService(t *testing.T, repo *stubProfilesRepo, sessions *stubSessions) Service {
	t.Helper()
	jwtCfg, passwordCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		ProfilesRepo:   repo,
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
		PasswordConfig: passwordCfg,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func assertAuthCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("code = %s, want %s", typed.Code(), code)
	}
}

func TestRegisterCreatesInspectorAndOpensSession(t *testing.T) {
	repo := &stubProfilesRepo{}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New.Inspector@Example.com ",
		Password: "long-enough-pass",
		FullName: "New Inspector",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if repo.created.Email != "new.inspector@example.com" {
		t.Fatalf("email not normalized: %s", repo.created.Email)
	}
	if repo.created.Role != enums.UserRoleInspector {
		t.Fatalf("role = %s", repo.created.Role)
	}
	if repo.created.PasswordHash == "long-enough-pass" {
		t.Fatal("password stored in the clear")
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if len(sessions.opened) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.opened))
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	repo := &stubProfilesRepo{createErr: errors.New(`duplicate key value violates unique constraint "idx_profiles_email"`)}
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "long-enough-pass",
		FullName: "Dup",
	})
	assertAuthCode(t, err, pkgerrors.CodeConflict)
}

func TestRegisterMissingFieldNamesField(t *testing.T) {
	svc := newTestService(t, &stubProfilesRepo{}, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.c", Password: "pw-is-long"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "Missing required field: fullName" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	_, passwordCfg := testConfigs()
	hash, err := security.HashPassword("correct-horse", passwordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &stubProfilesRepo{byEmail: &models.Profile{
		ID:           uuid.New(),
		Email:        "inspector@example.com",
		PasswordHash: hash,
		FullName:     "Casey",
		Role:         enums.UserRoleInspector,
	}}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "inspector@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.User == nil {
		t.Fatalf("resp = %+v", resp)
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login recorded")
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	_, passwordCfg := testConfigs()
	hash, _ := security.HashPassword("correct-horse", passwordCfg)
	repo := &stubProfilesRepo{byEmail: &models.Profile{
		ID:           uuid.New(),
		PasswordHash: hash,
		Role:         enums.UserRoleInspector,
	}}
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "x@y.z", Password: "wrong"})
	assertAuthCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	repo := &stubProfilesRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assertAuthCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, &stubProfilesRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("revoked = %v", sessions.revoked)
	}
}

func TestLogoutBlankAccessIDIsUnauthorized(t *testing.T) {
	svc := newTestService(t, &stubProfilesRepo{}, &stubSessions{})
	assertAuthCode(t, svc.Logout(context.Background(), " "), pkgerrors.CodeUnauthorized)
}
