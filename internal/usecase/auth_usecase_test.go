package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"appointment-booking-api/config"
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/repository"
	"appointment-booking-api/internal/service"
	"appointment-booking-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// memoryTokenStore stands in for Redis in tests.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: map[string]struct{}{}}
}

func (s *memoryTokenStore) key(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (s *memoryTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[s.key(userID, tokenID)] = struct{}{}
	return nil
}

func (s *memoryTokenStore) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[s.key(userID, tokenID)]
	return ok, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, s.key(userID, tokenID))
	return nil
}

var _ service.TokenStore = (*memoryTokenStore)(nil)

func newAuthFixture(t *testing.T) (AuthUsecase, *jwt.JWTService, *memoryTokenStore) {
	t.Helper()

	f := newFixture(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: time.Minute,
	})
	tokenStore := newMemoryTokenStore()
	auditService := service.NewAuditService(f.db, log, repository.NewAuditLogRepository())

	auth := NewAuthUsecase(
		f.db, log,
		repository.NewUserRepository(),
		repository.NewRoleRepository(),
		jwtService, tokenStore, auditService,
	)
	return auth, jwtService, tokenStore
}

func TestRegisterAndLogin(t *testing.T) {
	auth, jwtService, tokenStore := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, &dto.RegisterRequest{Email: "new@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != "user" {
		t.Errorf("default role = %q, want user", user.Role)
	}

	result, err := auth.Login(ctx, &dto.LoginRequest{Email: "new@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	claims, err := jwtService.ValidateToken(result.AccessToken)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "new@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	active, _ := tokenStore.IsActive(ctx, claims.UserID, claims.TokenID)
	if !active {
		t.Error("expected issued token registered as active")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := auth.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "other456"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &dto.RegisterRequest{Email: "who@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := auth.Login(ctx, &dto.LoginRequest{Email: "who@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	auth, jwtService, tokenStore := newAuthFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &dto.RegisterRequest{Email: "bye@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := auth.Login(ctx, &dto.LoginRequest{Email: "bye@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := jwtService.ValidateToken(result.AccessToken)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}

	if err := auth.Logout(ctx, claims.UserID, claims.TokenID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	active, _ := tokenStore.IsActive(ctx, claims.UserID, claims.TokenID)
	if active {
		t.Error("expected token inactive after logout")
	}
}
