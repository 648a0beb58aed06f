package services

import (
	"context"
	"testing"
	"time"

	"tourvia/internal/domain"
)

type testSecurityConfig struct{}

func (testSecurityConfig) GetJWTSecret() string {
	return "test-secret-key-that-is-long-enough-for-validation"
}
func (testSecurityConfig) GetJWTExpiration() time.Duration          { return time.Hour }
func (testSecurityConfig) GetRefreshTokenExpiration() time.Duration { return 24 * time.Hour }

func testUserRepo() *mockUserRepo {
	return &mockUserRepo{
		authenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email == "kim@example.com" && password == "correct-horse" {
				return &domain.User{ID: "user1", Email: email}, nil
			}
			return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid email or password")
		},
		getByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "kim@example.com"}, nil
		},
		isAdminFn: func(_ context.Context, userID string) (bool, error) {
			return userID == "admin1", nil
		},
	}
}

func TestAuthServiceLoginAndValidate(t *testing.T) {
	svc := NewAuthService(testUserRepo(), testSecurityConfig{})

	pair, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "kim@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Login() returned empty tokens")
	}

	user, err := svc.ValidateToken(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if user.ID != "user1" {
		t.Errorf("validated user = %q, want user1", user.ID)
	}
	if user.IsAdmin {
		t.Error("regular user flagged as admin")
	}
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	svc := NewAuthService(testUserRepo(), testSecurityConfig{})

	if _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "kim@example.com",
		Password: "wrong",
	}); err == nil {
		t.Error("Login() with wrong password succeeded")
	}
}

func TestAuthServiceRefreshTokenTypeChecks(t *testing.T) {
	svc := NewAuthService(testUserRepo(), testSecurityConfig{})

	pair, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "kim@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// An access token must not pass as a refresh token, and vice versa.
	if _, err := svc.RefreshToken(context.Background(), pair.AccessToken); err == nil {
		t.Error("RefreshToken() accepted an access token")
	}
	if _, err := svc.ValidateToken(context.Background(), pair.RefreshToken); err == nil {
		t.Error("ValidateToken() accepted a refresh token")
	}

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("refreshed pair has empty access token")
	}
}

func TestAuthServiceValidateGarbage(t *testing.T) {
	svc := NewAuthService(testUserRepo(), testSecurityConfig{})

	if _, err := svc.ValidateToken(context.Background(), "not-a-token"); err == nil {
		t.Error("ValidateToken() accepted garbage")
	}
}
