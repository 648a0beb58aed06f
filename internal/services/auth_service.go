package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tourvia/internal/config"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// Login authenticates a user and returns JWT tokens.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error)

	// Register creates a new user account.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)

	// RefreshToken generates new tokens using a refresh token.
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// ValidateToken validates an access token and returns the user with the
	// admin flag populated.
	ValidateToken(ctx context.Context, tokenString string) (*domain.User, error)
}

// TokenClaims represents JWT token claims.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repository.UserRepository
	config    config.SecurityConfig
	jwtSecret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, cfg config.SecurityConfig) AuthService {
	return &authService{
		userRepo:  userRepo,
		config:    cfg,
		jwtSecret: []byte(cfg.GetJWTSecret()),
	}
}

// Login authenticates a user and returns JWT tokens.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	return s.generateTokenPair(user)
}

// Register creates a new user account.
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	user, err := s.userRepo.Register(ctx, &req)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshToken generates new tokens using a refresh token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Invalid refresh token")
	}
	if claims.TokenType != "refresh" {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Token is not a refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewAuthenticationError("USER_NOT_FOUND", "User no longer exists")
	}
	return s.generateTokenPair(user)
}

// ValidateToken validates an access token and resolves the current user.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Invalid or expired token")
	}
	if claims.TokenType != "access" {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Token is not an access token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewAuthenticationError("USER_NOT_FOUND", "User no longer exists")
	}

	isAdmin, err := s.userRepo.IsAdmin(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admin membership: %w", err)
	}
	user.IsAdmin = isAdmin

	return user, nil
}

// generateTokenPair creates both access and refresh tokens.
func (s *authService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.config.GetJWTExpiration())
	refreshExpiry := now.Add(s.config.GetRefreshTokenExpiration())

	accessClaims := &TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	refreshClaims := &TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

// parseToken parses and validates a JWT token.
func (s *authService) parseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}
