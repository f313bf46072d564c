package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"salon/config"
	"salon/internal/domain"
	"salon/pkg/auth"
)

const adminRole = "admin"

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthServiceImpl authenticates the single salon operator and issues the
// bearer tokens required by the admin endpoints.
type AuthServiceImpl struct {
	admin     config.AdminConfig
	jwtConfig config.JWTConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewAuthService(admin config.AdminConfig, jwtConfig config.JWTConfig, now func() time.Time, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		admin:     admin,
		jwtConfig: jwtConfig,
		now:       now,
		logger:    logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest) (*domain.Tokens, error) {
	if subtle.ConstantTimeCompare([]byte(dto.Username), []byte(s.admin.Username)) != 1 {
		s.logger.Warn("login with unknown username", zap.String("username", dto.Username))
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(dto.Password, s.admin.PasswordHash)
	if err != nil {
		s.logger.Error("admin password hash is unusable", zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Warn("login with wrong password", zap.String("username", dto.Username))
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.generateToken(dto.Username)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return tokens, nil
}

// ParseToken returns the subject of a valid admin token.
func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (string, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Role != adminRole || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *AuthServiceImpl) generateToken(subject string) (*domain.Tokens, error) {
	now := s.now()
	expiresAt := now.Add(s.jwtConfig.AccessTokenTTL)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: adminRole,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, err
	}

	return &domain.Tokens{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}
