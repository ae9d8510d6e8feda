package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// ErrWrongTokenType is returned when a refresh token is used as access token or vice versa
var ErrWrongTokenType = errors.New("wrong token type")

// CustomClaims представляет JWT claims для нашего приложения
// RegisteredClaims.ID содержит jti, по нему работает blacklist
type CustomClaims struct {
	Username  string           `json:"username"`
	TokenType models.TokenType `json:"token_type"`
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// RevokedToken returns the blacklist entry for these claims
func (c *CustomClaims) RevokedToken() *models.RevokedToken {
	rt := &models.RevokedToken{
		JTI:       c.ID,
		Type:      c.TokenType,
		RevokedAt: time.Now(),
	}
	if c.ExpiresAt != nil {
		rt.ExpiresAt = c.ExpiresAt.Time
	}
	return rt
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret          []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GenerateToken создает подписанный токен заданного типа с новым jti
func GenerateToken(cfg JWTConfig, tokenType models.TokenType, userID int64, username string) (string, error) {
	ttl := cfg.AccessTokenTTL
	if tokenType == models.TokenTypeRefresh {
		ttl = cfg.RefreshTokenTTL
	}

	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// GenerateAccessToken создает новый JWT access token
// Возвращает токен и время жизни в секундах
func GenerateAccessToken(cfg JWTConfig, userID int64, username string) (string, int64, error) {
	token, err := GenerateToken(cfg, models.TokenTypeAccess, userID, username)
	if err != nil {
		return "", 0, err
	}
	return token, int64(cfg.AccessTokenTTL.Seconds()), nil
}

// GenerateTokenPair создает access и refresh токены
func GenerateTokenPair(cfg JWTConfig, userID int64, username string) (api.TokenResponse, error) {
	accessToken, expiresIn, err := GenerateAccessToken(cfg, userID, username)
	if err != nil {
		return api.TokenResponse{}, err
	}

	refreshToken, err := GenerateToken(cfg, models.TokenTypeRefresh, userID, username)
	if err != nil {
		return api.TokenResponse{}, err
	}

	return api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// ValidateToken валидирует подпись, срок действия и тип токена
func ValidateToken(cfg JWTConfig, tokenString string, expected models.TokenType) (*CustomClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != expected {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, expected)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token has no jti")
	}

	return claims, nil
}
