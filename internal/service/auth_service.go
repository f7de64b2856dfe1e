package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthSettings describes the single operator allowed to use the API.
type AuthSettings struct {
	Username     string
	PasswordHash string // bcrypt
	SigningKey   string
	TokenTTL     time.Duration
}

// AuthService issues and checks operator tokens.
type AuthService struct {
	settings AuthSettings
	now      func() time.Time
}

func NewAuthService(settings AuthSettings) *AuthService {
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = defaultTokenTTL
	}
	return &AuthService{settings: settings, now: time.Now}
}

// Claims defines JWT claims; the subject carries the operator name.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken validates credentials and returns a JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	if username != s.settings.Username {
		return "", ErrUserNotFound
	}
	if err := verifyPassword(s.settings.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(username)
}

// ParseToken parses a JWT and returns the operator name.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.settings.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject != s.settings.Username {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HashPassword returns the bcrypt hash to put in auth.password_hash.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.settings.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(s.settings.SigningKey))
}
