package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"example.com/workoutlog/internal/domain"
)

// Config holds token signing and verification parameters.
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// ErrMissingToken is returned when the Authorization header is absent.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps parsing/validation errors.
var ErrInvalidToken = errors.New("invalid bearer token")

// IssueToken mints an HS256 JWT identifying the user.
func IssueToken(user domain.User, cfg Config) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"is_admin": user.Admin,
		"iss":      cfg.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// ParseToken validates a JWT and returns the Actor it identifies.
func ParseToken(token string, cfg Config) (domain.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Actor{}, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return domain.Actor{}, ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return domain.Actor{UserID: subject, Admin: isAdmin}, nil
}
