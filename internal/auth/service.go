package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is what a token holder may do in a session.
type Role string

const (
	// RolePresenter may submit frames.
	RolePresenter Role = "presenter"
	// RoleViewer only receives viewport updates.
	RoleViewer Role = "viewer"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 12 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role")
)

// Claims are the JWT claims of a session token. The subject is the
// session id.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the session the token grants access to.
func (c *Claims) SessionID() string {
	return c.Subject
}

// CanPresent reports whether the holder may submit frames.
func (c *Claims) CanPresent() bool {
	return c.Role == RolePresenter
}

type Service struct {
	jwtSecret []byte
	now       func() time.Time
}

func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// IssueToken signs an HS256 token granting role in sessionID.
func (s *Service) IssueToken(sessionID string, role Role) (string, error) {
	if role != RolePresenter && role != RoleViewer {
		return "", fmt.Errorf("issue token: %w: %q", ErrInvalidRole, role)
	}

	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses tokenString and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Role != RolePresenter && claims.Role != RoleViewer {
		return nil, ErrInvalidRole
	}

	return &claims, nil
}
