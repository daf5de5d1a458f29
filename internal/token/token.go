// Package token signs and verifies the stateless tokens used for sessions
// and password resets. Tokens are HMAC-SHA256 JWTs over a single secret,
// namespaced by a purpose claim so one kind never verifies as the other.
// Nothing is stored server-side; validity is computed from the signed
// contents and the clock, and every failure mode collapses to "invalid".
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeSession = "session"
	PurposeReset   = "password-reset"
)

const issuer = "dormcart"

// ErrInvalidToken covers every verification failure: bad signature,
// structural decode error, wrong purpose, or elapsed lifetime. Callers get
// no finer-grained cause.
var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	UserID  int64  `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a secret injected at startup.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token carrying the user id under the given purpose.
// A zero ttl produces a token with no embedded expiry; its lifetime is then
// bounded only by the verifier's maxAge (or by the cookie holding it).
func (s *Service) Issue(userID int64, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and purpose and returns the embedded user id.
// When maxAge > 0 the token must additionally have been issued within that
// window. Any failure returns ErrInvalidToken.
func (s *Service) Verify(tokenStr, purpose string, maxAge time.Duration) (int64, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}

	c, ok := tok.Claims.(*claims)
	if !ok || c.UserID <= 0 || c.Purpose != purpose {
		return 0, ErrInvalidToken
	}

	if maxAge > 0 {
		if c.IssuedAt == nil || time.Since(c.IssuedAt.Time) > maxAge {
			return 0, ErrInvalidToken
		}
	}

	return c.UserID, nil
}

// ResetService issues and verifies password-reset tokens: single-purpose,
// valid for a fixed window from issuance, never persisted.
type ResetService struct {
	tokens *Service
	maxAge time.Duration
}

func NewResetService(tokens *Service, maxAge time.Duration) *ResetService {
	return &ResetService{tokens: tokens, maxAge: maxAge}
}

// Issue returns an opaque URL-safe token bound to the user id.
func (s *ResetService) Issue(userID int64) (string, error) {
	return s.tokens.Issue(userID, PurposeReset, 0)
}

// Verify returns the user id the token was issued for, or false on any
// decode, signature, purpose, or expiry failure.
func (s *ResetService) Verify(tokenStr string) (int64, bool) {
	userID, err := s.tokens.Verify(tokenStr, PurposeReset, s.maxAge)
	if err != nil {
		return 0, false
	}
	return userID, true
}
