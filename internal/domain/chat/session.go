package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/Hitarth-ai/ZodiAI/pkg/errors"
)

// SessionService issues and validates anonymous guest sessions for the chat
// frontend. Sessions carry no identity, only a stable transcript key.
type SessionService interface {
	Issue(ctx context.Context) (Session, error)
	Validate(ctx context.Context, token string) (string, error)
}

// SessionConfig drives token issuance.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type sessionService struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService builds the session issuer. Without a configured secret a
// random one is generated, which invalidates sessions across restarts.
func NewSessionService(cfg SessionConfig, logger *slog.Logger) SessionService {
	secret := cfg.Secret
	log := logger.With("component", "chat.session")
	if secret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
		log.Warn("SESSION_SECRET not set, generated an ephemeral secret; sessions will not survive restarts")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionService{
		secret: []byte(secret),
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *sessionService) Issue(_ context.Context) (Session, error) {
	now := s.now()
	id := uuid.NewString()
	claims := sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Session{}, apperrors.Wrap("session_error", "failed to sign session token", err)
	}
	return Session{ID: id, Token: signed, ExpiresAt: now.Add(s.ttl)}, nil
}

func (s *sessionService) Validate(_ context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperrors.Wrap("invalid_token", "session token validation failed", err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", apperrors.Wrap("invalid_token", "session token invalid", nil)
	}
	return claims.SessionID, nil
}
