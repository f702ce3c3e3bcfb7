package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/pkg/hash"
)

const (
	passcodeTTL     = 10 * time.Minute
	sessionTTL      = 30 * 24 * time.Hour
	sessionTokenLen = 32
)

var (
	// ErrInvalidEmail is returned for malformed email addresses. Resolved
	// before any passcode is dispatched.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrPasscodeMismatch covers wrong, expired, and never-issued passcodes.
	ErrPasscodeMismatch = errors.New("passcode is incorrect or expired")
	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")
)

// Mailer dispatches a one-time passcode to an email address. The production
// deployment plugs in a real provider; the default logs the code.
type Mailer interface {
	SendPasscode(ctx context.Context, email, passcode string) error
}

// LogMailer writes passcodes to the application log instead of sending mail.
type LogMailer struct{}

func (LogMailer) SendPasscode(_ context.Context, email, passcode string) error {
	log.Printf("otp: passcode for %s: %s", hash.EmailIdentityKey(email)[:12], passcode)
	return nil
}

// OTPService implements the email one-time-passcode exchange. Passcodes and
// sessions live in Redis with TTLs; without Redis an in-memory map keeps
// single-instance deployments working.
type OTPService struct {
	cache    *CacheService
	mailer   Mailer
	validate *validator.Validate

	mu       sync.Mutex
	local    map[string]localEntry // fallback passcode store
	sessions map[string]string     // fallback session store, token -> email
}

type localEntry struct {
	passcode string
	expires  time.Time
}

func NewOTPService(cache *CacheService, mailer Mailer) *OTPService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &OTPService{
		cache:    cache,
		mailer:   mailer,
		validate: validator.New(),
		local:    make(map[string]localEntry),
		sessions: make(map[string]string),
	}
}

// Begin validates the email, generates a 6-digit passcode, stores it with a
// TTL and dispatches it. Completion of the exchange is asynchronous.
func (s *OTPService) Begin(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}

	passcode, err := generatePasscode()
	if err != nil {
		return err
	}

	key := passcodeKey(email)
	if rdb := s.cache.Client(); rdb != nil {
		if err := rdb.Set(ctx, key, passcode, passcodeTTL).Err(); err != nil {
			return err
		}
	} else {
		s.mu.Lock()
		s.local[key] = localEntry{passcode: passcode, expires: time.Now().Add(passcodeTTL)}
		s.mu.Unlock()
	}

	return s.mailer.SendPasscode(ctx, email, passcode)
}

// Confirm exchanges a passcode for a session. The passcode is consumed on
// success so it cannot be replayed.
func (s *OTPService) Confirm(ctx context.Context, email, passcode string) (*model.SessionResponse, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}

	key := passcodeKey(email)
	var stored string
	if rdb := s.cache.Client(); rdb != nil {
		v, err := rdb.Get(ctx, key).Result()
		if err != nil {
			return nil, ErrPasscodeMismatch
		}
		stored = v
	} else {
		s.mu.Lock()
		entry, ok := s.local[key]
		s.mu.Unlock()
		if !ok || time.Now().After(entry.expires) {
			return nil, ErrPasscodeMismatch
		}
		stored = entry.passcode
	}

	if stored != passcode {
		return nil, ErrPasscodeMismatch
	}

	token, err := gonanoid.New(sessionTokenLen)
	if err != nil {
		return nil, err
	}

	if rdb := s.cache.Client(); rdb != nil {
		if err := rdb.Del(ctx, key).Err(); err != nil {
			return nil, err
		}
		if err := rdb.Set(ctx, sessionKey(token), email, sessionTTL).Err(); err != nil {
			return nil, err
		}
	} else {
		s.mu.Lock()
		delete(s.local, key)
		s.sessions[token] = email
		s.mu.Unlock()
	}

	return &model.SessionResponse{
		Token:       token,
		IdentityKey: hash.EmailIdentityKey(email),
	}, nil
}

// SessionEmail resolves a session token to its verified email.
func (s *OTPService) SessionEmail(ctx context.Context, token string) (string, error) {
	if rdb := s.cache.Client(); rdb != nil {
		email, err := rdb.Get(ctx, sessionKey(token)).Result()
		if err != nil {
			return "", ErrSessionNotFound
		}
		return email, nil
	}

	s.mu.Lock()
	email, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return "", ErrSessionNotFound
	}
	return email, nil
}

// SignOut deletes the session. Idempotent.
func (s *OTPService) SignOut(ctx context.Context, token string) error {
	if rdb := s.cache.Client(); rdb != nil {
		return rdb.Del(ctx, sessionKey(token)).Err()
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// generatePasscode returns a uniformly random 6-digit code, zero-padded.
func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func passcodeKey(email string) string {
	// Keyed by identity hash so raw emails stay out of Redis.
	return "otp:" + hash.EmailIdentityKey(email)
}

func sessionKey(token string) string {
	return "session:" + token
}
