// Package auth holds the admin session flag.
//
// This is not access control: the flag is global to the slot, has no
// token or expiry, and the credentials come from configuration in plain text.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventTicketing/internal/config"
	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/storage"

	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"
)

const FlagKey = "adminAuth"

var ErrInvalidCredentials = errors.New("invalid credentials")

var flagValue = []byte("true")

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Slot
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Session struct {
	slot     Slot
	username string
	hash     []byte
}

func New(cfg *config.Admin, slot Slot) (*Session, error) {
	const op = "auth.New"

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Session{
		slot:     slot,
		username: cfg.Username,
		hash:     hash,
	}, nil
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	const op = "auth.Login"

	if username != s.username {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.slot.Set(ctx, FlagKey, flagValue); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	const op = "auth.Logout"

	if err := s.slot.Delete(ctx, FlagKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsAuthenticated reports whether the flag is set. A missing slot is false.
func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	const op = "auth.IsAuthenticated"

	v, err := s.slot.Get(ctx, FlagKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return string(v) == string(flagValue), nil
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Guard rejects requests with 401 unless the admin flag is set.
func Guard(log *slog.Logger, auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			ok, err := auth.IsAuthenticated(r.Context())
			if err != nil {
				log.Error("failed to read admin flag", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))

				return
			}

			if !ok {
				log.Info("unauthenticated admin request", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))

				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
