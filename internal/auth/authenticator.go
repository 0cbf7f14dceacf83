// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/logging"
)

// Auth modes.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

// ErrInvalidCredentials is returned on a failed login. The message never
// distinguishes bad usernames from bad passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAuthDisabled is returned when login is attempted with AUTH_MODE=none.
var ErrAuthDisabled = errors.New("authentication is disabled")

type contextKey string

const claimsKey contextKey = "auth_claims"

// Authenticator gates API access by the configured auth mode.
type Authenticator struct {
	mode          string
	jwt           *JWTManager
	adminUsername string
	adminHash     []byte
}

// New builds an authenticator. In jwt mode the admin password is hashed
// with bcrypt at startup so the plaintext never sits in memory beyond
// config load.
func New(cfg *config.SecurityConfig) (*Authenticator, error) {
	a := &Authenticator{mode: cfg.AuthMode}
	if cfg.AuthMode != ModeJWT {
		return a, nil
	}

	jwtManager, err := NewJWTManager(cfg)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	a.jwt = jwtManager
	a.adminUsername = cfg.AdminUsername
	a.adminHash = hash
	return a, nil
}

// Enabled reports whether requests must carry a token.
func (a *Authenticator) Enabled() bool {
	return a.mode == ModeJWT
}

// Login verifies the admin credential and issues a session token.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, ErrAuthDisabled
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(a.adminHash, []byte(password))
	if !usernameMatch || passwordErr != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return a.jwt.GenerateToken(username, "admin")
}

// Middleware rejects unauthenticated requests in jwt mode and stores the
// validated claims in the request context. In none mode it is a
// passthrough.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			logging.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("Missing bearer token")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := a.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("Token validation failed")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the validated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// extractBearerToken pulls the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
