// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSecretTooShort is returned when the cookie signing secret is too short.
var ErrSecretTooShort = errors.New("session secret must be at least 32 bytes")

// minSecretBytes is the minimum HS256 key length accepted for cookie sessions.
const minSecretBytes = 32

// sessionIssuer is written to and required in every cookie token.
const sessionIssuer = "learnmate"

// SessionClaims are the JWT claims carried in a cookie session.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CookieSessionCodec signs and verifies sessions as HS256 JWTs.
type CookieSessionCodec struct {
	secret []byte
}

// NewCookieSessionCodec creates a codec with the given HMAC secret.
func NewCookieSessionCodec(secret string) (*CookieSessionCodec, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrSecretTooShort
	}
	return &CookieSessionCodec{secret: []byte(secret)}, nil
}

// Encode signs session into a token string.
func (c *CookieSessionCodec) Encode(session *Session) (string, error) {
	claims := &SessionClaims{
		Username: session.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    sessionIssuer,
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the session it carries.
// The returned Session.ID is the token itself so it round-trips through the cookie.
func (c *CookieSessionCodec) Decode(tokenString string) (*Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionNotFound
	}
	if !token.Valid || claims.Username == "" {
		return nil, ErrSessionNotFound
	}

	session := &Session{
		ID:       tokenString,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		session.CreatedAt = claims.IssuedAt.Time
		session.LastAccessedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// CookieSessionStore keeps no server state: the signed token is the session.
// Logout clears the cookie but a copied token stays valid until it expires.
type CookieSessionStore struct {
	codec *CookieSessionCodec
}

// NewCookieSessionStore creates a stateless session store.
func NewCookieSessionStore(codec *CookieSessionCodec) *CookieSessionStore {
	return &CookieSessionStore{codec: codec}
}

// Create replaces session.ID with the signed token.
func (s *CookieSessionStore) Create(_ context.Context, session *Session) error {
	token, err := s.codec.Encode(session)
	if err != nil {
		return err
	}
	session.ID = token
	return nil
}

// Get verifies the token and returns its session.
func (s *CookieSessionStore) Get(_ context.Context, id string) (*Session, error) {
	return s.codec.Decode(id)
}

// Delete is a no-op; the middleware clears the cookie.
func (s *CookieSessionStore) Delete(_ context.Context, _ string) error {
	return nil
}

// Touch is a no-op; cookie sessions expire at the time they were signed with.
func (s *CookieSessionStore) Touch(_ context.Context, _ string, _ time.Time) error {
	return nil
}

// CleanupExpired is a no-op; there is nothing stored to clean.
func (s *CookieSessionStore) CleanupExpired(_ context.Context) (int, error) {
	return 0, nil
}
