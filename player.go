/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	playerCookieName = "whodle_player"
	playerCookieTTL  = 365 * 24 * time.Hour
)

// Players signs and verifies the cookie that identifies a browser. The
// token subject is the player id that prefixes every session key.
type Players struct {
	secret []byte
	secure bool
}

func newPlayers(secret string, secure bool) (*Players, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate cookie secret: %w", err)
		}
	}

	return &Players{secret: key, secure: secure}, nil
}

func (p *Players) sign(id string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(playerCookieTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *Players) verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", errors.New("player token subject is not a uuid")
	}

	return id.String(), nil
}

// playerID returns the id carried by a valid cookie, or issues a new one.
func (p *Players) playerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		if id, err := p.verify(c.Value); err == nil {
			return id
		}
	}

	now := time.Now()
	id := uuid.NewString()

	token, err := p.sign(id, now)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(playerCookieTTL),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
