/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPlayersRoundTrip(t *testing.T) {
	p, err := newPlayers("secret", false)
	if err != nil {
		t.Fatal(err)
	}

	id := uuid.NewString()

	token, err := p.sign(id, time.Now())
	if err != nil {
		t.Fatalf("sign() error = %v", err)
	}

	got, err := p.verify(token)
	if err != nil || got != id {
		t.Fatalf("verify() = %q, %v, want %q", got, err, id)
	}
}

func TestPlayersRejects(t *testing.T) {
	p, _ := newPlayers("secret", false)
	other, _ := newPlayers("other", false)

	foreign, _ := other.sign(uuid.NewString(), time.Now())
	notUUID, _ := p.sign("player-one", time.Now())
	expired, _ := p.sign(uuid.NewString(), time.Now().Add(-2*playerCookieTTL))

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"not a uuid":   notUUID,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := p.verify(token); err == nil {
				t.Error("verify() accepted token")
			}
		})
	}
}

func TestPlayerIDCookie(t *testing.T) {
	p, _ := newPlayers("", true)

	w := httptest.NewRecorder()
	id := p.playerID(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("playerID() = %q, not a uuid", id)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != playerCookieName || !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])

	w = httptest.NewRecorder()
	if got := p.playerID(w, r); got != id {
		t.Fatalf("playerID() with cookie = %q, want %q", got, id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("valid cookie was reissued")
	}
}
