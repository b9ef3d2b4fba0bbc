/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Whodle Daily Puzzle
//
// Every mode serves one message per calendar day, chosen deterministically
// from the date in the reference time zone. Players guess which roster
// member sent it and get directional hints after each miss.
//
// Features:
// - JSON API per mode: /whodle/:mode, /search, /guess, /share and /qr
// - WebSocket per mode at /whodle/:mode/ws for live suggestions and guesses
// - Players identified by a signed cookie (JWT with a uuid subject)
// - Sessions persisted per player, mode and puzzle number
// - Datasets load in the background; a mode answers 503 until it is ready
// - Duplicate guesses and guesses after game over are no-ops
// - Share text combines both modes once both are finished
// - QR code of the share link, backed by go-qrcode

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// Messages coming from websocket clients
type ClientMessage struct {
	Type   string `json:"type"`              // "state", "search", "guess"
	Query  string `json:"query,omitempty"`   // search
	UserID string `json:"user_id,omitempty"` // guess
}

// PuzzleView is the player's view of one mode's puzzle. The answer and its
// context are only filled in once the game is over.
type PuzzleView struct {
	Type       string             `json:"type"` // "state"
	Mode       string             `json:"mode"`
	Emoji      string             `json:"emoji"`
	Verb       string             `json:"verb"`
	Puzzle     int                `json:"puzzle"`
	Date       string             `json:"date"`
	Display    string             `json:"display_date"`
	ItemType   whodle.ItemType    `json:"item_type"`
	Content    string             `json:"content"`
	Difficulty *whodle.Difficulty `json:"difficulty,omitempty"`
	Guesses    []whodle.Guess     `json:"guesses"`
	GameOver   bool               `json:"game_over"`
	Won        bool               `json:"won"`
	Remaining  int                `json:"remaining"`
	MaxGuesses int                `json:"max_guesses"`
	Notice     string             `json:"notice,omitempty"`

	Author     *whodle.User `json:"author,omitempty"`
	Imposter   *whodle.User `json:"imposter,omitempty"`
	DeepLink   string       `json:"deep_link,omitempty"`
	EndMessage string       `json:"end_message,omitempty"`
}

type SuggestionsMessage struct {
	Type        string              `json:"type"` // "suggestions"
	Query       string              `json:"query"`
	Suggestions []whodle.Suggestion `json:"suggestions"`
}

type modeState struct {
	mode    whodle.Mode
	dataset atomic.Pointer[whodle.Dataset]
}

// GameManager owns the per-mode datasets and serializes session updates.
type GameManager struct {
	cfg     *Config
	store   whodle.Store
	enc     *whodle.ShareEncoder
	players *Players
	modes   map[string]*modeState

	mu  sync.Mutex
	now func() time.Time
}

func newGameManager(cfg *Config, st whodle.Store, players *Players) *GameManager {
	gm := &GameManager{
		cfg:     cfg,
		store:   st,
		enc:     whodle.NewShareEncoder(cfg.flavor, cfg.maxGuesses, cfg.shareURL),
		players: players,
		modes:   make(map[string]*modeState),
		now:     time.Now,
	}

	for _, mode := range whodle.Modes() {
		if cfg.source(mode) == "" {
			continue
		}
		gm.modes[mode.Name] = &modeState{mode: mode}
	}

	return gm
}

// load fetches every mode's dataset in the background. A mode whose dataset
// fails to load keeps answering 503.
func (gm *GameManager) load(ctx context.Context) {
	for _, ms := range gm.modes {
		go func() {
			ds, err := loadDataset(ctx, gm.cfg, ms.mode)
			if err != nil {
				logf(gm.cfg, "ERROR: Failed to load %s dataset: %v", ms.mode.Name, err)
				return
			}

			ms.dataset.Store(ds)
		}()
	}
}

func sessionKey(player string, mode whodle.Mode, puzzle int) string {
	return player + "/" + whodle.SessionKey(mode.Name, puzzle)
}

// open resumes (or starts) player's session for today's puzzle in mode.
func (gm *GameManager) open(ctx context.Context, player, mode string) (*whodle.Game, error) {
	ms, ok := gm.modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", whodle.ErrUnknownMode, mode)
	}

	ds := ms.dataset.Load()
	if ds == nil {
		return nil, ErrLoading
	}

	p, err := whodle.NewPuzzle(gm.cfg.cal, ms.mode, ds, gm.now())
	if err != nil {
		return nil, err
	}

	return whodle.Open(ctx, gm.store, sessionKey(player, ms.mode, p.Number), p, ds, gm.cfg.maxGuesses)
}

func (gm *GameManager) view(g *whodle.Game) PuzzleView {
	v := PuzzleView{
		Type:       "state",
		Mode:       g.Puzzle.Mode.Name,
		Emoji:      g.Puzzle.Mode.Emoji,
		Verb:       g.Puzzle.Mode.Verb,
		Puzzle:     g.Puzzle.Number,
		Date:       g.Puzzle.Date,
		Display:    g.Puzzle.Display,
		ItemType:   g.Puzzle.Target.Type,
		Content:    g.Content(),
		Difficulty: g.Puzzle.Target.Difficulty,
		Guesses:    append([]whodle.Guess{}, g.Session.Guesses...),
		GameOver:   g.Session.GameOver,
		Won:        g.Session.Won(),
		Remaining:  g.Remaining(),
		MaxGuesses: g.MaxGuesses,
	}

	if !g.Session.GameOver {
		return v
	}

	author := g.Puzzle.Author
	v.Author = &author
	if imposter, ok := g.Imposter(); ok {
		v.Imposter = &imposter
	}
	v.DeepLink = g.Dataset.DeepLink(g.Puzzle.Target)
	v.EndMessage = gm.enc.Flavor.EndMessage(v.Won, g.Puzzle.Seed)

	return v
}

func (gm *GameManager) state(ctx context.Context, player, mode string) (PuzzleView, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	g, err := gm.open(ctx, player, mode)
	if err != nil {
		return PuzzleView{}, err
	}

	return gm.view(g), nil
}

func (gm *GameManager) suggestions(ctx context.Context, player, mode, query string) (SuggestionsMessage, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	g, err := gm.open(ctx, player, mode)
	if err != nil {
		return SuggestionsMessage{}, err
	}

	return SuggestionsMessage{
		Type:        "suggestions",
		Query:       query,
		Suggestions: g.Suggestions(query),
	}, nil
}

// guess submits userID for player. Rejected duplicates and guesses after
// game over return the unchanged state with a notice.
func (gm *GameManager) guess(ctx context.Context, player, mode, userID string) (PuzzleView, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	g, err := gm.open(ctx, player, mode)
	if err != nil {
		return PuzzleView{}, err
	}

	result, err := g.Guess(ctx, userID)
	switch {
	case errors.Is(err, whodle.ErrGameOver), errors.Is(err, whodle.ErrAlreadyGuessed):
		v := gm.view(g)
		v.Notice = err.Error()
		return v, nil
	case err != nil:
		return PuzzleView{}, err
	}

	logf(gm.cfg, "GAMES: Player %s guessed %q for %s #%d (%d/%d, correct: %t)",
		player,
		result.User.Username,
		mode,
		g.Puzzle.Number,
		len(g.Session.Guesses),
		g.MaxGuesses,
		result.Correct,
	)

	return gm.view(g), nil
}

func (gm *GameManager) share(ctx context.Context, player, mode string) (string, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	g, err := gm.open(ctx, player, mode)
	if err != nil {
		return "", err
	}

	text, _, err := g.ShareText(ctx, gm.enc, func(m whodle.Mode) string {
		return sessionKey(player, m, g.Puzzle.Number)
	})

	return text, err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, whodle.ErrUnknownMode):
		return http.StatusNotFound
	case errors.Is(err, ErrLoading):
		return http.StatusServiceUnavailable
	case errors.Is(err, whodle.ErrUnknownUser):
		return http.StatusBadRequest
	case errors.Is(err, whodle.ErrGameOverRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (gm *GameManager) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logf(gm.cfg, "ERROR: %s %s: %v", r.Method, r.URL.Path, err)
	}

	writeError(gm.cfg, w, status, err)
}

func (gm *GameManager) respond(w http.ResponseWriter, r *http.Request, startTime time.Time, what string, v any, errs chan<- error) {
	written, err := writeJSON(gm.cfg, w, http.StatusOK, v)
	if err != nil {
		errs <- err

		return
	}

	logf(gm.cfg, "SERVE: %s (%s) to %s in %s",
		what,
		humanReadableSize(int64(written)),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

func (gm *GameManager) servePuzzle(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		player := gm.players.playerID(w, r)
		if player == "" {
			gm.fail(w, r, ErrNoPlayer)
			return
		}

		v, err := gm.state(r.Context(), player, ps.ByName("mode"))
		if err != nil {
			gm.fail(w, r, err)
			return
		}

		gm.respond(w, r, startTime, "Puzzle "+v.Mode+" #"+fmt.Sprint(v.Puzzle), v, errs)
	}
}

func (gm *GameManager) serveSearch(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		player := gm.players.playerID(w, r)
		if player == "" {
			gm.fail(w, r, ErrNoPlayer)
			return
		}

		msg, err := gm.suggestions(r.Context(), player, ps.ByName("mode"), r.URL.Query().Get("q"))
		if err != nil {
			gm.fail(w, r, err)
			return
		}

		gm.respond(w, r, startTime, "Search results", msg, errs)
	}
}

func (gm *GameManager) serveGuess(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		player := gm.players.playerID(w, r)
		if player == "" {
			gm.fail(w, r, ErrNoPlayer)
			return
		}

		var req struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil || req.UserID == "" {
			writeError(gm.cfg, w, http.StatusBadRequest, errors.New("request body must be {\"user_id\": \"...\"}"))
			return
		}

		v, err := gm.guess(r.Context(), player, ps.ByName("mode"), req.UserID)
		if err != nil {
			gm.fail(w, r, err)
			return
		}

		gm.respond(w, r, startTime, "Guess result", v, errs)
	}
}

func (gm *GameManager) serveShare(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		player := gm.players.playerID(w, r)
		if player == "" {
			gm.fail(w, r, ErrNoPlayer)
			return
		}

		text, err := gm.share(r.Context(), player, ps.ByName("mode"))
		if err != nil {
			gm.fail(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(gm.cfg, w)

		written, err := w.Write([]byte(text))
		if err != nil {
			errs <- err

			return
		}

		logf(gm.cfg, "SERVE: Share text (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveQR renders a PNG QR code of the share link.
func (gm *GameManager) serveQR(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := gm.modes[ps.ByName("mode")]; !ok {
			gm.fail(w, r, fmt.Errorf("%w: %q", whodle.ErrUnknownMode, ps.ByName("mode")))
			return
		}

		png, err := qrcode.Encode(gm.cfg.shareURL, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(gm.cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	mode     string
}

func (gm *GameManager) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		player := gm.players.playerID(w, r)
		if player == "" {
			gm.fail(w, r, ErrNoPlayer)
			return
		}

		mode := ps.ByName("mode")

		v, err := gm.state(r.Context(), player, mode)
		if err != nil {
			gm.fail(w, r, err)
			return
		}

		// The upgrade response replaces w, so carry the cookie over.
		conn, err := upgrader.Upgrade(w, r, http.Header{"Set-Cookie": w.Header().Values("Set-Cookie")})
		if err != nil {
			logf(gm.cfg, "ERROR: Websocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: player,
			mode:     mode,
		}

		logf(gm.cfg, "GAMES: Player %s connected to %s", player, mode)

		client.send <- v

		go client.writePump()
		client.readPump(r.Context(), gm)
	}
}

func (c *Client) reply(ctx context.Context, gm *GameManager, msg ClientMessage) any {
	var (
		out any
		err error
	)

	switch msg.Type {
	case "state":
		out, err = gm.state(ctx, c.playerID, c.mode)
	case "search":
		out, err = gm.suggestions(ctx, c.playerID, c.mode, msg.Query)
	case "guess":
		out, err = gm.guess(ctx, c.playerID, c.mode, msg.UserID)
	default:
		return nil
	}

	if err != nil {
		return errorMessage{Type: "error", Message: err.Error()}
	}

	return out
}

func (c *Client) readPump(ctx context.Context, gm *GameManager) {
	defer func() {
		close(c.send)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		out := c.reply(ctx, gm, msg)
		if out == nil {
			continue
		}

		select {
		case c.send <- out:
		default:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// registerWhodle sets up routes so that:
//   - $path/:mode          → puzzle JSON for today
//   - $path/:mode/search   → ranked roster suggestions
//   - $path/:mode/guess    → submit a guess (POST)
//   - $path/:mode/share    → share text once the game is over
//   - $path/:mode/qr       → PNG QR code of the share link
//   - $path/:mode/ws       → WebSocket for live play
func registerWhodle(cfg *Config, path string, gm *GameManager, mux *httprouter.Router, errs chan<- error) {
	base := cfg.prefix + path + "/:mode"

	mux.GET(base, gm.servePuzzle(errs))
	mux.GET(base+"/search", gm.serveSearch(errs))
	mux.POST(base+"/guess", gm.serveGuess(errs))
	mux.GET(base+"/share", gm.serveShare(errs))
	mux.GET(base+"/qr", gm.serveQR(errs))
	mux.GET(base+"/ws", gm.serveWS())
}
