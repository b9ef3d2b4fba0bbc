package whodle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func openTestGame(t *testing.T, st Store, key string) *Game {
	t.Helper()

	ds := testDataset()
	g, err := Open(context.Background(), st, key, testPuzzle(ds), ds, DefaultMaxGuesses)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	g.Evaluator = &Evaluator{Intn: fixedPick}

	return g
}

func TestGameEndToEnd(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	g := openTestGame(t, st, "k")

	first, err := g.Guess(ctx, "2")
	if err != nil {
		t.Fatalf("Guess(2) error = %v", err)
	}
	if first.Correct || first.RankHint != RankHigher || first.JoinHint != JoinLater || first.RoleClue.Role != "x" {
		t.Fatalf("first guess = %+v", first)
	}
	if g.Session.GameOver {
		t.Fatal("game over after one wrong guess")
	}

	second, err := g.Guess(ctx, "1")
	if err != nil {
		t.Fatalf("Guess(1) error = %v", err)
	}
	if !second.Correct || !g.Session.GameOver || len(g.Session.Guesses) != 2 {
		t.Fatalf("session = %+v", g.Session)
	}

	// Resume from storage: identical clues, no re-evaluation.
	resumed := openTestGame(t, st, "k")
	if !resumed.Session.GameOver || len(resumed.Session.Guesses) != 2 {
		t.Fatalf("resumed session = %+v", resumed.Session)
	}
	if resumed.Session.Guesses[0].RoleClue != first.RoleClue {
		t.Fatalf("resumed clue = %+v, want %+v", resumed.Session.Guesses[0].RoleClue, first.RoleClue)
	}

	if _, err := resumed.Guess(ctx, "3"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("Guess after game over error = %v, want ErrGameOver", err)
	}
	if len(resumed.Session.Guesses) != 2 {
		t.Fatalf("guesses grew after game over: %d", len(resumed.Session.Guesses))
	}
}

func TestGameRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	g := openTestGame(t, newMemStore(), "k")

	if _, err := g.Guess(ctx, "2"); err != nil {
		t.Fatalf("Guess(2) error = %v", err)
	}
	if _, err := g.Guess(ctx, "2"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("duplicate Guess(2) error = %v, want ErrAlreadyGuessed", err)
	}
	if len(g.Session.Guesses) != 1 || g.Remaining() != 4 {
		t.Fatalf("guesses = %d, remaining = %d", len(g.Session.Guesses), g.Remaining())
	}
}

func TestGameUnknownUser(t *testing.T) {
	g := openTestGame(t, newMemStore(), "k")

	if _, err := g.Guess(context.Background(), "nobody"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("Guess(nobody) error = %v, want ErrUnknownUser", err)
	}
}

func TestGameGuessLimit(t *testing.T) {
	ctx := context.Background()
	g := openTestGame(t, newMemStore(), "k")

	for i, id := range []string{"2", "3", "4", "5", "6"} {
		if g.Session.GameOver {
			t.Fatalf("game over before guess %d", i)
		}
		if _, err := g.Guess(ctx, id); err != nil {
			t.Fatalf("Guess(%s) error = %v", id, err)
		}
	}

	if !g.Session.GameOver || g.Session.Won() || g.Remaining() != 0 {
		t.Fatalf("session = %+v", g.Session)
	}
	if _, err := g.Guess(ctx, "1"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("sixth guess error = %v, want ErrGameOver", err)
	}
	if len(g.Session.Guesses) != DefaultMaxGuesses {
		t.Fatalf("guesses = %d, want %d", len(g.Session.Guesses), DefaultMaxGuesses)
	}
}

func TestGameStaleSessionDiscarded(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	_ = st.Put(ctx, "k", []byte(`{"seed":1,"guesses":[{"guessIndex":0,"user":{"id":"2"},"correct":false}],"gameOver":false}`))

	g := openTestGame(t, st, "k")
	if len(g.Session.Guesses) != 0 || g.Session.Seed != 1234 {
		t.Fatalf("stale session honored: %+v", g.Session)
	}
}

func TestGameSuggestions(t *testing.T) {
	ctx := context.Background()
	g := openTestGame(t, newMemStore(), "k")
	_, _ = g.Guess(ctx, "2")

	s := g.Suggestions("bravo")
	if len(s) != 1 || !s[0].AlreadyGuessed {
		t.Fatalf("Suggestions() = %+v", s)
	}
	if got := g.Suggestions(""); len(got) != 0 {
		t.Fatalf("Suggestions(\"\") = %+v", got)
	}
}

func TestGameContent(t *testing.T) {
	g := openTestGame(t, newMemStore(), "k")

	if got, want := g.Content(), "hello @Bravo and @User"; got != want {
		t.Fatalf("Content() = %q, want %q", got, want)
	}
	if got, want := g.Dataset.DeepLink(g.Puzzle.Target), "https://discord.com/channels/999/10/100"; got != want {
		t.Fatalf("DeepLink() = %q, want %q", got, want)
	}
	if _, ok := g.Imposter(); ok {
		t.Fatal("Imposter() without imposter_id should be absent")
	}
}

func TestGameShareText(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	enc := NewShareEncoder(DefaultFlavor(), DefaultMaxGuesses, DefaultShareURL)
	keyFor := func(m Mode) string { return SessionKey(m.Name, 7) }

	g := openTestGame(t, st, keyFor(TextMode))
	if _, _, err := g.ShareText(ctx, enc, keyFor); !errors.Is(err, ErrGameOverRequired) {
		t.Fatalf("ShareText() before end error = %v", err)
	}

	_, _ = g.Guess(ctx, "1")

	text, combined, err := g.ShareText(ctx, enc, keyFor)
	if err != nil || combined {
		t.Fatalf("ShareText() = %v, %v", combined, err)
	}
	if !strings.HasPrefix(text, "WHODLE 💬 #7\n1/5\n") {
		t.Fatalf("single share = %q", text)
	}

	// Finish the image puzzle for the same day.
	ds := testDataset()
	p := testPuzzle(ds)
	p.Mode = ImageMode
	p.Seed = 1234 + ImageMode.SeedOffset
	img, err := Open(ctx, st, keyFor(ImageMode), p, ds, DefaultMaxGuesses)
	if err != nil {
		t.Fatalf("Open(image) error = %v", err)
	}
	_, _ = img.Guess(ctx, "1")

	text, combined, err = g.ShareText(ctx, enc, keyFor)
	if err != nil || !combined {
		t.Fatalf("ShareText() = %v, %v", combined, err)
	}
	if !strings.HasPrefix(text, "WHODLE #7\n💬: 1/5\n") || !strings.Contains(text, "\n\n📸: 1/5\n") {
		t.Fatalf("combined share = %q", text)
	}
}

func TestLookupMode(t *testing.T) {
	if m, err := LookupMode("image"); err != nil || m != ImageMode {
		t.Fatalf("LookupMode(image) = %+v, %v", m, err)
	}
	if _, err := LookupMode("audio"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("LookupMode(audio) error = %v", err)
	}
}
