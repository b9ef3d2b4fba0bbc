/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Seednode/whodle/games/whodle"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"tls cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"port zero", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"no guesses", func(c *Config) { c.maxGuesses = 0 }, true},
		{"unknown store", func(c *Config) { c.store = "redis" }, true},
		{"file store without path", func(c *Config) { c.store = "file" }, true},
		{"sqlite store with path", func(c *Config) { c.store, c.storePath = "sqlite", "whodle.db" }, false},
		{"postgres without url", func(c *Config) { c.store = "postgres" }, true},
		{"bad timezone", func(c *Config) { c.timezone = "Mars/Olympus_Mons" }, true},
		{"bad epoch", func(c *Config) { c.epoch = "12/01/2025" }, true},
		{"no datasets", func(c *Config) { c.textData, c.imageData = "", "" }, true},
		{"image only", func(c *Config) { c.textData, c.imageData = "", "image.json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				epoch:      whodle.DefaultEpoch,
				maxGuesses: whodle.DefaultMaxGuesses,
				port:       8080,
				store:      "memory",
				textData:   "text.json",
				timezone:   whodle.DefaultZone,
			}
			tt.modify(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.cal == nil {
				t.Error("validate() did not set the calendar")
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := &Config{}
	if cfg.scheme() != "http" {
		t.Errorf("scheme() = %s, want http", cfg.scheme())
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if cfg.scheme() != "https" {
		t.Errorf("scheme() = %s, want https", cfg.scheme())
	}
}

func TestLoadFlavor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavor.yaml")
	data := "win_messages:\n  - Nice.\nemojis:\n  ace: \"🂡\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	cmd := newCmd(cfg)
	cmd.SetArgs([]string{"--config", path, "--text-data", writeDataset(t), "today"})
	cmd.SetOut(io.Discard)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := cfg.flavor.EndMessage(true, 3); got != "Nice." {
		t.Errorf("win message = %q, want Nice.", got)
	}
	if got := cfg.flavor.Emoji("ace"); got != "🂡" {
		t.Errorf("emoji = %q", got)
	}
	if got := cfg.flavor.LoseMessages; len(got) != len(whodle.DefaultFlavor().LoseMessages) {
		t.Errorf("lose messages replaced: %v", got)
	}
}
