/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Seednode/whodle/games/whodle"
)

var dataClient = &http.Client{Timeout: 30 * time.Second}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}

// loadDataset fetches and validates the dataset configured for mode.
func loadDataset(ctx context.Context, cfg *Config, mode whodle.Mode) (*whodle.Dataset, error) {
	src := cfg.source(mode)
	if src == "" {
		return nil, fmt.Errorf("no dataset configured for %s mode", mode.Name)
	}

	startTime := time.Now()

	ds, err := whodle.LoadDataset(ctx, dataClient, src)
	if err != nil {
		return nil, err
	}

	size := "remote"
	if info, err := os.Stat(src); err == nil {
		size = humanReadableSize(info.Size())
	}

	logf(cfg, "DATA: Loaded %s dataset (%s, %d users, %d messages) in %s",
		mode.Name,
		size,
		len(ds.Users),
		len(ds.Messages),
		time.Since(startTime).Round(time.Microsecond),
	)

	return ds, nil
}

// loadDatasets loads every configured mode, skipping those without a source.
func loadDatasets(ctx context.Context, cfg *Config) (map[string]*whodle.Dataset, error) {
	out := make(map[string]*whodle.Dataset)

	for _, mode := range whodle.Modes() {
		if cfg.source(mode) == "" {
			continue
		}

		ds, err := loadDataset(ctx, cfg, mode)
		if err != nil {
			return nil, err
		}

		out[mode.Name] = ds
	}

	return out, nil
}
