/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"context"
	"sync"

	"github.com/Seednode/whodle/games/whodle"
)

// Memory keeps sessions for the lifetime of the process.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string][]byte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.sessions[key]
	if !ok {
		return nil, whodle.ErrNotFound
	}

	return append([]byte(nil), data...), nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = append([]byte(nil), data...)

	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *Memory) Close() error {
	return nil
}
