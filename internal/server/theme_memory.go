package server

import (
	"context"
	"sync"
)

// MemoryThemeStore keeps the theme in process memory for no-Redis mode.
type MemoryThemeStore struct {
	mu    sync.Mutex
	theme string
}

var _ ThemeStore = (*MemoryThemeStore)(nil)

func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{theme: "light"}
}

func (s *MemoryThemeStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, nil
}

func (s *MemoryThemeStore) Set(_ context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}
