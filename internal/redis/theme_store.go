package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

const (
	themeKey     = "commentpulse:theme"
	defaultTheme = "light"
)

// ThemeStore persists the active dashboard theme name. The theme lives in
// the same storage mechanism as the history but is plain UI state; it never
// participates in analytics.
type ThemeStore struct {
	rdb *goredis.Client
}

func NewThemeStore(rdb *goredis.Client) *ThemeStore {
	return &ThemeStore{rdb: rdb}
}

// Get returns the active theme name, or the default when unset.
func (s *ThemeStore) Get(ctx context.Context) (string, error) {
	theme, err := s.rdb.Get(ctx, themeKey).Result()
	if errors.Is(err, goredis.Nil) {
		return defaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	return theme, nil
}

// Set stores the active theme name.
func (s *ThemeStore) Set(ctx context.Context, theme string) error {
	if err := s.rdb.Set(ctx, themeKey, theme, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}
