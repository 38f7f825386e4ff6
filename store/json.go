package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// JSONFile keeps scores in a JSON object on disk. Every Set rewrites the
// whole file.
type JSONFile struct {
	path   string
	mu     sync.RWMutex
	values map[string]int
}

// OpenJSON loads path, creating it when it does not exist.
func OpenJSON(path string) (*JSONFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}
	js := &JSONFile{
		path:   filepath.Clean(path),
		values: make(map[string]int),
	}

	data, err := os.ReadFile(js.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := js.save(); err != nil {
			return nil, fmt.Errorf("create json store: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read json store: %w", err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &js.values); err != nil {
			return nil, fmt.Errorf("decode json store: %w", err)
		}
	}
	return js, nil
}

// save writes through a temp file so a crash never leaves half a file.
// Callers hold the lock.
func (js *JSONFile) save() error {
	data, err := json.MarshalIndent(js.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := js.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, js.path)
}

func (js *JSONFile) Get(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkKey(key); err != nil {
		return 0, err
	}
	js.mu.RLock()
	defer js.mu.RUnlock()
	return js.values[key], nil
}

func (js *JSONFile) Set(ctx context.Context, key string, value int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()

	prev, had := js.values[key]
	js.values[key] = value
	if err := js.save(); err != nil {
		if had {
			js.values[key] = prev
		} else {
			delete(js.values, key)
		}
		return fmt.Errorf("write json store: %w", err)
	}
	return nil
}

func (js *JSONFile) Close() error { return nil }
