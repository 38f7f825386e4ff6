// Package store persists high scores behind a small key-value interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is a key-value store of integer scores. Get returns 0 for a key
// that was never set.
type Store interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
	Close() error
}

const (
	KindMemory   = "memory"
	KindJSON     = "json"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

var (
	ErrUnknownKind = errors.New("unknown store kind")
	ErrEmptyKey    = errors.New("store key is required")
	ErrNoPath      = errors.New("store path is required")
)

// Options selects and locates a store.
type Options struct {
	Kind string
	// Path is the file used by the json and sqlite stores.
	Path string
	// DatabaseURL is the postgres connection string.
	DatabaseURL string
}

// Open builds the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindMemory, "":
		return NewMemory(), nil
	case KindJSON:
		return OpenJSON(opts.Path)
	case KindSQLite:
		return OpenSQLite(ctx, opts.Path)
	case KindPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
