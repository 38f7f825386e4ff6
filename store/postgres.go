package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS scores (
	key        TEXT PRIMARY KEY,
	value      BIGINT NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
)`

// Postgres keeps scores in a PostgreSQL table.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with a lib/pq connection string.
func OpenPostgres(ctx context.Context, connString string) (*Postgres, error) {
	if strings.TrimSpace(connString) == "" {
		return nil, errors.New("database url is required")
	}
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (int, error) {
	if err := checkKey(key); err != nil {
		return 0, err
	}
	var value int
	err := p.db.QueryRowContext(ctx, `SELECT value FROM scores WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get score %q: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value int) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO scores (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set score %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
