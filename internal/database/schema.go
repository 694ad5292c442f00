package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// DefaultCategories are inserted by EnsureSchema when seeding is enabled
var DefaultCategories = []struct {
	ID   int
	Type string
}{
	{1, "Science"},
	{2, "Art"},
	{3, "Geography"},
	{4, "History"},
	{5, "Entertainment"},
	{6, "Sports"},
}

// EnsureSchema creates the tables if they are missing and optionally seeds
// the default categories. Existing rows are left untouched.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, seed bool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if !seed {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range DefaultCategories {
		batch.Queue(`INSERT INTO categories (id, type) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, c.ID, c.Type)
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	return nil
}
