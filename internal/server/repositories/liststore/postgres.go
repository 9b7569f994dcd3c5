package liststore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/dbx"
	"github.com/dmitrijs2005/promptmarket/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps one row per item in list_items; the front of a list is
// the row with the highest seq.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens the pgx driver and applies pending migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresStore(db), nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// PushFront holds the list lock so an insert cannot commit between Swap's
// read and its delete.
func (s *PostgresStore) PushFront(ctx context.Context, key string, item string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockList(ctx, tx, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO list_items (list_key, item) VALUES ($1, $2)`, key, item)
		return err
	})
	if err != nil {
		return storeErr("push", key, err)
	}
	return nil
}

func (s *PostgresStore) loadAll(ctx context.Context, q dbx.DBTX, key string) ([]string, error) {
	query := `SELECT item FROM list_items WHERE list_key = $1 ORDER BY seq DESC`

	rows, err := q.QueryContext(ctx, query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	items, err := s.loadAll(ctx, s.db, key)
	if err != nil {
		return nil, storeErr("range", key, err)
	}
	return sliceRange(items, start, stop), nil
}

func (s *PostgresStore) Trim(ctx context.Context, key string, start, stop int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockList(ctx, tx, key); err != nil {
			return err
		}

		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM list_items WHERE list_key = $1`, key).Scan(&n); err != nil {
			return err
		}

		lo, hi := bounds(start, stop, n)
		if lo == 0 && hi == n {
			return nil
		}

		query := `DELETE FROM list_items WHERE list_key = $1 AND seq NOT IN (
			SELECT seq FROM list_items WHERE list_key = $1 ORDER BY seq DESC OFFSET $2 LIMIT $3)`
		_, err := tx.ExecContext(ctx, query, key, lo, hi-lo)
		return err
	})
	if err != nil {
		return storeErr("trim", key, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, key string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockList(ctx, tx, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM list_items WHERE list_key = $1`, key)
		return err
	})
	if err != nil {
		return storeErr("clear", key, err)
	}
	return nil
}

// Swap serializes writers on the list with a transaction-scoped advisory
// lock, then compares and rewrites inside the same transaction.
func (s *PostgresStore) Swap(ctx context.Context, key string, expected, items []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockList(ctx, tx, key); err != nil {
			return err
		}

		current, err := s.loadAll(ctx, tx, key)
		if err != nil {
			return err
		}
		if !slices.Equal(current, expected) {
			return common.ErrVersionConflict
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM list_items WHERE list_key = $1`, key); err != nil {
			return err
		}
		// Insert back to front so items[0] ends up with the highest seq.
		for i := len(items) - 1; i >= 0; i-- {
			if _, err := tx.ExecContext(ctx, `INSERT INTO list_items (list_key, item) VALUES ($1, $2)`, key, items[i]); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case err == common.ErrVersionConflict:
		return err
	default:
		return storeErr("swap", key, err)
	}
}

func lockList(ctx context.Context, tx dbx.DBTX, key string) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storeErr("ping", "", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
