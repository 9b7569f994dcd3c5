package server

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/promptmarket/internal/filex"
	"github.com/dmitrijs2005/promptmarket/internal/server/config"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
)

// OpenStore connects the backing list adapter selected by c.StoreBackend.
func OpenStore(ctx context.Context, c *config.Config) (liststore.Store, error) {
	switch c.StoreBackend {
	case config.BackendMemory:
		return liststore.NewMemoryStore(), nil
	case config.BackendRedis:
		return liststore.OpenRedis(ctx, c.RedisURL)
	case config.BackendBadger:
		dir, err := filex.EnsureDir(c.BadgerPath)
		if err != nil {
			return nil, err
		}
		return liststore.OpenBadger(dir)
	case config.BackendPostgres:
		return liststore.OpenPostgres(ctx, c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

// CloseStore releases the adapter's connections if it holds any.
func CloseStore(s liststore.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
