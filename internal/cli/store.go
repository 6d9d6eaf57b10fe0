package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/adapters/bolt"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/demos"
	"github.com/aretw0/turing/pkg/ports"
)

// OpenStore builds the machine library selected by store.backend.
// The memory backend is seeded with the demos. The returned close function
// releases connections and file locks.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.MachineStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		seed, err := demos.Machines()
		if err != nil {
			return nil, nil, err
		}
		return memory.NewStore(seed...), noop, nil

	case config.BackendFile:
		logger.Debug("using file store", "path", cfg.Store.Path)
		return file.New(cfg.Store.Path, definition.WithBlankAlias(cfg.Engine.BlankAlias)), noop, nil

	case config.BackendRedis:
		rc := cfg.Store.Redis
		var opts []redis.Option
		if rc.Prefix != "" {
			opts = append(opts, redis.WithPrefix(rc.Prefix))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		if _, err := store.List(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", rc.Addr, err)
		}
		logger.Debug("using redis store", "addr", rc.Addr, "db", rc.DB)
		return store, store.Close, nil

	case config.BackendBolt:
		path := cfg.Store.Path
		if filepath.Ext(path) == "" {
			path += ".db"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create store directory: %w", err)
		}
		store, err := bolt.Open(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using bolt store", "path", path)
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
