package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	cfgpkg "github.com/rzbill/tally/internal/config"
	"github.com/rzbill/tally/internal/ledger"
	"github.com/rzbill/tally/internal/window"
	"github.com/rzbill/tally/pkg/id"
	logpkg "github.com/rzbill/tally/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime wires the ledger store, query engine, and config for a single
// Tally instance.
type Runtime struct {
	config  cfgpkg.Config
	logger  logpkg.Logger
	store   ledger.Ledger
	engine  *window.Engine
	ids     *id.Generator
	rdb     *redis.Client
	started time.Time
}

// Open validates the config and constructs the configured ledger backend.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	rt := &Runtime{
		config:  opts.Config,
		logger:  logger,
		ids:     id.NewGenerator(),
		started: time.Now(),
	}
	switch opts.Config.Store {
	case cfgpkg.StoreMemory:
		rt.store = ledger.NewMemory()
	case cfgpkg.StoreRedis:
		rt.rdb = redis.NewClient(&redis.Options{
			Addr:     opts.Config.Redis.Addr,
			Password: opts.Config.Redis.Password,
			DB:       opts.Config.Redis.DB,
		})
		rt.store = ledger.NewRedis(rt.rdb, ledger.WithPrefix(opts.Config.Redis.KeyPrefix))
	}
	rt.engine = window.New(rt.store)
	logger.Info("ledger opened", logpkg.Str("store", opts.Config.Store))
	return rt, nil
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	if r.rdb != nil {
		return r.rdb.Close()
	}
	return nil
}

// CheckHealth performs a simple health check against the ledger backend.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.rdb != nil {
		return r.rdb.Ping(ctx).Err()
	}
	_, err := r.store.Total(ctx)
	return err
}

// Ledger returns the single shared ledger instance.
func (r *Runtime) Ledger() ledger.Ledger { return r.store }

// Window returns the query engine over the ledger.
func (r *Runtime) Window() *window.Engine { return r.engine }

// NextID returns a fresh record identifier.
func (r *Runtime) NextID() string { return r.ids.Next().String() }

// Uptime returns how long this runtime has been open.
func (r *Runtime) Uptime() time.Duration { return time.Since(r.started) }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the process logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
