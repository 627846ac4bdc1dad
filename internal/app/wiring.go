package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/ghn/internal/executor"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/launch"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/reconcile"
	"github.com/nhle/ghn/internal/source"
	"github.com/nhle/ghn/internal/source/github"
	"github.com/nhle/ghn/internal/store"
	appsync "github.com/nhle/ghn/internal/sync"
)

// historyRetention bounds how long executed actions stay in the log.
const historyRetention = 30 * 24 * time.Hour

// Runtime holds everything the program needs besides the model itself.
type Runtime struct {
	Deps  Deps
	Store *store.SQLiteStore
}

// Close releases the database handle.
func (r *Runtime) Close() error {
	if r.Store == nil {
		return nil
	}
	return r.Store.Close()
}

// OpenStore opens the sqlite database named by cfg, creating its
// directory first.
func OpenStore(cfg *model.AppConfig) (*store.SQLiteStore, error) {
	if cfg.Store.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return store.NewSQLiteStore(cfg.Store.Path)
}

// IgnoreBackend returns the ignore store selected by cfg. st may be nil
// when the file backend is in use.
func IgnoreBackend(cfg *model.AppConfig, st *store.SQLiteStore) (ignore.Store, error) {
	switch cfg.Ignore.Backend {
	case model.IgnoreBackendSQLite:
		if st == nil {
			return nil, fmt.Errorf("ignore backend %q needs the database", cfg.Ignore.Backend)
		}
		return st.IgnoreStore(), nil
	default:
		return ignore.NewFileStore(cfg.Ignore.Path), nil
	}
}

// Build wires the GitHub service, persistence, launcher, poller and
// executor for cfg.
func Build(ctx context.Context, cfg *model.AppConfig, svc source.Service) (*Runtime, error) {
	st, err := OpenStore(cfg)
	if err != nil {
		if cfg.Ignore.Backend == model.IgnoreBackendSQLite {
			return nil, err
		}
		log.Warn("action history disabled", "path", cfg.Store.Path, "err", err)
		st = nil
	}

	ignores, err := IgnoreBackend(cfg, st)
	if err != nil {
		return nil, err
	}

	var status string
	urls, err := ignores.Load(ctx)
	if err != nil {
		log.Error("loading ignore list", "err", err)
		status = "Failed to load ignore list: " + err.Error()
	}

	launcher := launch.Launcher{BaseDir: cfg.Review.BaseDir, Editor: cfg.Review.Editor}
	runner := &executor.Executor{
		Mutator:  svc,
		Launcher: launcher,
		Ignores:  ignores,
	}
	if st != nil {
		runner.Recorder = st
		if n, err := st.PruneActions(ctx, time.Now().Add(-historyRetention)); err != nil {
			log.Warn("pruning action history", "err", err)
		} else if n > 0 {
			log.Debug("pruned action history", "rows", n)
		}
	}

	interval := time.Duration(cfg.PollIntervalSec) * time.Second

	return &Runtime{
		Store: st,
		Deps: Deps{
			Poller:   appsync.New(svc, interval, cfg.IncludeRead),
			Runner:   runner,
			Reviewer: launcher,
			Editor:   cfg.Review.Editor,
			State:    reconcile.New(cfg.IncludeRead, ignore.NewSet(urls...)),
			Status:   status,
		},
	}, nil
}

// NewService returns the GitHub GraphQL service authenticated by token.
func NewService(token string) source.Service {
	return github.NewAdapter(github.DefaultEndpoint, token)
}
