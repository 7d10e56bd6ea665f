package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/baiana/danceclub/config"
	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/application/query"
	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/infrastructure/persistence/redis"
	"github.com/baiana/danceclub/internal/infrastructure/persistence/sqlstore"
	"github.com/baiana/danceclub/internal/interface/console"
	"github.com/baiana/danceclub/pkg/logger"
	"github.com/baiana/danceclub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION WIRING
// ══════════════════════════════════════════════════════════════════════════════

// app holds everything the console needs plus the resources to release on exit.
type app struct {
	Commands console.Commands
	Queries  console.Queries
	Log      *logger.Logger

	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func bootstrap(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 1. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	a.Log = log
	a.closers = append(a.closers, closeLog)

	log.Info("starting danceclub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("driver", cfg.Database.Driver),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 2. DATASTORE
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		log.Info("closing datastore")
		_ = conn.Close()
	})

	applied, err := sqlstore.NewMigrator(conn).Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations completed", logger.Int("applied", applied))

	// ─────────────────────────────────────────────────────────────────────────
	// 3. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	levels := levelRepository(ctx, a, cfg, sqlstore.NewLevelRepository(conn))
	students := sqlstore.NewStudentRepository(conn)
	examiners := sqlstore.NewExaminerRepository(conn)
	styles := sqlstore.NewDanceStyleRepository(conn)
	events := sqlstore.NewEventRepository(conn)
	parameters := sqlstore.NewParameterRepository(conn)
	evaluations := sqlstore.NewEvaluationRepository(conn)
	users := sqlstore.NewUserRepository(conn)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	a.Commands = console.Commands{
		Levels:     command.NewLevelHandler(levels, log),
		Students:   command.NewStudentHandler(students, levels, log),
		Examiners:  command.NewExaminerHandler(examiners, log),
		Styles:     command.NewDanceStyleHandler(styles, log),
		Events:     command.NewEventHandler(events, log),
		Parameters: command.NewParameterHandler(parameters, styles, levels, log),
		Evaluations: command.NewEvaluationHandler(command.EvaluationDeps{
			Evaluations: evaluations,
			Students:    students,
			Examiners:   examiners,
			Levels:      levels,
			Events:      events,
			Parameters:  parameters,
		}, log),
		Users: command.NewUserHandler(users, students, cfg.Security.BcryptCost, log),
	}

	a.Queries = console.Queries{
		Levels:      query.NewLevelQueries(levels),
		Students:    query.NewStudentQueries(students),
		Examiners:   query.NewExaminerQueries(examiners),
		Styles:      query.NewStyleQueries(styles),
		Events:      query.NewEventQueries(events),
		Parameters:  query.NewParameterQueries(parameters),
		Evaluations: query.NewEvaluationQueries(evaluations),
		Users:       query.NewUserQueries(users),
	}

	return a, nil
}

// newLogger builds the process logger. Logs go to a file when one is
// configured, otherwise to stderr; stdout belongs to the menu.
func newLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFile := func() {}

	if cfg.Observability.LogFile != "" {
		f, err := os.OpenFile(cfg.Observability.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFile = func() { _ = f.Close() }
	}

	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}

	log := logger.New(logger.Options{
		Output:    out,
		Level:     level,
		Format:    cfg.Observability.LogFormat,
		AddCaller: cfg.IsDevelopment(),
	}).With(logger.String("app", cfg.App.Name))

	return log, func() {
		_ = log.Sync()
		closeFile()
	}, nil
}

// openStore connects to the datastore, retrying while a postgres server is
// still starting or a sqlite file is locked.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sqlstore.Connection, error) {
	storeCfg := sqlstore.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		URL:             cfg.Database.URL,
		BusyTimeout:     cfg.Database.BusyTimeout,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogQueries:      cfg.Database.LogQueries,
	}

	retrier := retry.DatastoreRetrier(func(attempt int, err error, delay time.Duration) {
		log.Warn("datastore connection failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	})

	conn, err := retry.DoWithData(ctx, retrier, func(ctx context.Context) (*sqlstore.Connection, error) {
		conn, err := sqlstore.NewConnection(ctx, storeCfg, log)
		if errors.Is(err, sqlstore.ErrUnsupportedDriver) {
			return nil, retry.Permanent(err)
		}
		return conn, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to datastore: %w", err)
	}
	log.Info("datastore connection established", logger.String("driver", string(conn.Dialect())))
	return conn, nil
}

// levelRepository puts the Redis cache in front of levels when it is enabled
// and reachable. An unreachable Redis only disables the cache.
func levelRepository(ctx context.Context, a *app, cfg *config.Config, next level.Repository) level.Repository {
	if !cfg.CacheEnabled() {
		return next
	}

	cache, err := redis.NewCache(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		KeyPrefix:    cfg.Redis.KeyPrefix,
		TTL:          cfg.Redis.TTL,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		a.Log.Warn("redis unavailable, level cache disabled", logger.Err(err))
		return next
	}
	a.closers = append(a.closers, func() { _ = cache.Close() })

	a.Log.Info("level cache enabled", logger.Duration("ttl", cfg.Redis.TTL))
	return redis.NewCachedLevelRepository(next, cache, cfg.Redis.TTL, a.Log)
}
