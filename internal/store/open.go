package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/jobtracker/internal/config"
	"github.com/JonMunkholm/jobtracker/internal/core"
)

// Drivers accepted by Open.
const (
	DriverXLSX     = "xlsx"
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Drivers lists every driver name.
var Drivers = []string{DriverXLSX, DriverCSV, DriverPostgres, DriverSQLite, DriverMemory}

// Backend is a store that can also create its tables.
type Backend interface {
	core.Store
	core.TableInitializer
}

// Options selects and configures a backend.
type Options struct {
	Driver      string
	Path        string // workbook file, CSV directory or SQLite file
	DatabaseURL string // PostgreSQL connection string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// OptionsFromConfig builds Options from the store settings.
func OptionsFromConfig(c config.StoreConfig) Options {
	return Options{
		Driver:          c.Driver,
		Path:            c.Path,
		DatabaseURL:     c.DatabaseURL,
		MaxConns:        c.MaxConns,
		MinConns:        c.MinConns,
		MaxConnLifetime: c.MaxConnLifetime,
		MaxConnIdleTime: c.MaxConnIdleTime,
	}
}

// Open creates the backend named by opts.Driver. The returned close
// function releases any connections and is never nil.
func Open(ctx context.Context, opts Options) (Backend, func(), error) {
	noop := func() {}

	switch strings.ToLower(opts.Driver) {
	case DriverXLSX:
		return NewXLSX(opts.Path), noop, nil

	case DriverCSV:
		return NewCSVDir(opts.Path), noop, nil

	case DriverMemory:
		return NewMemory(), noop, nil

	case DriverSQLite:
		s, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		slog.Info("connected to sqlite", "path", opts.Path)
		return s, func() { _ = s.Close() }, nil

	case DriverPostgres:
		pool, err := connectPostgres(ctx, opts)
		if err != nil {
			return nil, noop, err
		}
		p := NewPostgres(pool)
		if err := p.Migrate(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return p, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q (want one of %s)",
			opts.Driver, strings.Join(Drivers, ", "))
	}
}

func connectPostgres(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(opts.DatabaseURL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
