package baseline

import (
	"context"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNull   = "null"
)

// DefaultDir is the file backend directory when none is configured.
const DefaultDir = ".baselines"

// Config selects and configures a baseline backend.
// Field tags match the [baseline] table of the config file.
type Config struct {
	Backend string `toml:"backend"`

	Dir string `toml:"dir"` // file and sqlite

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Open constructs the configured backend. The returned store reports hits,
// misses and saves through the observability store hooks.
func Open(ctx context.Context, cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendFile:
		store, err = NewFileStore(dir)
	case BackendSQLite:
		store, err = NewSQLiteStore(ctx, filepath.Join(dir, "baselines.db"))
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis backend requires redis_addr")
		}
		store, err = NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo backend requires mongo_uri")
		}
		store, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case BackendNull:
		store = NewNullStore()
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown baseline backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return &instrumented{Store: store, backend: backend}, nil
}

// instrumented wraps a Store with observability hooks.
type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, name string) (*Record, error) {
	rec, err := s.Store.Get(ctx, name)
	switch {
	case err == nil:
		observability.Store().OnBaselineHit(ctx, s.backend)
	case IsNotFound(err):
		observability.Store().OnBaselineMiss(ctx, s.backend)
	}
	return rec, err
}

func (s *instrumented) Put(ctx context.Context, rec *Record) error {
	if err := s.Store.Put(ctx, rec); err != nil {
		return err
	}
	observability.Store().OnBaselineSave(ctx, s.backend, len(rec.Text))
	return nil
}
