package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
	memoryrepo "github.com/simpleblog/simple-blog/pkg/simpleblog/repo/memory"
	pgrepo "github.com/simpleblog/simple-blog/pkg/simpleblog/repo/postgres"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port        string `env:"PORT" env-default:"8000"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// DatabaseURL selects the storage backend: "memory" or a
	// postgres:// connection string. It wins over the BLOG_PG_* fields.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	DB DbConfig
}

// DbConfig describes a postgres connection field by field, for
// environments that don't hand out full URLs.
type DbConfig struct {
	Host     string `env:"BLOG_PG_HOST" env-default:""`
	Port     uint16 `env:"BLOG_PG_PORT" env-default:"5432"`
	Name     string `env:"BLOG_PG_NAME" env-default:"blog"`
	User     string `env:"BLOG_PG_USER" env-default:"blog"`
	Password string `env:"BLOG_PG_PASSWORD" env-default:"pwd"`
}

func (c DbConfig) toDatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabaseType reports the selected backend: "memory" or "postgres".
func (c *Config) DatabaseType() string {
	if c.effectiveDatabaseURL() == "memory" {
		return "memory"
	}
	return "postgres"
}

func (c *Config) effectiveDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DB.Host != "" {
		return c.DB.toDatabaseURL()
	}
	return "memory"
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	dbURL := c.effectiveDatabaseURL()
	if dbURL != "memory" &&
		!strings.HasPrefix(dbURL, "postgres://") &&
		!strings.HasPrefix(dbURL, "postgresql://") {
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
	}

	return nil
}

// BuildRepository constructs the repository selected by the configuration.
// The returned close function releases the underlying pool; it is a no-op
// for the in-memory backend.
func (c *Config) BuildRepository(ctx context.Context) (simpleblog.Repository, func(), error) {
	if c.DatabaseType() == "memory" {
		return memoryrepo.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, c.effectiveDatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	return pgrepo.NewWithPool(pool), pool.Close, nil
}

// BuildService constructs the blog service on top of the configured
// repository.
func (c *Config) BuildService(ctx context.Context) (simpleblog.Service, func(), error) {
	repo, closeRepo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc, err := simpleblog.New(simpleblog.WithRepository(repo))
	if err != nil {
		closeRepo()
		return nil, nil, err
	}

	return svc, closeRepo, nil
}
