package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
	"github.com/simpleblog/simple-blog/pkg/simpleblog/api"
	"github.com/simpleblog/simple-blog/pkg/simpleblog/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo, closeRepo, err := cfg.BuildRepository(ctx)
	if err != nil {
		slog.Error("Failed to build repository", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	svc, err := simpleblog.New(simpleblog.WithRepository(repo))
	if err != nil {
		slog.Error("Failed to create service", "error", err)
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "setup":
		if err := runSetup(ctx, repo, svc); err != nil {
			slog.Error("Setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Setup complete. Try serving the app")
	case "serve":
		if err := runServe(cfg, repo, svc); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "teardown":
		if err := runTeardown(ctx, repo); err != nil {
			slog.Error("Teardown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Teardown complete")
	default:
		fmt.Fprintln(os.Stderr, "Invalid command", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: server <command>")
	fmt.Fprintln(os.Stderr, "  setup     create the schema and seed accounts")
	fmt.Fprintln(os.Stderr, "  serve     serve the blog over HTTP")
	fmt.Fprintln(os.Stderr, "  teardown  drop the schema")
}

// runSetup recreates the schema and seeds the well-known accounts plus the
// initial post.
func runSetup(ctx context.Context, repo simpleblog.Repository, svc simpleblog.Service) error {
	if schema, ok := repo.(simpleblog.SchemaManager); ok {
		slog.Info("Dropping tables")
		if err := schema.Teardown(ctx); err != nil {
			return err
		}
		slog.Info("Creating tables")
		if err := schema.Setup(ctx); err != nil {
			return err
		}
	}

	slog.Info("Seeding accounts and initial post")
	return svc.Seed(ctx)
}

func runTeardown(ctx context.Context, repo simpleblog.Repository) error {
	schema, ok := repo.(simpleblog.SchemaManager)
	if !ok {
		// Nothing persisted for the in-memory backend.
		return nil
	}
	slog.Info("Dropping tables")
	return schema.Teardown(ctx)
}

// ensureStoreReady refuses to serve against a persistent store whose schema
// has not been created yet. A cheap read surfaces the missing tables before
// the listener starts instead of as a 500 on the first request.
func ensureStoreReady(ctx context.Context, repo simpleblog.Repository) error {
	if _, persistent := repo.(simpleblog.SchemaManager); !persistent {
		return nil
	}
	if _, err := repo.ListUsers(ctx); err != nil {
		return fmt.Errorf("store is not ready, did you run setup?: %w", err)
	}
	return nil
}

func runServe(cfg *config.Config, repo simpleblog.Repository, svc simpleblog.Service) error {
	if err := ensureStoreReady(context.Background(), repo); err != nil {
		return err
	}

	// The in-memory backend starts empty on every process, so it is
	// seeded here instead of by a separate setup run.
	if _, persistent := repo.(simpleblog.SchemaManager); !persistent {
		if err := svc.Seed(context.Background()); err != nil {
			return fmt.Errorf("seed in-memory store: %w", err)
		}
	}

	handler, err := api.NewHandler(svc)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Mount("/", handler.Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Simple Blog serving", "port", cfg.Port, "env", cfg.Environment, "db", cfg.DatabaseType())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exiting")
	return nil
}
