package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dstrand/photoweb/internal/authz"
	"github.com/dstrand/photoweb/internal/docs"
	"github.com/dstrand/photoweb/internal/images"
	"github.com/dstrand/photoweb/internal/library"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/server"
	"github.com/dstrand/photoweb/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve assembles and runs the photos web service until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = port
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := r.loadStore(config)
	if err != nil {
		return err
	}

	cache, err := images.NewCache(config.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to create image cache: %w", err)
	}

	var rules *authz.Manager
	if config.Auth.RulesPath != "" {
		if rules, err = authz.LoadManager(config.Auth.RulesPath, r.logger); err != nil {
			return fmt.Errorf("failed to load authorization rules: %w", err)
		}
	} else {
		r.logger.Warn("no authorization rules configured, non-resource URIs will be denied")
		rules = authz.NewManager(nil, r.logger)
	}

	users := repositories.NewUserRepository(db)
	sessions := repositories.NewSessionRepository(db)
	verifier := server.NewGoogleVerifier(r.httpClient)

	srv := server.New(config, store, cache, docs.NewService(config.Library.DocsRoot),
		users, sessions, rules, verifier, r.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Library.Watch {
		watcher, err := library.NewWatcher(store, r.logger)
		if err != nil {
			r.logger.Warn("library watcher unavailable", "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	if removed, err := sessions.DeleteExpired(); err == nil && removed > 0 {
		r.logger.Info("pruned expired sessions", "count", removed)
	}

	return srv.Run(ctx)
}
