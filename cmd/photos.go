package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dstrand/photoweb/internal/images"
	"github.com/urfave/cli/v3"
)

// PhotosPregen warms the image cache with every photo/size combination.
func (r *Runner) PhotosPregen(ctx context.Context, cmd *cli.Command) error {
	workers := cmd.Int("workers")

	config := r.loadConfig(cmd.String("config"))

	store, err := r.loadStore(config)
	if err != nil {
		return err
	}

	cache, err := images.NewCache(config.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to create image cache: %w", err)
	}

	lib := store.Library()
	r.logger.Info("pregenerating image variants", "photos", len(lib.Photos), "workers", workers)
	r.writePlain("→ Pregenerating variants for %d photos...\n", len(lib.Photos))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	progress := make(chan images.ProgressUpdate, 64)
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for update := range progress {
			r.writePlain("\r  %d/%d photos", update.Current, update.Total)
		}
	}()

	result, err := images.Pregenerate(ctx, lib, cache, workers, progress)
	close(progress)
	<-consumed
	r.writePlain("\n")

	if err != nil {
		return err
	}

	r.writePlainln("✓ Pregeneration complete")
	r.writePlain("  Photos:  %d\n", result.Photos)
	r.writePlain("  Written: %d\n", result.Written)
	r.writePlain("  Skipped: %d\n", result.Skipped)
	if result.Failed > 0 {
		r.writePlain("  Failed:  %d\n", result.Failed)
	}
	return nil
}

// CacheInfo prints image cache statistics.
func (r *Runner) CacheInfo(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	config := r.loadConfig(cmd.String("config"))

	cache, err := images.NewCache(config.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to open image cache: %w", err)
	}

	stats, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	if useJSON {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Image Cache")
	r.writePlain("Directory: %s\n", config.Cache.Dir)
	r.writePlain("Entries:   %d\n", stats.Entries)
	r.writePlain("Size:      %s\n", images.FormatBytes(stats.TotalBytes))
	return nil
}
