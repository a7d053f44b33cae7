package images

import (
	"context"
	"fmt"
	"os"

	"github.com/dstrand/photoweb/internal/models"
	"golang.org/x/sync/errgroup"
)

// ProgressUpdate reports pregeneration progress. Sends are non-blocking so a
// slow consumer never stalls the workers.
type ProgressUpdate struct {
	Current int    // photos processed so far
	Total   int    // total photos to process
	UUID    string // photo just processed
}

// PregenResult summarizes a pregeneration run.
type PregenResult struct {
	Photos  int // photos processed
	Written int // cache entries written
	Skipped int // entries already cached
	Failed  int // photos that could not be read or scaled
}

// Pregenerate warms the cache with every photo/size combination using up to
// workers concurrent scalers. Existing entries are skipped, so re-running
// after a partial failure only fills the gaps.
func Pregenerate(ctx context.Context, lib *models.Library, cache *Cache, workers int, progress chan<- ProgressUpdate) (*PregenResult, error) {
	if workers <= 0 {
		workers = 4
	}

	photos := make([]*models.Photo, 0, len(lib.Photos))
	for _, p := range lib.Photos {
		photos = append(photos, p)
	}
	total := len(photos)

	type photoResult struct {
		uuid             string
		written, skipped int
		failed           bool
	}
	results := make(chan photoResult, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	done := 0
	for _, photo := range photos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := photoResult{uuid: photo.UUID}
			src, err := os.ReadFile(photo.FilePath)
			if err != nil {
				res.failed = true
				results <- res
				return nil // unreadable source is a per-photo failure, not fatal
			}

			for _, size := range append([]Size{{Suffix: "", Quality: originalQuality}}, Sizes...) {
				key := cache.Key(photo.UUID, size.Suffix)
				if cache.Has(key) {
					res.skipped++
					continue
				}
				scaled, err := Scale(src, size)
				if err != nil {
					res.failed = true
					break
				}
				if err := cache.Put(key, scaled); err != nil {
					return fmt.Errorf("cache write failed for %s: %w", key, err)
				}
				res.written++
			}

			results <- res
			return nil
		})
	}

	result := &PregenResult{}
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for res := range results {
			done++
			result.Photos++
			result.Written += res.written
			result.Skipped += res.skipped
			if res.failed {
				result.Failed++
			}
			if progress != nil {
				select {
				case progress <- ProgressUpdate{Current: done, Total: total, UUID: res.uuid}:
				default:
				}
			}
		}
	}()

	err := g.Wait()
	close(results)
	<-collected

	if err != nil {
		return result, fmt.Errorf("pregeneration aborted: %w", err)
	}
	return result, nil
}
