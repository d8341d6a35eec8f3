package heatmap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/heatmap/internal/parallel"
)

// Renderer draws batches of tiles in parallel.
//
// Tiles are independent, so a batch is spread across a worker pool with one
// job per tile. Gradient tables come from a GradientCache and are shared
// read-only by all jobs.
//
// Renderer is safe for concurrent use. Call Close to stop its workers.
type Renderer struct {
	pool   *parallel.WorkerPool
	cache  *GradientCache
	logger *slog.Logger
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = NewGradientCache(0)
	}
	return &Renderer{
		pool:   parallel.NewWorkerPool(o.workers),
		cache:  o.cache,
		logger: o.logger,
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Workers returns the number of tiles rendered concurrently.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Gradient returns the (cached) lookup table for stops.
func (r *Renderer) Gradient(stops []ColorStop) (*GradientTable, error) {
	return r.cache.Table(stops)
}

// ColoredTile wraps base with the cached gradient for stops.
func (r *Renderer) ColoredTile(base Tile, stops []ColorStop) (*ColoredTile, error) {
	table, err := r.Gradient(stops)
	if err != nil {
		return nil, err
	}
	return NewColoredTile(base, table), nil
}

// Colorize recolors a single large buffer using the renderer's workers.
// The result is identical to Colorize. It may be called from a tile's Draw
// during RenderTiles.
func (r *Renderer) Colorize(pix []uint8, table *GradientTable) error {
	return ColorizeParallel(r.pool, pix, table)
}

// RenderTiles draws every tile and returns the pixmaps in tile order.
//
// Tiles run concurrently. A tile whose turn comes after ctx is done is
// skipped. On failure RenderTiles returns the error of the lowest-indexed
// failed tile, or ctx.Err() if tiles were skipped, and no pixmaps.
func (r *Renderer) RenderTiles(ctx context.Context, tiles []Tile) ([]*Pixmap, error) {
	out := make([]*Pixmap, len(tiles))
	errs := make([]error, len(tiles))

	jobs := make([]func(), len(tiles))
	for i, tile := range tiles {
		jobs[i] = func() {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			if tile == nil {
				errs[i] = fmt.Errorf("heatmap: tile %d is nil", i)
				return
			}
			out[i], errs[i] = tile.Draw()
		}
	}
	r.pool.ExecuteAll(jobs)

	for i, err := range errs {
		if err != nil {
			r.log().Warn("heatmap: tile render failed", "tile", i, "tiles", len(tiles), "err", err)
			return nil, fmt.Errorf("heatmap: tile %d: %w", i, err)
		}
	}
	return out, nil
}

// Close stops the worker pool. The renderer must not be used afterwards.
func (r *Renderer) Close() {
	r.pool.Close()
}
