package heatmap

import "log/slog"

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := heatmap.NewRenderer(
//	    heatmap.WithWorkers(8),
//	    heatmap.WithGradientCache(heatmap.NewGradientCache(0)),
//	)
//	defer r.Close()
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers int
	cache   *GradientCache
	logger  *slog.Logger
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers: 0, // GOMAXPROCS
	}
}

// WithWorkers sets the number of tiles rendered concurrently.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithGradientCache sets the cache used by Renderer.Gradient.
// Without it the renderer creates a private cache.
func WithGradientCache(c *GradientCache) RendererOption {
	return func(o *rendererOptions) {
		o.cache = c
	}
}

// WithLogger sets a logger for this renderer instead of the package logger.
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}
