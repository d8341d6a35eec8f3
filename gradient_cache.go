package heatmap

import (
	"strconv"
	"strings"

	"github.com/gogpu/heatmap/cache"
)

// GradientCache shares built gradient tables between tiles styled with the
// same stops. Stop sets that differ only in input order map to one entry.
//
// GradientCache is safe for concurrent use.
type GradientCache struct {
	tables *cache.Sharded[string, *GradientTable]
}

// NewGradientCache creates a cache holding up to capacity tables per shard.
// If capacity <= 0, cache.DefaultCapacity is used.
func NewGradientCache(capacity int) *GradientCache {
	return &GradientCache{tables: cache.NewSharded[string, *GradientTable](capacity)}
}

// Table returns the gradient table for stops, building it on first use.
// Invalid stops are reported as by BuildGradient and are not cached.
func (c *GradientCache) Table(stops []ColorStop) (*GradientTable, error) {
	key := gradientKey(stops)
	built := false
	t, err := c.tables.GetOrCreate(key, func() (*GradientTable, error) {
		built = true
		return BuildGradient(stops)
	})
	if err == nil && !built {
		Logger().Debug("heatmap: gradient cache hit", "stops", len(stops))
	}
	return t, err
}

// Stats reports cache counters.
func (c *GradientCache) Stats() cache.Stats {
	return c.tables.Stats()
}

// Len returns the number of cached tables.
func (c *GradientCache) Len() int {
	return c.tables.Len()
}

// Clear drops every cached table.
func (c *GradientCache) Clear() {
	c.tables.Clear()
}

// gradientKey renders stops in build order with exact float values.
// Two stop lists with equal keys build equal tables.
func gradientKey(stops []ColorStop) string {
	var b strings.Builder
	for _, s := range sortStops(stops) {
		b.WriteString(strconv.FormatFloat(s.Offset, 'g', -1, 64))
		b.WriteByte('=')
		for _, v := range [4]float64{s.Color.R, s.Color.G, s.Color.B, s.Color.A} {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}
