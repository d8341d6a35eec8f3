package heatmap

import (
	"github.com/gogpu/heatmap/internal/parallel"
)

// Colorize recolors an intensity tile in place.
//
// pix holds interleaved non-premultiplied RGBA bytes. For every pixel the
// alpha byte is the intensity: pixels with alpha 0 are left untouched, all
// others get the R, G, B of table entry [alpha] while keeping their own
// alpha. The table's alpha channel is not used.
//
// Colorize fails with *InvalidBufferError when len(pix) is not a multiple
// of 4 or table is nil. It never allocates and never resizes pix.
func Colorize(pix []uint8, table *GradientTable) error {
	if err := checkColorize(pix, table); err != nil {
		return err
	}
	colorize(pix, &table.lut)
	return nil
}

func checkColorize(pix []uint8, table *GradientTable) error {
	if len(pix)%4 != 0 {
		return &InvalidBufferError{Len: len(pix), Reason: "pixel data length is not a multiple of 4"}
	}
	if table == nil {
		return &InvalidBufferError{Len: 0, Reason: "nil gradient table"}
	}
	return nil
}

// colorize is the per-pixel loop. len(pix) must be a multiple of 4.
func colorize(pix []uint8, lut *[GradientSize * 4]uint8) {
	for i := 0; i < len(pix); i += 4 {
		p := pix[i : i+4 : i+4]
		a := p[3]
		if a == 0 {
			continue
		}
		j := int(a) * 4
		p[0] = lut[j]
		p[1] = lut[j+1]
		p[2] = lut[j+2]
	}
}

// minParallelPixels is the smallest buffer worth splitting across workers.
const minParallelPixels = 64 * 64

// ColorizeParallel is Colorize spread over a worker pool.
//
// The buffer is cut into pixel-aligned bands, one job per band. The result
// is identical to Colorize. If pool is nil or the buffer is small the work
// runs on the calling goroutine.
func ColorizeParallel(pool *parallel.WorkerPool, pix []uint8, table *GradientTable) error {
	if err := checkColorize(pix, table); err != nil {
		return err
	}

	pixels := len(pix) / 4
	if pool == nil || pool.Workers() < 2 || pixels < minParallelPixels {
		colorize(pix, &table.lut)
		return nil
	}

	bands := pool.Workers()
	per := (pixels + bands - 1) / bands
	work := make([]func(), 0, bands)
	for start := 0; start < pixels; start += per {
		end := min(start+per, pixels)
		band := pix[start*4 : end*4]
		work = append(work, func() { colorize(band, &table.lut) })
	}
	pool.ExecuteAll(work)
	return nil
}
