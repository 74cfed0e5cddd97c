package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/rowanvale/luxcore/pkg/integrator"
	"github.com/rowanvale/luxcore/pkg/scene"
)

// StaticDriver spawns a fixed worker pool per render call and blocks
// until spp samples accumulate or cancellation is signaled (spec §4.9).
// Simpler than DynamicDriver and the right choice for a one-shot batch
// render where reusing workers across frames doesn't matter.
type StaticDriver struct {
	Width, Height   int
	SamplesPerPixel int
	SamplesPerPass  int
	NumWorkers      int
	Config          integrator.Config

	framebuffer *Framebuffer
	stop        int32
}

// NewStaticDriver creates a driver with a freshly allocated framebuffer.
func NewStaticDriver(width, height, spp, samplesPerPass, numWorkers int, cfg integrator.Config) *StaticDriver {
	if samplesPerPass <= 0 {
		samplesPerPass = spp
	}
	return &StaticDriver{
		Width:           width,
		Height:          height,
		SamplesPerPixel: spp,
		SamplesPerPass:  samplesPerPass,
		NumWorkers:      numWorkers,
		Config:          cfg,
		framebuffer:     NewFramebuffer(width, height),
	}
}

// Framebuffer returns the driver's accumulation buffer.
func (d *StaticDriver) Framebuffer() *Framebuffer { return d.framebuffer }

// Terminate requests the render stop at the next tile boundary
// (spec §6 op 5: thread-safe).
func (d *StaticDriver) Terminate() { atomic.StoreInt32(&d.stop, 1) }

func (d *StaticDriver) stopped() bool { return atomic.LoadInt32(&d.stop) != 0 }

// Render blocks until SamplesPerPixel samples have accumulated per pixel
// or Terminate is called (spec §6 op 4).
func (d *StaticDriver) Render(s *scene.Scene, cam *Camera) Stats {
	tiles := BuildTileQueue(d.Width, d.Height)
	numWorkers := d.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	stats := Stats{}
	for passStart := 0; passStart < d.SamplesPerPixel; passStart += d.SamplesPerPass {
		if d.stopped() {
			break
		}
		passEnd := passStart + d.SamplesPerPass
		if passEnd > d.SamplesPerPixel {
			passEnd = d.SamplesPerPixel
		}

		var nextJobIndex int32 = -1
		var tilesRendered int32
		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					if d.stopped() {
						return
					}
					idx := atomic.AddInt32(&nextJobIndex, 1)
					if int(idx) >= len(tiles) {
						return
					}
					renderTile(tiles[idx], passStart, passEnd, d.Width, d.Height, s, cam, d.framebuffer, d.Config)
					atomic.AddInt32(&tilesRendered, 1)
				}
			}()
		}
		wg.Wait() // the pass barrier: every tile in this pass is done before currentSample advances

		stats.TilesRendered += int(tilesRendered)
		stats.SamplesCompleted = passEnd
	}

	return stats
}
