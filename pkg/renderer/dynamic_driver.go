package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/rowanvale/luxcore/pkg/integrator"
	"github.com/rowanvale/luxcore/pkg/scene"
)

// DynamicDriver keeps a persistent worker pool alive across renders,
// waking workers with a mutex+condvar pair instead of spawning goroutines
// per call (spec §4.9). Render clears resetRender, clears the buffer,
// rebuilds the queue, and notifies; it does not interrupt a render that
// is already in progress. Terminate sets resetRender so workers drop out
// of their tile loop at the next boundary; Shutdown sets stopThreads and
// joins.
type DynamicDriver struct {
	Width, Height   int
	SamplesPerPixel int
	SamplesPerPass  int
	NumWorkers      int
	Config          integrator.Config

	framebuffer *Framebuffer
	activeScene *scene.Scene
	activeCamera *Camera

	mu            sync.Mutex
	cond          *sync.Cond
	tiles         []Tile
	nextJobIndex  int32
	passStart     int32
	passEnd       int32
	generation    int32 // bumped by Render to distinguish stale wakeups
	resetRender   bool
	stopThreads   bool
	renderActive  bool
	wg            sync.WaitGroup
	passWaitMu    sync.Mutex
	passWaitCond  *sync.Cond
	activeWorkers int32
}

// NewDynamicDriver creates a driver and starts its worker pool.
// NumWorkers persistent goroutines are spawned immediately and park on
// the condvar until the first Render call.
func NewDynamicDriver(width, height, spp, samplesPerPass, numWorkers int, cfg integrator.Config) *DynamicDriver {
	if samplesPerPass <= 0 {
		samplesPerPass = spp
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	d := &DynamicDriver{
		Width:           width,
		Height:          height,
		SamplesPerPixel: spp,
		SamplesPerPass:  samplesPerPass,
		NumWorkers:      numWorkers,
		Config:          cfg,
		framebuffer:     NewFramebuffer(width, height),
	}
	d.cond = sync.NewCond(&d.mu)
	d.passWaitCond = sync.NewCond(&d.passWaitMu)

	for i := 0; i < numWorkers; i++ {
		d.wg.Add(1)
		go d.workerLoop()
	}
	return d
}

// Framebuffer returns the driver's accumulation buffer.
func (d *DynamicDriver) Framebuffer() *Framebuffer { return d.framebuffer }

func (d *DynamicDriver) workerLoop() {
	defer d.wg.Done()
	myGeneration := int32(-1)

	for {
		d.mu.Lock()
		for !d.stopThreads && (!d.renderActive || myGeneration == d.generation) {
			d.cond.Wait()
		}
		if d.stopThreads {
			d.mu.Unlock()
			return
		}
		myGeneration = d.generation
		tiles := d.tiles
		passStart, passEnd := int(d.passStart), int(d.passEnd)
		activeScene, activeCamera := d.activeScene, d.activeCamera
		d.mu.Unlock()

		for {
			idx := atomic.AddInt32(&d.nextJobIndex, 1)
			if int(idx) >= len(tiles) {
				break
			}
			d.mu.Lock()
			reset := d.resetRender
			d.mu.Unlock()
			if reset {
				break
			}
			renderTile(tiles[idx], passStart, passEnd, d.Width, d.Height, activeScene, activeCamera, d.framebuffer, d.Config)
		}

		d.passWaitMu.Lock()
		d.activeWorkers--
		if d.activeWorkers == 0 {
			d.passWaitCond.Broadcast()
		}
		d.passWaitMu.Unlock()
	}
}

// Render drives the scene through SamplesPerPixel samples in passes of
// SamplesPerPass, reusing the persistent worker pool (spec §4.9
// "Dynamic" flavor): clears resetRender, rebuilds the tile queue, and
// notifies; blocks until every pass's barrier clears or Terminate is
// called.
func (d *DynamicDriver) Render(s *scene.Scene, cam *Camera) Stats {
	d.mu.Lock()
	d.activeScene = s
	d.activeCamera = cam
	d.resetRender = false
	d.mu.Unlock()

	d.framebuffer.Clear()
	tiles := BuildTileQueue(d.Width, d.Height)

	stats := Stats{}
	for passStart := 0; passStart < d.SamplesPerPixel; passStart += d.SamplesPerPass {
		d.mu.Lock()
		if d.resetRender || d.stopThreads {
			d.mu.Unlock()
			break
		}
		passEnd := passStart + d.SamplesPerPass
		if passEnd > d.SamplesPerPixel {
			passEnd = d.SamplesPerPixel
		}
		d.tiles = tiles
		d.passStart = int32(passStart)
		d.passEnd = int32(passEnd)
		d.nextJobIndex = -1
		d.renderActive = true
		d.generation++

		d.passWaitMu.Lock()
		d.activeWorkers = int32(d.NumWorkers)
		d.passWaitMu.Unlock()

		d.cond.Broadcast()
		d.mu.Unlock()

		d.passWaitMu.Lock()
		for d.activeWorkers > 0 {
			d.passWaitCond.Wait()
		}
		d.passWaitMu.Unlock()

		stats.SamplesCompleted = passEnd
		stats.TilesRendered += len(tiles)
	}

	return stats
}

// Terminate requests the current render stop at the next tile boundary
// (spec §6 op 5).
func (d *DynamicDriver) Terminate() {
	d.mu.Lock()
	d.resetRender = true
	d.mu.Unlock()
}

// Shutdown sets stopThreads and joins every persistent worker. The
// driver must not be used again afterward.
func (d *DynamicDriver) Shutdown() {
	d.mu.Lock()
	d.stopThreads = true
	d.cond.Broadcast()
	d.mu.Unlock()
	d.wg.Wait()
}
