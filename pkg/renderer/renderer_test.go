package renderer

import (
	"testing"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/integrator"
	"github.com/rowanvale/luxcore/pkg/scene"
)

func vec(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }

func TestBuildTileQueue_CoversEveryPixelExactlyOnce(t *testing.T) {
	width, height := 70, 50
	tiles := BuildTileQueue(width, height)

	covered := make([]int, width*height)
	for _, tile := range tiles {
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i, c := range covered {
		if c != 1 {
			t.Fatalf("pixel %d covered %d times, want exactly 1", i, c)
		}
	}
}

func TestFramebuffer_AverageIsSumOverCount(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Add(1, 1, vec(1, 0, 0))
	fb.Add(1, 1, vec(3, 0, 0))

	got := fb.At(1, 1)
	if got.X != 2 {
		t.Fatalf("expected average 2, got %g", got.X)
	}
	if fb.SampleCount(1, 1) != 2 {
		t.Fatalf("expected sample count 2, got %d", fb.SampleCount(1, 1))
	}
}

func TestFramebuffer_ClearResetsState(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Add(0, 0, vec(5, 5, 5))
	fb.Clear()
	if fb.SampleCount(0, 0) != 0 {
		t.Fatal("expected sample count 0 after Clear")
	}
	if !fb.At(0, 0).IsZero() {
		t.Fatal("expected zero radiance after Clear")
	}
}

func TestStaticDriver_CompletesAllSamples(t *testing.T) {
	s := scene.NewDefaultScene()
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cam := NewCamera(Config{
		LookFrom:    vec(0, 0, 0),
		LookAt:      vec(0, 0, -1),
		Up:          vec(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	})

	cfg := integrator.DefaultConfig()
	cfg.MaxDepth = 5
	driver := NewStaticDriver(16, 16, 4, 4, 2, cfg)

	stats := driver.Render(s, cam)
	if stats.SamplesCompleted != 4 {
		t.Fatalf("expected 4 samples completed, got %d", stats.SamplesCompleted)
	}
	if driver.Framebuffer().SampleCount(8, 8) != 4 {
		t.Fatalf("expected 4 accumulated samples at center pixel, got %d", driver.Framebuffer().SampleCount(8, 8))
	}
}

func TestDynamicDriver_RenderThenShutdown(t *testing.T) {
	s := scene.NewDefaultScene()
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cam := NewCamera(Config{
		LookFrom:    vec(0, 0, 0),
		LookAt:      vec(0, 0, -1),
		Up:          vec(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	})

	cfg := integrator.DefaultConfig()
	cfg.MaxDepth = 5
	driver := NewDynamicDriver(16, 16, 4, 2, 2, cfg)
	defer driver.Shutdown()

	stats := driver.Render(s, cam)
	if stats.SamplesCompleted != 4 {
		t.Fatalf("expected 4 samples completed, got %d", stats.SamplesCompleted)
	}
}
