// Command luxcore drives a batch render of a built-in scene ('default' or
// 'cornell') and writes a PNG, mirroring the teacher's main.go: flags
// layer over a config file, which layers over built-in defaults. It does
// not load external scene files.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rowanvale/luxcore/pkg/config"
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/imageio"
	"github.com/rowanvale/luxcore/pkg/renderer"
	"github.com/rowanvale/luxcore/pkg/scene"
)

func main() {
	cfg, sceneName, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := core.NewStdoutLogger()
	logger.Printf("Starting luxcore render...\n")
	startTime := time.Now()

	sceneObj, err := buildScene(sceneName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating scene: %v\n", err)
		os.Exit(1)
	}
	if err := sceneObj.Build(scene.DefaultMaxPrimsInLeaf); err != nil {
		fmt.Fprintf(os.Stderr, "error building scene: %v\n", err)
		os.Exit(1)
	}

	cam := renderer.NewCamera(cfg.CameraConfig())

	numWorkers := cfg.Render.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	var stats renderer.Stats
	var framebuffer *renderer.Framebuffer

	switch cfg.Render.Driver {
	case "dynamic":
		driver := renderer.NewDynamicDriver(cfg.Render.Width, cfg.Render.Height, cfg.Render.SamplesPerPixel, cfg.Render.SamplesPerPass, numWorkers, cfg.IntegratorConfig())
		defer driver.Shutdown()
		stats = driver.Render(sceneObj, cam)
		framebuffer = driver.Framebuffer()
	default:
		driver := renderer.NewStaticDriver(cfg.Render.Width, cfg.Render.Height, cfg.Render.SamplesPerPixel, cfg.Render.SamplesPerPass, numWorkers, cfg.IntegratorConfig())
		stats = driver.Render(sceneObj, cam)
		framebuffer = driver.Framebuffer()
	}

	if err := imageio.WritePNG(cfg.Render.OutputPNG, framebuffer); err != nil {
		fmt.Fprintf(os.Stderr, "error writing PNG: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Render completed in %v (%d samples/pixel, %d tiles)\n", time.Since(startTime), stats.SamplesCompleted, stats.TilesRendered)
	logger.Printf("Saved to %s\n", cfg.Render.OutputPNG)
}

// parseFlags layers CLI flags over an optional TOML config file over
// config.Default(), the same layering order the teacher applies to scene
// defaults.
func parseFlags() (config.Config, string, error) {
	configPath := flag.String("config", "", "path to a TOML render config file")
	sceneName := flag.String("scene", "default", "built-in scene name: 'default' or 'cornell'")
	width := flag.Int("width", 0, "override output width")
	height := flag.Int("height", 0, "override output height")
	samples := flag.Int("samples", 0, "override samples per pixel")
	workers := flag.Int("workers", 0, "override worker count (0 = auto)")
	maxDepth := flag.Int("max-depth", 0, "override maximum path depth")
	driver := flag.String("driver", "", "override driver flavor: 'static' or 'dynamic'")
	output := flag.String("output", "", "override output PNG path")
	clampRadiance := flag.Bool("clamp-radiance", false, "clamp firefly radiance to [0,1]")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	overrides := config.Overrides{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		NumWorkers:      *workers,
		MaxDepth:        *maxDepth,
		Driver:          *driver,
		OutputPNG:       *output,
	}
	isFlagSet(flag.CommandLine, "clamp-radiance", &overrides, *clampRadiance)

	cfg = config.Apply(cfg, overrides)
	return cfg, *sceneName, nil
}

// isFlagSet records whether -clamp-radiance was actually passed, since its
// zero value (false) is also a legitimate override.
func isFlagSet(fs *flag.FlagSet, name string, overrides *config.Overrides, value bool) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			overrides.ClampRadianceSet = true
			overrides.ClampRadiance = value
		}
	})
}

func buildScene(name string) (*scene.Scene, error) {
	switch name {
	case "cornell":
		return scene.NewCornellBoxScene(), nil
	case "default":
		return scene.NewDefaultScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (built-in scenes are 'default' and 'cornell'; load external assets via pkg/loaders.AssetLoader)", name)
	}
}
