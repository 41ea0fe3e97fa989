package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"grass-field/core"
	"grass-field/internal/config"
	gfio "grass-field/io"
	"grass-field/playground"
	"grass-field/renderer"
)

func main() {
	configFile := flag.String("config", "", "Path to config JSON file")
	blades := flag.Int("blades", 0, "Number of grass blades (default: 30000)")
	seed := flag.Int64("seed", 0, "Random seed (default: time-based)")
	workers := flag.Int("workers", 0, "Mesh build workers (default: NumCPU)")
	noiseSrc := flag.String("noise", "", "Noise texture URL or file (default: playground distortion map)")
	noNoise := flag.Bool("no-noise", false, "Start with the sine-only wind")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	shot := flag.String("screenshot", "", "Screenshot path, .webp or .png (F12)")
	export := flag.String("export", "", "Export path, .glb or .obj (F5)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		Blades:      *blades,
		Seed:        *seed,
		Workers:     *workers,
		NoiseSource: *noiseSrc,
		NoNoise:     *noNoise,
		Screenshot:  *shot,
		Export:      *export,
	})

	if err := run(cfg, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, configFile string) error {
	fmt.Println("Starting grass field...")

	window, err := core.NewWindow(cfg.Window())
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	renderEngine, err := renderer.NewRenderEngine(window)
	if err != nil {
		return fmt.Errorf("failed to create render engine: %w", err)
	}
	defer renderEngine.Destroy()

	clock := playground.NewStopwatch()
	opts := cfg.Options()
	opts.Clock = clock.Seconds
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	s, err := playground.CreateScene(ctx, opts)
	cancel()
	if err != nil {
		return err
	}
	defer s.Dispose()
	renderEngine.SetScene(s)

	camController := NewCameraController(window)
	keys := keyLatch{}

	fmt.Println("Controls: RMB drag / arrows = orbit, wheel = zoom, Space = pause wind,")
	fmt.Println("          R = new seed, N = noise on/off, W = wireframe, F = frame field,")
	fmt.Println("          F12 = screenshot, F5 = export mesh, F6 = save config, Esc = quit")

	lastFbW, lastFbH := window.GetFramebufferSize()
	lastFrame := time.Now()
	lastTitle := lastFrame
	fpsLastTime := lastFrame
	frameCount := 0
	fpsCounter := 0

	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		deltaTime := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if fbW, fbH := window.GetFramebufferSize(); fbW != lastFbW || fbH != lastFbH {
			if fbW > 0 && fbH > 0 {
				renderEngine.Resize(fbW, fbH)
			}
			lastFbW, lastFbH = fbW, fbH
		}

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}
		if keys.pressed(window, core.KeySpace) {
			paused := clock.Toggle()
			fmt.Printf("[Wind] %s\n", map[bool]string{true: "PAUSED", false: "RUNNING"}[paused])
		}
		if keys.pressed(window, core.KeyR) {
			opts.Seed = time.Now().UnixNano()
			if err := playground.Regenerate(s, opts); err != nil {
				fmt.Printf("[Grass] %v\n", err)
			}
		}
		if keys.pressed(window, core.KeyN) {
			on := playground.ToggleNoise(s)
			fmt.Printf("[Wind] noise %s\n", map[bool]string{true: "ON", false: "OFF (sine only)"}[on])
		}
		if keys.pressed(window, core.KeyF) {
			playground.FrameGrass(s)
		}
		if keys.pressed(window, core.KeyW) {
			renderEngine.SetWireframe(!renderEngine.IsWireframe())
		}
		if keys.pressed(window, core.KeyF5) {
			if err := gfio.Export(cfg.ExportPath, s.WorldMeshes()...); err != nil {
				fmt.Printf("[Export] %v\n", err)
			}
		}
		if keys.pressed(window, core.KeyF6) {
			cfg.Seed = opts.Seed
			path := configFile
			if path == "" {
				path = "grassfield.json"
			}
			if err := cfg.Save(path); err != nil {
				fmt.Printf("[Config] %v\n", err)
			} else {
				fmt.Printf("[Config] saved %s\n", path)
			}
		}

		camController.Update(window, s.Camera, deltaTime)

		if err := renderEngine.Render(); err != nil {
			return err
		}
		if keys.pressed(window, core.KeyF12) {
			if err := renderEngine.Screenshot(cfg.ScreenshotPath); err != nil {
				fmt.Printf("[Screenshot] %v\n", err)
			}
		}
		renderEngine.Present()

		frameCount++
		fpsCounter++
		if now.Sub(lastTitle).Seconds() >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d | t=%.1fs", cfg.Title, frameCount, clock.Seconds()))
			frameCount = 0
			lastTitle = now
		}

		if fpsCounter%300 == 0 {
			_, verts, tris := renderEngine.DrawStats()
			fpsRate := float64(fpsCounter) / now.Sub(fpsLastTime).Seconds()
			cam := s.Camera
			fmt.Printf("[Frame] FPS: %.1f | Verts: %d Tris: %d | Alpha: %.2f Beta: %.2f Radius: %.2f\n",
				fpsRate, verts, tris, cam.Alpha, cam.Beta, cam.Radius)
			fpsCounter = 0
			fpsLastTime = now
		}
	}

	fmt.Println("Exiting...")
	return nil
}
