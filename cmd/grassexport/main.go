package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"grass-field/grass"
	"grass-field/internal/config"
	gfio "grass-field/io"
	"grass-field/playground"
	"grass-field/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config JSON file")
	blades := flag.Int("blades", 0, "Number of grass blades (default: 30000)")
	seed := flag.Int64("seed", 0, "Random seed (default: time-based)")
	workers := flag.Int("workers", 0, "Mesh build workers (default: NumCPU, 1 = sequential)")
	out := flag.String("out", "", "Output path, .glb or .obj (default: grassfield.glb)")
	single := flag.Bool("blade", false, "Export a single blade at the origin")
	noGround := flag.Bool("no-ground", false, "Leave the dirt ground out")
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
		Blades:  *blades,
		Seed:    *seed,
		Workers: *workers,
		Export:  *out,
	})

	meshes, err := buildMeshes(cfg.Options(), *single, !*noGround)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := gfio.Export(cfg.ExportPath, meshes...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildMeshes(opts playground.Options, single, withGround bool) ([]*scene.Mesh, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	start := time.Now()
	var data *grass.MeshData
	if single {
		data = grass.BuildBlade(0, 0, opts.Blade)
	} else {
		data = playground.BuildGrass(opts)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("grass mesh: %w", err)
	}
	fmt.Printf("[Grass] %d vertices, %d triangles in %v (seed %d)\n",
		data.VertexCount(), data.TriangleCount(), time.Since(start), opts.Seed)

	blades := scene.NewMesh(playground.GrassName, data.Positions, data.Normals, data.Indices)
	blades.Material = playground.NewWindMaterial(opts, nil)

	s := scene.NewScene()
	s.AddMesh(blades)
	if withGround && !single {
		playground.AddGround(s, opts.Field)
	}
	return s.WorldMeshes(), nil
}
