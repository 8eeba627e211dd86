package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hakobera/voxceler/internal/config"
	"github.com/hakobera/voxceler/internal/engine"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	imagePath := flag.String("image", "", "image to rasterize at startup (otherwise a demo scene is generated)")
	snapshotPath := flag.String("snapshot", "", "render one frame with the software rasterizer to this PNG and exit")
	gridSize := flag.Int("voxcel-size", 0, "grid side length in cells (overrides config)")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *gridSize > 0 {
		cfg.VoxcelSize = *gridSize
	}
	if *debug {
		cfg.Debug = true
	}

	if *snapshotPath != "" {
		if err := engine.Snapshot(cfg, *imagePath, *snapshotPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	voxceler := engine.New(cfg)
	voxceler.StartImage = *imagePath
	if err := voxceler.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
