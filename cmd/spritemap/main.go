package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"spritemap/internal/config"
	"spritemap/internal/game"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "editor settings file")
	scenePath := flag.String("scene", "", "scene to open on start (defaults to the last one)")
	flag.Parse()

	// Run next to the executable for deployed builds; "go run" builds into go-build temp dirs.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Config: %v (using defaults)", err)
		cfg = config.Default()
	}

	scene := *scenePath
	if scene == "" {
		scene = cfg.LastScene
	}
	game.New(cfg, *configPath).Run(scene)
}
