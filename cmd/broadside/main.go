package main

import (
	"flag"
	"log"
	"os"

	"chosenoffset.com/broadside/internal/config"
	"chosenoffset.com/broadside/internal/game"
	"chosenoffset.com/broadside/internal/logging"
	ebitenrender "chosenoffset.com/broadside/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $BROADSIDE_CONFIG)")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *debug {
		cfg.Debug = true
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := logging.New(level, os.Stderr)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g, err := game.New(cfg, renderer, inputMgr, logger, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	gameManager := game.NewManager(g)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Window.TPS)

	logger.Info("starting game", "tps", cfg.Window.TPS, "debug", cfg.Debug)
	if err := engine.RunGame(gameManager); err != nil {
		log.Fatal(err)
	}
}
