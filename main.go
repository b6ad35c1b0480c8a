package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"raystein/internal/audio"
	"raystein/internal/config"
	"raystein/internal/game"
	"raystein/internal/termview"
	"raystein/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	levelPath := flag.String("level", "", "level file (overrides assets.level)")
	term := flag.Bool("term", false, "render in the terminal instead of a window")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	if *levelPath != "" {
		cfg.Assets.Level = *levelPath
	}

	fbW, fbH := cfg.GetFramebufferSize()
	level, err := world.NewLevelLoader(fbW, fbH, cfg.GetFOV()).LoadLevel(cfg.Assets.Level)
	if err != nil {
		log.Fatal(err)
	}

	textures := game.LoadTextures(cfg)

	player := audio.NewPlayer(cfg.Audio, cfg.Assets.Dir)
	if err := player.Init(); err != nil {
		// Non-fatal, the game runs without sound
		log.Printf("Warning: audio disabled: %v", err)
	}
	defer player.Close()

	if *term {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := termview.Run(ctx, cfg, level, textures, player); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
		return
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Display.TPS > 0 {
		ebiten.SetTPS(cfg.Display.TPS)
	}

	g, err := game.NewGame(cfg, level, textures, player)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
