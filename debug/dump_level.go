package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"raystein/internal/config"
	"raystein/internal/world"

	"github.com/gookit/color"
)

var (
	styleEmpty  = color.Style{color.FgGray}
	styleWall   = color.Style{color.FgBlue, color.OpBold}
	stylePillar = color.Style{color.FgCyan, color.OpBold}
	styleGoal   = color.Style{color.FgRed, color.OpBold}
	stylePlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	styleSprite = color.Style{color.FgYellow, color.OpBold}
	styleTitle  = color.Style{color.FgMagenta, color.OpBold}
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	levelPath := flag.String("level", "", "level file (defaults to assets.level)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		cfg = config.Default()
	}
	if *levelPath == "" {
		*levelPath = cfg.Assets.Level
	}

	fbW, fbH := cfg.GetFramebufferSize()
	level, err := world.NewLevelLoader(fbW, fbH, cfg.GetFOV()).LoadLevel(*levelPath)
	if err != nil {
		log.Fatal(err)
	}

	g := level.Grid
	cw, ch := g.CellSize()
	fmt.Println(styleTitle.Sprintf("%s  %dx%d cells, %.1fx%.1f px each", *levelPath, g.Cols(), g.Rows(), cw, ch))

	sprites := make(map[[2]int]bool, len(level.Sprites))
	for _, s := range level.Sprites {
		col, row := g.CellIndex(s.X, s.Y)
		sprites[[2]int{col, row}] = true
	}

	for row := 0; row < g.Rows(); row++ {
		var sb strings.Builder
		for col := 0; col < g.Cols(); col++ {
			if sprites[[2]int{col, row}] {
				sb.WriteString(styleSprite.Sprint(string(world.GlyphSprite)))
				continue
			}
			c := g.At(col, row)
			sb.WriteString(styleFor(c).Sprint(string(c.Glyph())))
		}
		fmt.Println(sb.String())
	}

	fmt.Printf("start %.0f,%.0f  sprites %d\n", level.Start.Position.X, level.Start.Position.Y, len(level.Sprites))
}

func styleFor(c world.Cell) color.Style {
	switch c {
	case world.HorizontalWall, world.VerticalWall:
		return styleWall
	case world.PillarWall:
		return stylePillar
	case world.Goal:
		return styleGoal
	case world.PlayerStart:
		return stylePlayer
	}
	return styleEmpty
}
