// Command gones is a minimal windowed host for the NES core: it loads a
// ROM, steps the board each frame, and draws a text HUD of CPU state.
// There is no PPU in this core, so there is no picture to render.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"gones/internal/config"
	"gones/internal/cpu"
	"gones/internal/nes"
)

// cyclesPerFrame approximates one NTSC video frame's worth of CPU clocks
// (1.789773 MHz / 60.0988 Hz).
const cyclesPerFrame = 29780

type game struct {
	board     *nes.NES
	cfg       *config.Config
	romLoaded bool
}

func (g *game) Update() error {
	if !g.romLoaded {
		return nil
	}
	for i := 0; i < cyclesPerFrame; i++ {
		g.board.Tick()
		if g.board.CPU().State() == cpu.StateHalt {
			break
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.romLoaded {
		ebitenutil.DebugPrint(screen, "gones\n\nno ROM loaded")
		return
	}
	c := g.board.CPU()
	hud := fmt.Sprintf(
		"gones\n\nPC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%02X\ncycles:%d state:%d",
		c.PC, c.A, c.X, c.Y, c.SP, c.P, c.CycleCount(), c.State(),
	)
	if err := c.Err(); err != nil {
		hud += fmt.Sprintf("\nhalted: %v", err)
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM file")
	configPath := flag.String("config", "", "path to a JSON config file")
	scale := flag.Int("scale", 0, "window scale override")
	flag.Parse()

	cfg := config.NewConfig()
	path := *configPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if err := cfg.LoadFromFile(path); err != nil {
		log.Printf("config: %v, using defaults", err)
	}
	if *scale > 0 {
		cfg.Window.Scale = *scale
	}

	g := &game{board: nes.New(), cfg: cfg}

	rom := *romPath
	if rom == "" {
		rom = cfg.ROM.Path
	}
	if rom != "" {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("reading ROM %s: %v", rom, err)
		}
		if err := g.board.LoadCartridge(data); err != nil {
			log.Fatalf("loading ROM %s: %v", rom, err)
		}
		g.romLoaded = true
	}

	width, height := 256*cfg.Window.Scale, 240*cfg.Window.Scale
	ebiten.SetWindowTitle("gones")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
