package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/shared/protocol"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// Closer is implemented by scenes holding watchers or connections.
type Closer interface {
	Close()
}

// NewGame opens the lab, or a spectator view when spectate is set.
func NewGame(attacksPath, spectate string) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	if spectate != "" {
		g.scene = scenes.NewSpectateScene(spectate)
	} else {
		g.scene = scenes.NewLabScene(attacksPath)
	}
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	attacksPath := flag.String("attacks", "", "Attack table YAML to load and watch (default: built-in)")
	showHitboxes := flag.Bool("hitboxes", false, "Draw collision boxes")
	logCombat := flag.Bool("log-combat", false, "Log combat diagnostics")
	spectate := flag.String("spectate", "", "Watch a simulator at host:port instead of running the lab")
	flag.Parse()

	if *spectate != "" {
		// Register network components for client-side deserialization
		if err := protocol.RegisterComponents(); err != nil {
			log.Fatalf("Failed to register network components: %v", err)
		}
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("Doomerang Combat Lab")
	ebiten.SetTPS(config.C.TickRate)

	// Initialize persistence and load saved settings
	// Failure is logged; the lab then runs without saving.
	_ = systems.InitPersistence(systems.AppName)
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(saved)
	}
	// Flags win over saved settings.
	if *showHitboxes {
		config.Debug.ShowHitboxes = true
	}
	if *logCombat {
		config.Debug.LogCombat = true
	}

	game := NewGame(*attacksPath, *spectate)
	err := ebiten.RunGame(game)
	if c, ok := game.scene.(Closer); ok {
		c.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}
