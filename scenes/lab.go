package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/systems/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// LayerDefault is the only render layer the lab uses.
const LayerDefault ecs.LayerID = 0

// LabScene is the interactive combat lab: one fighter facing a practice
// dummy, with the attack sequencer overlay drawn on top.
type LabScene struct {
	ecs         *ecs.ECS
	attacksPath string
	watcher     *cfg.Watcher
	once        sync.Once
}

// NewLabScene creates the lab. A non-empty attacksPath is loaded at start and
// watched for edits.
func NewLabScene(attacksPath string) *LabScene {
	return &LabScene{attacksPath: attacksPath}
}

func (ls *LabScene) Update() {
	ls.once.Do(ls.configure)
	systems.PollAttackReload(ls.ecs.World, ls.watcher)
	ls.ecs.Update()
}

func (ls *LabScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ls.ecs == nil {
		return
	}
	ls.ecs.Draw(screen)
}

// Close stops the attack table watcher.
func (ls *LabScene) Close() {
	if ls.watcher != nil {
		ls.watcher.Close()
	}
}

func (ls *LabScene) configure() {
	ls.ecs = ecs.NewECS(donburi.NewWorld())
	w := ls.ecs.World

	// Input runs first so the simulation sees this frame's presses.
	ls.ecs.AddSystem(worldSystem(render.UpdateKeyboardInput))
	for _, sys := range systems.Simulation() {
		ls.ecs.AddSystem(worldSystem(sys))
	}

	ls.ecs.AddRenderer(LayerDefault, worldRenderer(render.DrawCombat))
	ls.ecs.AddRenderer(LayerDefault, worldRenderer(render.DrawCombatDebug))

	factory.CreateSpace(w, cfg.C.Width, cfg.C.Height, 16, 16)
	factory.CreateScheduler(w)

	ls.loadAttackTable(w)

	groundY := float64(cfg.C.Height) * 0.6
	systems.SpawnFighter(w, float64(cfg.C.Width)/2-40, groundY, cfg.DirectionRight)
	factory.CreateDummy(w, float64(cfg.C.Width)/2-22, groundY-4)
}

// loadAttackTable picks the file table over saved overrides over the
// embedded default, and starts watching the file if one was given.
func (ls *LabScene) loadAttackTable(w donburi.World) {
	if ls.attacksPath == "" {
		if table, ok := systems.LoadAttackOverrides(); ok {
			systems.ApplyAttackTable(w, table)
		}
		return
	}

	table, err := cfg.LoadAttackTable(ls.attacksPath)
	if err != nil {
		log.Printf("Warning: %v; using built-in attacks", err)
	} else {
		systems.ApplyAttackTable(w, table)
	}

	watcher, err := cfg.WatchAttackTable(ls.attacksPath)
	if err != nil {
		log.Printf("Warning: Could not watch %s: %v", ls.attacksPath, err)
		return
	}
	ls.watcher = watcher
}

func worldSystem(sys systems.System) ecs.System {
	return func(e *ecs.ECS) {
		sys(e.World)
	}
}

func worldRenderer(draw func(donburi.World, *ebiten.Image)) ecs.Renderer {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		draw(e.World, screen)
	}
}
