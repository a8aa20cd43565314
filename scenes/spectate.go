package scenes

import (
	"fmt"
	"image/color"
	"sync"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/network"
	"github.com/automoto/doomerang-combat/systems/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpectateScene watches a remote simulator. Nothing is simulated locally;
// the world only mirrors the latest snapshot.
type SpectateScene struct {
	ecs     *ecs.ECS
	address string
	client  *network.Client
	mirror  *network.Mirror
	once    sync.Once
}

func NewSpectateScene(address string) *SpectateScene {
	return &SpectateScene{address: address, client: network.NewClient()}
}

func (ss *SpectateScene) Update() {
	ss.once.Do(ss.configure)

	if snap := ss.client.LatestSnapshot(); snap != nil {
		ss.mirror.Apply(*snap)
	}
	ss.ecs.Update()
}

func (ss *SpectateScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ss.ecs == nil {
		return
	}
	ss.ecs.Draw(screen)

	status := fmt.Sprintf("%s %s  snapshots %d", ss.address, ss.client.State(), ss.client.Snapshots())
	if err := ss.client.LastError(); err != nil {
		status += "  " + err.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 4, cfg.C.Height-16)
}

// Close drops the connection.
func (ss *SpectateScene) Close() {
	ss.client.Disconnect()
}

func (ss *SpectateScene) configure() {
	ss.ecs = ecs.NewECS(donburi.NewWorld())
	ss.mirror = network.NewMirror(ss.ecs.World)
	ss.ecs.AddRenderer(LayerDefault, worldRenderer(render.DrawSpectated))

	ss.client.Connect(ss.address)
}
