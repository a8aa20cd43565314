package render

import (
	"fmt"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

// DrawSpectated draws replicated fighters and dummies from their network
// components alone.
func DrawSpectated(w donburi.World, screen *ebiten.Image) {
	y := 4
	netcomponents.NetFighterState.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetPosition) {
			return
		}
		pos := netcomponents.NetPosition.Get(e)
		st := netcomponents.NetFighterState.Get(e)

		width, height, c := cfg.Fighter.CollisionWidth, cfg.Fighter.CollisionHeight, cfg.UI.FighterColor
		if st.IsDummy {
			width, height, c = cfg.Dummy.CollisionWidth, cfg.Dummy.CollisionHeight, cfg.UI.DummyColor
		}
		vector.FillRect(screen, float32(pos.X), float32(pos.Y), float32(width), float32(height), c, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d", st.StateID, st.Health), int(pos.X)-8, int(pos.Y)-16)

		if !e.HasComponent(netcomponents.NetAttackState) {
			return
		}
		as := netcomponents.NetAttackState.Get(e)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"attack #%d  %s  combo %d  count %d  phase %s",
			as.AttackID, as.State, as.ComboIndex, as.Count, as.Phase,
		), 4, y)
		y += 14
	})
}
