package render

import (
	"fmt"
	"image/color"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

// DrawCombat draws fighters and dummies as boxes with their health.
func DrawCombat(w donburi.World, screen *ebiten.Image) {
	tags.Dummy.Each(w, func(e *donburi.Entry) {
		drawBody(screen, e, cfg.UI.DummyColor)
	})
	tags.Fighter.Each(w, func(e *donburi.Entry) {
		drawBody(screen, e, cfg.UI.FighterColor)
	})
}

func drawBody(screen *ebiten.Image, e *donburi.Entry, c color.RGBA) {
	obj := components.Object.Get(e).Object
	if e.HasComponent(components.Flash) && components.Flash.Get(e).Duration > 0 {
		c = cfg.White
	}
	vector.FillRect(screen, float32(obj.X), float32(obj.Y), float32(obj.W), float32(obj.H), c, false)

	hp := components.Health.Get(e)
	state := components.State.Get(e).CurrentState
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d/%d", state, hp.Current, hp.Max), int(obj.X)-8, int(obj.Y)-16)
}

// DrawCombatDebug overlays the attack sequencer state, a phase bar for the
// playing attack and, when enabled, every collision box.
func DrawCombatDebug(w donburi.World, screen *ebiten.Image) {
	y := 4
	tags.Fighter.Each(w, func(e *donburi.Entry) {
		melee := components.MeleeAttack.Get(e)
		seq := melee.Sequencer
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"attack #%d  %s  combo %d  count %d/%d  phase %s",
			seq.AttackID(), seq.State(), seq.ComboIndex(), seq.Count(), seq.Limits().Limit(seq.ComboIndex()), melee.Phase,
		), 4, y)
		y += 14

		drawPhaseBar(screen, e)
	})

	if cfg.Debug.ShowHitboxes {
		drawCollisionBoxes(w, screen)
	}
	ebitenutil.DebugPrintAt(screen, "J attack  K stun  F5 save  F9 reload", 4, cfg.C.Height-16)
}

// drawPhaseBar splits the width into the command's phases and marks the
// current normalized time.
func drawPhaseBar(screen *ebiten.Image, e *donburi.Entry) {
	ac := components.AttackCommand.Get(e)
	if !ac.Sender.Active() {
		return
	}
	th := ac.Sender.Command().Thresholds
	width := float32(cfg.C.Width - 8)
	x0, y, h := float32(4), cfg.UI.PhaseBarY+14, cfg.UI.PhaseBarH

	edges := []float64{0, th.StartupEnd, th.ActiveEnd, th.RecoveryEnd, 1}
	for i := 0; i < len(edges)-1; i++ {
		if edges[i+1] <= edges[i] {
			continue
		}
		from := x0 + width*float32(edges[i])
		to := x0 + width*float32(edges[i+1])
		p := timeline.Locate((edges[i]+edges[i+1])/2, th)
		vector.FillRect(screen, from, y, to-from, h, cfg.UI.PhaseColors[p], false)
	}

	t := ac.Sender.NormalizedTime()
	if t > 1 {
		t = 1
	}
	vector.FillRect(screen, x0+width*float32(t)-1, y-2, 2, h+4, cfg.UI.TextColor, false)
}

func drawCollisionBoxes(w donburi.World, screen *ebiten.Image) {
	space := factory.SpaceOf(w)
	if space == nil {
		return
	}
	for _, obj := range space.Objects() {
		c := cfg.UI.FighterColor
		switch {
		case obj.HasTags(tags.ResolvHitbox):
			c = cfg.UI.HitboxColor
		case obj.HasTags(tags.ResolvDummy):
			c = cfg.UI.DummyColor
		}
		x, y := float32(obj.X), float32(obj.Y)
		vector.StrokeRect(screen, x, y, float32(obj.W), float32(obj.H), 1, c, false)
	}
}
