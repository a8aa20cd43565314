package systems

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
)

// UpdateNetState mirrors simulation state into the replicated components.
func UpdateNetState(w donburi.World) {
	netcomponents.NetPosition.Each(w, func(e *donburi.Entry) {
		obj := components.Object.Get(e).Object
		netcomponents.NetPosition.SetValue(e, netcomponents.NetPositionData{X: obj.X, Y: obj.Y})
	})

	netcomponents.NetFighterState.Each(w, func(e *donburi.Entry) {
		ns := netcomponents.NetFighterState.Get(e)
		ns.StateID = components.State.Get(e).CurrentState
		ns.Health = components.Health.Get(e).Current
		ns.IsDummy = e.HasComponent(tags.Dummy)
		ns.Direction = 1
		if e.HasComponent(components.Fighter) && components.Fighter.Get(e).Direction < 0 {
			ns.Direction = -1
		}
	})

	netcomponents.NetAttackState.Each(w, func(e *donburi.Entry) {
		melee := components.MeleeAttack.Get(e)
		seq := melee.Sequencer
		netcomponents.NetAttackState.SetValue(e, netcomponents.NetAttackStateData{
			State:      seq.State(),
			AttackID:   seq.AttackID(),
			ComboIndex: seq.ComboIndex(),
			Phase:      melee.Phase,
			Count:      seq.Count(),
		})
	})
}
