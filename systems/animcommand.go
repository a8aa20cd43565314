package systems

import (
	"slices"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/yohamta/donburi"
)

// UpdateAnimations advances playback and state timers.
func UpdateAnimations(w donburi.World) {
	for e := range components.Animation.Iter(w) {
		anim := components.Animation.Get(e)
		if anim.CurrentAnimation != nil {
			anim.CurrentAnimation.Update()
		}
		if e.HasComponent(components.State) {
			components.State.Get(e).StateTimer++
		}
	}
}

// UpdateAnimationCommands feeds each entity's current animation into its
// command sender. States without a command retire the running instance.
// Listeners may spawn or remove entities, so the query is collected first.
func UpdateAnimationCommands(w donburi.World) {
	for _, e := range slices.Collect(components.AttackCommand.Iter(w)) {
		if !e.Valid() {
			continue
		}
		ac := components.AttackCommand.Get(e)
		anim := components.Animation.Get(e)

		cmd, ok := ac.Commands[anim.CurrentSheet]
		if !ok || anim.CurrentAnimation == nil {
			ac.Sender.Exit()
			continue
		}

		id := animcmd.Identity{State: int(anim.CurrentSheet), Instance: anim.CurrentAnimation.Instance()}
		if !ac.Sender.Active() || ac.Sender.Identity() != id {
			ac.Sender.SetCommand(cmd)
		}
		ac.Sender.Sample(id, anim.CurrentAnimation.NormalizedTime())
	}
}
