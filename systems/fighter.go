package systems

import (
	"log"
	"slices"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
)

// SpawnFighter creates a fighter and wires its gameplay observers: hitbox
// lifetime and the return to Idle when an attack ends.
func SpawnFighter(w donburi.World, x, y, direction float64) *donburi.Entry {
	e := factory.CreateFighter(w, x, y, direction)
	seq := components.MeleeAttack.Get(e).Sequencer
	seq.Observers().Add(attack.ObserverFuncs{
		Phase: func(ev attack.AttackPhaseEvent) {
			onAttackPhase(w, e, ev)
		},
		End: func(ev attack.AttackEndEvent) {
			onAttackEnd(w, e, ev)
		},
		Changed: func(c attack.StateChange) {
			if c.To == attack.StateNone {
				removeHitbox(w, e)
			}
		},
	})
	return e
}

// UpdateFighters turns input into attacks and counts down hit-stun.
func UpdateFighters(w donburi.World) {
	for _, e := range slices.Collect(tags.Fighter.Iter(w)) {
		fighter := components.Fighter.Get(e)
		if fighter.StunFrames > 0 {
			fighter.StunFrames--
			if fighter.StunFrames == 0 {
				setFighterState(e, cfg.Idle)
			}
			continue
		}

		input := components.Input.Get(e)
		if input.JustPressed(cfg.ActionAttack) {
			TryAttack(e)
		}
	}
}

// TryAttack starts the next attack of the chain. Inside the attack window
// the combo advances a stage; otherwise the chain starts over.
func TryAttack(e *donburi.Entry) bool {
	melee := components.MeleeAttack.Get(e)
	seq := melee.Sequencer

	next := 0
	if seq.State() == attack.StateAttackWindow {
		next = melee.ComboIndex + 1
	}
	if !seq.BeginAttack(next) {
		return false
	}

	melee.ComboIndex = next
	melee.Phase = timeline.PhaseNone
	state := cfg.Attacks.ComboState(next)
	components.State.Get(e).Set(state)
	components.Animation.Get(e).Replay(state)
	return true
}

func onAttackPhase(w donburi.World, e *donburi.Entry, ev attack.AttackPhaseEvent) {
	if !e.Valid() {
		return
	}
	melee := components.MeleeAttack.Get(e)
	melee.Phase = ev.Phase

	switch ev.Phase {
	case timeline.PhaseActive:
		if ev.Flags&cfg.FlagHitbox != 0 {
			spawnHitbox(w, e, ev.AttackID)
		}
	case timeline.PhaseRecovery:
		removeHitbox(w, e)
	}
}

func onAttackEnd(w donburi.World, e *donburi.Entry, ev attack.AttackEndEvent) {
	if !e.Valid() {
		return
	}
	removeHitbox(w, e)

	melee := components.MeleeAttack.Get(e)
	if cfg.Debug.LogCombat {
		log.Printf("[combat] attack %d ended (%s) after %d hits", ev.AttackID, ev.Reason, melee.Hits)
	}
	melee.ComboIndex = 0
	melee.Hits = 0
	melee.Phase = timeline.PhaseEnd

	// A stunned fighter keeps its stun animation.
	if components.Fighter.Get(e).StunFrames == 0 {
		setFighterState(e, cfg.Idle)
	}
}

func setFighterState(e *donburi.Entry, state cfg.StateID) {
	components.State.Get(e).Set(state)
	components.Animation.Get(e).SetAnimation(state)
}
