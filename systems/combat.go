package systems

import (
	"log"
	"slices"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
)

// UpdateCombat handles damage events, dummy recovery and flash timers, and
// keeps health values within their valid range.
func UpdateCombat(w donburi.World) {
	// 1. Process queued damage events. Handling a hit can remove components,
	// so the query is collected first.
	for _, e := range slices.Collect(components.DamageEvent.Iter(w)) {
		dmg := *components.DamageEvent.Get(e)
		donburi.Remove[components.DamageEventData](e, components.DamageEvent)

		if e.HasComponent(components.Health) {
			components.Health.Get(e).Current -= dmg.Amount
		}
		if e.HasComponent(components.Flash) {
			components.Flash.SetValue(e, components.FlashData{Duration: cfg.Combat.HitFlashFrames})
		}

		switch {
		case e.HasComponent(tags.Fighter):
			hitFighter(e, dmg)
		case e.HasComponent(tags.Dummy):
			hitDummy(e)
		}
		if cfg.Debug.LogCombat {
			log.Printf("[combat] entity %v took %d damage (attack %d)", e.Entity(), dmg.Amount, dmg.AttackID)
		}
	}

	// 2. Dummies leave Hit once the reaction has played.
	tags.Dummy.Each(w, func(e *donburi.Entry) {
		state := components.State.Get(e)
		if state.CurrentState == cfg.Hit && state.StateTimer >= cfg.Dummy.HitFrames {
			state.Set(cfg.Idle)
			components.Animation.Get(e).SetAnimation(cfg.Idle)
		}
	})

	// 3. Tick hit flashes.
	components.Flash.Each(w, func(e *donburi.Entry) {
		if flash := components.Flash.Get(e); flash.Duration > 0 {
			flash.Duration--
		}
	})

	// 4. Clamp health ranges (0..Max). A practice dummy refills when emptied.
	components.Health.Each(w, func(e *donburi.Entry) {
		hp := components.Health.Get(e)
		if hp.Current < 0 {
			hp.Current = 0
		}
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}
		if hp.Current == 0 && e.HasComponent(tags.Dummy) && cfg.Dummy.RespawnAtMax {
			hp.Current = hp.Max
		}
	})
}

// hitFighter interrupts the fighter's attack chain and hit-stuns it.
func hitFighter(e *donburi.Entry, dmg components.DamageEventData) {
	if !dmg.Stun {
		return
	}
	fighter := components.Fighter.Get(e)
	fighter.StunFrames = cfg.Fighter.StunFrames
	melee := components.MeleeAttack.Get(e)
	melee.Sequencer.CancelAttack()
	melee.ComboIndex = 0
	melee.Hits = 0
	melee.Phase = timeline.PhaseNone
	setFighterState(e, cfg.Stunned)
}

func hitDummy(e *donburi.Entry) {
	components.State.Get(e).Set(cfg.Hit)
	// Restart so consecutive hits each replay the reaction.
	components.State.Get(e).StateTimer = 0
	components.Animation.Get(e).Replay(cfg.Hit)
}

// Stun queues a stunning hit on target, as if struck by something other than
// a melee attack.
func Stun(target *donburi.Entry, damage int) {
	queueDamage(target, components.DamageEventData{Amount: damage, Stun: true})
}
