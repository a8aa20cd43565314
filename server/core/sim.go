package core

import (
	"fmt"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/yohamta/donburi"
)

// Stats summarizes a simulation run.
type Stats struct {
	Attacks int
	Chained int // attacks superseded by the next stage of their combo
	Ends    map[attack.EndReason]int
	Hits    int
	Damage  int
}

// Interrupted counts attacks that were canceled without an end event and
// without chaining, such as by hit-stun.
func (s Stats) Interrupted() int {
	n := s.Attacks - s.Chained
	for _, c := range s.Ends {
		n -= c
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("%d attacks (%d chained, %d natural, %d window elapsed, %d exited, %d interrupted), %d hits for %d damage",
		s.Attacks, s.Chained, s.Ends[attack.EndNatural], s.Ends[attack.EndWindowElapsed], s.Ends[attack.EndExited],
		s.Interrupted(), s.Hits, s.Damage)
}

// Sim runs the combat systems headless: one fighter driven by a script
// against a practice dummy.
type Sim struct {
	world   donburi.World
	script  Script
	fighter *donburi.Entry
	dummy   *donburi.Entry
	tick    int
	stats   Stats
}

// NewSim populates w. Callers that replicate the world must hook it up to
// the network before calling NewSim so the spawned entities can be synced.
func NewSim(w donburi.World, script Script) *Sim {
	factory.CreateSpace(w, cfg.C.Width, cfg.C.Height, 16, 16)
	factory.CreateScheduler(w)

	groundY := float64(cfg.C.Height) * 0.6
	s := &Sim{
		world:   w,
		script:  script,
		fighter: systems.SpawnFighter(w, float64(cfg.C.Width)/2-40, groundY, cfg.DirectionRight),
		dummy:   factory.CreateDummy(w, float64(cfg.C.Width)/2-22, groundY-4),
		stats:   Stats{Ends: make(map[attack.EndReason]int)},
	}

	components.MeleeAttack.Get(s.fighter).Sequencer.Observers().Add(attack.ObserverFuncs{
		End: func(e attack.AttackEndEvent) {
			s.stats.Ends[e.Reason]++
		},
		Changed: func(c attack.StateChange) {
			if c.To != attack.StateWaiting {
				return
			}
			s.stats.Attacks++
			if c.From == attack.StateAttackWindow {
				s.stats.Chained++
			}
		},
	})
	return s
}

// Step applies the script input for the current tick and advances the
// simulation by one tick.
func (s *Sim) Step() {
	input := components.Input.Get(s.fighter)
	input.Advance(s.script.Input(s.tick))
	if input.JustPressed(cfg.ActionStun) {
		systems.Stun(s.fighter, cfg.Combat.DebugStunDamage)
	}

	systems.Step(s.world)
	s.tick++
}

// Run steps until the script is exhausted.
func (s *Sim) Run() Stats {
	for !s.Done() {
		s.Step()
	}
	return s.Stats()
}

// Rewind restarts the script; the world keeps its state.
func (s *Sim) Rewind() {
	s.tick = 0
}

func (s *Sim) Done() bool { return s.tick >= s.script.Ticks }
func (s *Sim) Tick() int { return s.tick }
func (s *Sim) World() donburi.World { return s.world }
func (s *Sim) Fighter() *donburi.Entry { return s.fighter }
func (s *Sim) Dummy() *donburi.Entry { return s.dummy }

func (s *Sim) Stats() Stats {
	out := s.stats
	out.Ends = make(map[attack.EndReason]int, len(s.stats.Ends))
	for k, v := range s.stats.Ends {
		out.Ends[k] = v
	}
	melee := components.MeleeAttack.Get(s.fighter)
	out.Hits = melee.TotalHits
	out.Damage = melee.TotalDamage
	return out
}
