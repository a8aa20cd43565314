package systems

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/yohamta/donburi"
)

// UpdateTimers advances the world's scheduler by one fixed tick. Window
// timers and sequencer handler tasks run here.
func UpdateTimers(w donburi.World) {
	if sched := factory.SchedulerOf(w); sched != nil {
		sched.Update(cfg.TickSeconds())
	}
}
