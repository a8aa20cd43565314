package systems

import "github.com/yohamta/donburi"

// System is one step of the fixed-tick simulation.
type System func(w donburi.World)

// Simulation returns the simulation systems in tick order. The lab and the
// headless simulator both run exactly this list.
func Simulation() []System {
	return []System{
		UpdateFighters,
		UpdateAnimations,
		UpdateAnimationCommands,
		UpdateTimers,
		UpdateCombatHitboxes,
		UpdateCombat,
		UpdateNetState,
	}
}

// Step runs one simulation tick.
func Step(w donburi.World) {
	for _, sys := range Simulation() {
		sys(w)
	}
}
