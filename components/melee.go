// components/melee.go
package components

import (
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/yohamta/donburi"
)

type MeleeAttackData struct {
	Sequencer    *attack.Sequencer
	ComboIndex   int            // combo stage of the live attack
	ActiveHitbox *donburi.Entry // Direct reference to the active hitbox
	Hits         int            // targets hit by the live chain
	Phase        timeline.Phase // last phase reported for the live attack

	// Lifetime totals, never reset.
	TotalHits   int
	TotalDamage int
}

var MeleeAttack = donburi.NewComponentType[MeleeAttackData]()
