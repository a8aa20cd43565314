package netcomponents

import (
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/yohamta/donburi"
)

// NetAttackStateData mirrors a fighter's attack sequencer for remote
// observers. Clients treat it as read-only.
type NetAttackStateData struct {
	State      attack.State
	AttackID   uint64
	ComboIndex int
	Phase      timeline.Phase // last phase reported for the live attack
	Count      int
}

var NetAttackState = donburi.NewComponentType[NetAttackStateData]()
