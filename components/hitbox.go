package components

import (
	"github.com/yohamta/donburi"
)

type HitboxData struct {
	OwnerEntity *donburi.Entry          // The fighter that created this hitbox
	AttackID    uint64                  // Attack that spawned it
	Damage      int                     // Damage this hitbox deals
	OffsetX     float64                 // Distance in front of the owner
	OffsetY     float64                 // Vertical offset from the owner's center
	HitEntities map[*donburi.Entry]bool // Entities already hit (prevent multiple hits)
}

var Hitbox = donburi.NewComponentType[HitboxData]()
