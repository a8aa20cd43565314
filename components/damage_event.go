package components

import "github.com/yohamta/donburi"

type DamageEventData struct {
	Amount   int
	AttackID uint64 // 0 for damage not caused by a melee attack
	Stun     bool   // interrupt the target's attack and hit-stun it
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()
