package tags

import "github.com/yohamta/donburi"

var (
	Fighter = donburi.NewTag().SetName("Fighter")
	Dummy   = donburi.NewTag().SetName("Dummy")
	Hitbox  = donburi.NewTag().SetName("Hitbox")
)

// Resolv tags for collision checks
const (
	ResolvFighter = "Fighter"
	ResolvDummy   = "Dummy"
	ResolvHitbox  = "Hitbox"
	ResolvTarget  = "target" // anything a melee hitbox may damage
)
