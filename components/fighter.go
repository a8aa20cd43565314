package components

import "github.com/yohamta/donburi"

type FighterData struct {
	Direction  float64 // -1 left, 1 right
	StunFrames int     // remaining hit-stun
}

var Fighter = donburi.NewComponentType[FighterData]()

// FlashData tracks sprite flash effect (hit flash)
type FlashData struct {
	Duration int // frames remaining
}

var Flash = donburi.NewComponentType[FlashData]()
