package netcomponents

import (
	"github.com/automoto/doomerang-combat/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetFighterStateData struct {
	StateID   netconfig.StateID
	Direction int // -1 left, 1 right
	Health    int
	IsDummy   bool
}

var NetFighterState = donburi.NewComponentType[NetFighterStateData]()
