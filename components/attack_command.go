package components

import (
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/yohamta/donburi"
)

// AttackCommandData drives the animation command sender for one entity.
type AttackCommandData struct {
	Sender *animcmd.Sender
	// Commands maps each attack state to its command; states without one
	// are not attacks.
	Commands map[config.StateID]animcmd.Command
}

var AttackCommand = donburi.NewComponentType[AttackCommandData]()
