package config

import "github.com/automoto/doomerang-combat/shared/netconfig"

// Type alias so client and server code can keep using config.StateID.
type StateID = netconfig.StateID

// Re-export character state constants.
const (
	StateNone = netconfig.StateNone

	Idle    = netconfig.Idle
	Hit     = netconfig.Hit
	Kick01  = netconfig.Kick01
	Kick02  = netconfig.Kick02
	Punch01 = netconfig.Punch01
	Punch02 = netconfig.Punch02
	Punch03 = netconfig.Punch03
	Stunned = netconfig.Stunned
)

// Re-export the map (same reference, no copy).
var StateToFileName = netconfig.StateToFileName

// StateByName resolves an attack table state name.
func StateByName(name string) (StateID, bool) {
	return netconfig.StateByName(name)
}
