// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// StateID identifies a character state for animation and logic.
type StateID int

const (
	StateNone StateID = -1

	// Character animation states
	Idle StateID = iota
	Hit
	Kick01
	Kick02
	Punch01
	Punch02
	Punch03
	Stunned
)

// StateToFileName maps StateID to the name used in attack tables and logs.
var StateToFileName = map[StateID]string{
	Idle:    "idle",
	Hit:     "hit",
	Kick01:  "kick01",
	Kick02:  "kick02",
	Punch01: "punch01",
	Punch02: "punch02",
	Punch03: "punch03",
	Stunned: "stunned",
}

func (s StateID) String() string {
	if name, ok := StateToFileName[s]; ok {
		return name
	}
	return "unknown"
}

// StateByName is the reverse of StateToFileName.
func StateByName(name string) (StateID, bool) {
	for id, n := range StateToFileName {
		if n == name {
			return id, true
		}
	}
	return StateNone, false
}
