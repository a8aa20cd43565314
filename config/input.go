package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionAttack
	ActionStun // lab only: hit-stun the fighter
	ActionSave
	ActionReload
	ActionCount // Must be last - used for array sizing
)

var actionNames = map[ActionID]string{
	ActionAttack: "attack",
	ActionStun:   "stun",
	ActionSave:   "save",
	ActionReload: "reload",
}

func (a ActionID) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// ActionByName resolves scripted input names used by the headless sim.
func ActionByName(name string) (ActionID, bool) {
	for id, n := range actionNames {
		if n == name {
			return id, true
		}
	}
	return ActionNone, false
}
