package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed is computed on-demand by comparing frames. Keyboard polling and
// the headless script both write Current.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

func (in *InputData) JustPressed(a cfg.ActionID) bool {
	return in.Current[a] && !in.Previous[a]
}

// Advance moves this frame's state into Previous and sets the new one.
func (in *InputData) Advance(current [cfg.ActionCount]bool) {
	in.Previous = in.Current
	in.Current = current
}

var Input = donburi.NewComponentType[InputData]()
