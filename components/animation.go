package components

import (
	"github.com/automoto/doomerang-combat/assets/animations"
	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	CurrentAnimation *animations.Animation
	CurrentSheet     config.StateID
	Animations       map[config.StateID]*animations.Animation
}

func (a *AnimationData) SetAnimation(state config.StateID) {
	if a.CurrentSheet == state && (a.CurrentAnimation != nil || a.Animations[state] == nil) {
		return
	}
	a.play(state)
}

// Replay restarts state even if it is already playing, so a chained attack
// that reuses the same animation gets a fresh instance.
func (a *AnimationData) Replay(state config.StateID) {
	a.play(state)
}

func (a *AnimationData) play(state config.StateID) {
	anim, ok := a.Animations[state]
	if ok {
		a.CurrentAnimation = anim
		a.CurrentSheet = state
		a.CurrentAnimation.Restart()
	} else {
		// No animation for this state, clear current
		a.CurrentAnimation = nil
		a.CurrentSheet = state
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
