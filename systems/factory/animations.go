package factory

import (
	"fmt"

	"github.com/automoto/doomerang-combat/assets/animations"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
)

// GenerateAnimations creates an AnimationData component based on the character key
// (e.g., "fighter", "dummy") which maps to a set of animation definitions in config.
func GenerateAnimations(key string) *components.AnimationData {
	defs, ok := cfg.CharacterAnimations[key]
	if !ok {
		// Configuration errors should surface at spawn time.
		panic(fmt.Sprintf("No animation definitions found for key: %s", key))
	}

	animData := &components.AnimationData{
		Animations:   make(map[cfg.StateID]*animations.Animation),
		CurrentSheet: cfg.Idle, // Default state
	}

	for state, def := range defs {
		anim := animations.NewAnimation(def.First, def.Last, def.Step, def.Speed)
		if _, isAttack := cfg.Attacks.Attacks[state.String()]; isAttack {
			// Attacks hold their last frame until the sequencer releases them.
			anim.FreezeOnComplete = true
		}
		animData.Animations[state] = anim
	}
	animData.CurrentAnimation = animData.Animations[cfg.Idle]

	return animData
}
