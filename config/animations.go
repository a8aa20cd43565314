package config

type AnimationDef struct {
	First int
	Last  int
	Step  int
	Speed float32
}

// CharacterAnimations maps a character key (e.g., "fighter")
// to its specific set of animation definitions.
var CharacterAnimations = map[string]map[StateID]AnimationDef{
	"fighter": {
		Idle:    {First: 0, Last: 6, Step: 1, Speed: 5},
		Hit:     {First: 0, Last: 2, Step: 1, Speed: 5},
		Kick01:  {First: 0, Last: 8, Step: 1, Speed: 4},
		Kick02:  {First: 0, Last: 7, Step: 1, Speed: 3},
		Punch01: {First: 0, Last: 5, Step: 1, Speed: 4},
		Punch02: {First: 0, Last: 3, Step: 1, Speed: 5},
		Punch03: {First: 0, Last: 6, Step: 1, Speed: 5},
		Stunned: {First: 0, Last: 6, Step: 1, Speed: 5},
	},
	"dummy": {
		Idle: {First: 0, Last: 0, Step: 1, Speed: 10},
		Hit:  {First: 0, Last: 2, Step: 1, Speed: 5},
	},
}
