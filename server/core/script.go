package core

import (
	_ "embed"
	"fmt"
	"os"

	cfg "github.com/automoto/doomerang-combat/config"
	"gopkg.in/yaml.v3"
)

// ScriptStep presses action at Tick for Hold ticks. With Repeat > 1 the
// press is repeated every Every ticks.
type ScriptStep struct {
	Tick   int    `yaml:"tick"`
	Action string `yaml:"action"`
	Hold   int    `yaml:"hold"`
	Every  int    `yaml:"every"`
	Repeat int    `yaml:"repeat"`

	action cfg.ActionID
}

// Script is a scripted input timeline for the headless simulator.
type Script struct {
	Ticks int          `yaml:"ticks"`
	Steps []ScriptStep `yaml:"steps"`
}

//go:embed data/combo.yaml
var defaultScript []byte

// DefaultScript returns the built-in combo demo.
func DefaultScript() Script {
	s, err := ParseScript(defaultScript)
	if err != nil {
		panic(err)
	}
	return s
}

func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("script: unmarshal: %w", err)
	}
	for i := range s.Steps {
		step := &s.Steps[i]
		id, ok := cfg.ActionByName(step.Action)
		if !ok {
			return Script{}, fmt.Errorf("script: step %d: unknown action %q", i, step.Action)
		}
		step.action = id
		if step.Hold <= 0 {
			step.Hold = 1
		}
		if step.Repeat <= 0 {
			step.Repeat = 1
		}
		if step.Repeat > 1 && step.Every <= step.Hold {
			return Script{}, fmt.Errorf("script: step %d: every must exceed hold to release between presses", i)
		}
		if end := step.lastTick() + 1; end > s.Ticks {
			s.Ticks = end
		}
	}
	return s, nil
}

func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: load %s: %w", path, err)
	}
	return ParseScript(data)
}

// Input returns the actions held at tick.
func (s Script) Input(tick int) [cfg.ActionCount]bool {
	var in [cfg.ActionCount]bool
	for _, step := range s.Steps {
		if step.held(tick) {
			in[step.action] = true
		}
	}
	return in
}

func (st ScriptStep) held(tick int) bool {
	if tick < st.Tick || tick > st.lastTick() {
		return false
	}
	offset := tick - st.Tick
	if st.Repeat > 1 {
		offset %= st.Every
	}
	return offset < st.Hold
}

func (st ScriptStep) lastTick() int {
	n := st.Repeat
	if n < 1 {
		n = 1
	}
	hold := st.Hold
	if hold < 1 {
		hold = 1
	}
	return st.Tick + (n-1)*st.Every + hold - 1
}
