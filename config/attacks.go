package config

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"gopkg.in/yaml.v3"
)

// Command flag bits carried on attack events.
const (
	FlagHitbox animcmd.Flags = 1 << iota // spawns a melee hitbox during Active
	FlagHeavy
)

// HitboxConfig sizes the melee hitbox spawned in front of the attacker.
type HitboxConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Damage  int     `yaml:"damage"`
}

// AttackTimingConfig is the designer-authored timing of one attack animation.
type AttackTimingConfig struct {
	Thresholds       timeline.Thresholds `yaml:"thresholds"`
	AdditionalWindow float64             `yaml:"additional_window"`
	Flags            uint32              `yaml:"flags"`
	SubID            int                 `yaml:"sub_id"`
	Layer            int                 `yaml:"layer"`
	Hitbox           HitboxConfig        `yaml:"hitbox"`
}

// AttackTable is the whole combo definition: per-stage limits, the state to
// play at each combo index and the timing of every attack state.
type AttackTable struct {
	ComboLimits []int                         `yaml:"combo_limits"`
	Combo       []string                      `yaml:"combo"`
	Attacks     map[string]AttackTimingConfig `yaml:"attacks"`
}

//go:embed data/attacks.yaml
var defaultAttackTable []byte

// Attacks is the active attack table.
var Attacks AttackTable

func init() {
	t, err := ParseAttackTable(defaultAttackTable)
	if err != nil {
		log.Fatalf("config: embedded attack table: %v", err)
	}
	Attacks = t
}

// DefaultAttackTable returns a fresh copy of the embedded table.
func DefaultAttackTable() AttackTable {
	t, _ := ParseAttackTable(defaultAttackTable)
	return t
}

func ParseAttackTable(data []byte) (AttackTable, error) {
	var t AttackTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return AttackTable{}, fmt.Errorf("config: unmarshal attack table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return AttackTable{}, err
	}
	return t, nil
}

func LoadAttackTable(path string) (AttackTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AttackTable{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	t, err := ParseAttackTable(data)
	if err != nil {
		return AttackTable{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// Marshal encodes the table back to YAML.
func (t AttackTable) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("config: marshal attack table: %w", err)
	}
	return data, nil
}

// Validate checks structural problems only. Timing values are never
// rejected; thresholds and windows are normalized when used.
func (t AttackTable) Validate() error {
	if len(t.Combo) == 0 {
		return fmt.Errorf("config: attack table has an empty combo")
	}
	for i, name := range t.Combo {
		if _, ok := StateByName(name); !ok {
			return fmt.Errorf("config: combo[%d]: unknown state %q", i, name)
		}
		if _, ok := t.Attacks[name]; !ok {
			return fmt.Errorf("config: combo[%d]: no timing for %q", i, name)
		}
	}
	for name := range t.Attacks {
		if _, ok := StateByName(name); !ok {
			return fmt.Errorf("config: attack %q: unknown state", name)
		}
	}
	return nil
}

// ComboState returns the state played at combo index, clamped to the last
// entry.
func (t AttackTable) ComboState(index int) StateID {
	if len(t.Combo) == 0 {
		return StateNone
	}
	if index < 0 {
		index = 0
	}
	if index >= len(t.Combo) {
		index = len(t.Combo) - 1
	}
	id, _ := StateByName(t.Combo[index])
	return id
}

// Command converts the timing for state into a sender command.
func (t AttackTable) Command(state StateID) (animcmd.Command, bool) {
	a, ok := t.Attacks[state.String()]
	if !ok {
		return animcmd.Command{}, false
	}
	return animcmd.Command{
		Name:             state.String(),
		Thresholds:       a.Thresholds,
		AdditionalWindow: a.AdditionalWindow,
		Flags:            animcmd.Flags(a.Flags),
		SubID:            a.SubID,
		Layer:            a.Layer,
	}.Normalized(), true
}

// Hitbox returns the hitbox sizing for state.
func (t AttackTable) Hitbox(state StateID) (HitboxConfig, bool) {
	a, ok := t.Attacks[state.String()]
	return a.Hitbox, ok
}

// AttackStates lists every state with a timing entry, sorted by id.
func (t AttackTable) AttackStates() []StateID {
	states := make([]StateID, 0, len(t.Attacks))
	for name := range t.Attacks {
		if id, ok := StateByName(name); ok {
			states = append(states, id)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
