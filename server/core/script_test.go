package core

import (
	"testing"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptDefaults(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - {tick: 2, action: attack}
  - {tick: 10, action: stun, hold: 3}
`))
	require.NoError(t, err)
	assert.Equal(t, 13, s.Ticks, "ticks grow to cover the last press")

	assert.False(t, s.Input(1)[cfg.ActionAttack])
	assert.True(t, s.Input(2)[cfg.ActionAttack])
	assert.False(t, s.Input(3)[cfg.ActionAttack])
	for tick := 10; tick < 13; tick++ {
		assert.True(t, s.Input(tick)[cfg.ActionStun], "tick %d", tick)
	}
	assert.False(t, s.Input(13)[cfg.ActionStun])
}

func TestParseScriptRepeat(t *testing.T) {
	s, err := ParseScript([]byte(`
ticks: 5
steps:
  - {tick: 0, action: attack, every: 4, repeat: 3}
`))
	require.NoError(t, err)
	assert.Equal(t, 9, s.Ticks)

	var pressed []int
	for tick := 0; tick < s.Ticks; tick++ {
		if s.Input(tick)[cfg.ActionAttack] {
			pressed = append(pressed, tick)
		}
	}
	assert.Equal(t, []int{0, 4, 8}, pressed)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown action", `steps: [{tick: 0, action: kick}]`},
		{"repeat without release", `steps: [{tick: 0, action: attack, every: 1, repeat: 2}]`},
		{"bad yaml", `steps: {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultScript(t *testing.T) {
	s := DefaultScript()
	assert.Equal(t, 420, s.Ticks)
	assert.NotEmpty(t, s.Steps)
}
