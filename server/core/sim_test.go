package core

import (
	"testing"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newTestSim(t *testing.T, script string) *Sim {
	t.Helper()
	cfg.Attacks = cfg.DefaultAttackTable()
	t.Cleanup(func() { cfg.Attacks = cfg.DefaultAttackTable() })

	s, err := ParseScript([]byte(script))
	require.NoError(t, err)
	return NewSim(donburi.NewWorld(), s)
}

func TestSimMashingChainsCombo(t *testing.T) {
	sim := newTestSim(t, `
ticks: 200
steps:
  - {tick: 0, action: attack, every: 4, repeat: 20}
`)
	stats := sim.Run()

	assert.True(t, sim.Done())
	assert.GreaterOrEqual(t, stats.Attacks, 3)
	assert.GreaterOrEqual(t, stats.Ends[attack.EndWindowElapsed], 1)
	assert.GreaterOrEqual(t, stats.Hits, 3)
	assert.GreaterOrEqual(t, stats.Damage, 8+10+16)
	assert.GreaterOrEqual(t, stats.Chained, 2)
	assert.Zero(t, stats.Interrupted())

	seq := components.MeleeAttack.Get(sim.Fighter()).Sequencer
	assert.Equal(t, attack.StateNone, seq.State())
}

func TestSimStunInterruptsAttack(t *testing.T) {
	sim := newTestSim(t, `
ticks: 60
steps:
  - {tick: 0, action: attack}
  - {tick: 10, action: stun}
`)
	stats := sim.Run()

	assert.Equal(t, 1, stats.Attacks)
	assert.Equal(t, 1, stats.Interrupted())
	assert.Equal(t, cfg.Fighter.Health-cfg.Combat.DebugStunDamage, components.Health.Get(sim.Fighter()).Current)
	assert.Equal(t, cfg.Idle, components.State.Get(sim.Fighter()).CurrentState, "stun wore off")
}

func TestServerRunFast(t *testing.T) {
	cfg.Attacks = cfg.DefaultAttackTable()
	t.Cleanup(func() { cfg.Attacks = cfg.DefaultAttackTable() })

	server, err := NewServer(Options{TickRate: 60, Script: DefaultScript()})
	require.NoError(t, err)

	stats := server.RunFast()
	assert.Equal(t, 420, server.Sim().Tick())
	assert.Positive(t, stats.Attacks)
	assert.Positive(t, stats.Hits)

	select {
	case <-server.Finished():
	default:
		t.Fatal("finished not closed")
	}
}

func TestServerRepeatRewinds(t *testing.T) {
	cfg.Attacks = cfg.DefaultAttackTable()
	t.Cleanup(func() { cfg.Attacks = cfg.DefaultAttackTable() })

	s, err := ParseScript([]byte(`steps: [{tick: 0, action: attack}]`))
	require.NoError(t, err)
	server, err := NewServer(Options{Script: s, Repeat: true})
	require.NoError(t, err)

	server.Tick()
	assert.True(t, server.Sim().Done())
	server.Tick()
	assert.Equal(t, 1, server.Sim().Tick())

	select {
	case <-server.Finished():
		t.Fatal("repeating server finished")
	default:
	}
}

func TestServerBadAttackTable(t *testing.T) {
	_, err := NewServer(Options{Script: DefaultScript(), AttacksPath: "does-not-exist.yaml"})
	assert.Error(t, err)
}
