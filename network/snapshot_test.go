package network

import (
	"testing"

	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func countNetworked(w donburi.World) int {
	n := 0
	esync.NetworkEntityQuery.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func TestMirrorCreatesUpdatesAndRemoves(t *testing.T) {
	m := NewMirror(donburi.NewWorld())
	w := m.World()

	m.ApplyDecoded(map[esync.NetworkId][]any{
		1: {
			netcomponents.NetPositionData{X: 10, Y: 20},
			netcomponents.NetFighterStateData{StateID: netconfig.Punch01, Health: 100, Direction: 1},
			netcomponents.NetAttackStateData{State: attack.StateAttacking, AttackID: 1, Count: 1},
		},
		2: {
			netcomponents.NetPositionData{X: 50, Y: 20},
			netcomponents.NetFighterStateData{StateID: netconfig.Idle, Health: 200, IsDummy: true},
		},
	})
	require.Equal(t, 2, countNetworked(w))

	fighter := w.Entry(esync.FindByNetworkId(w, 1))
	assert.Equal(t, 10.0, netcomponents.NetPosition.Get(fighter).X)
	assert.Equal(t, attack.StateAttacking, netcomponents.NetAttackState.Get(fighter).State)

	dummy := w.Entry(esync.FindByNetworkId(w, 2))
	assert.False(t, dummy.HasComponent(netcomponents.NetAttackState))

	// The dummy left; the fighter moved on to the attack window.
	m.ApplyDecoded(map[esync.NetworkId][]any{
		1: {
			netcomponents.NetPositionData{X: 12, Y: 20},
			netcomponents.NetAttackStateData{State: attack.StateAttackWindow, AttackID: 1, Count: 1},
		},
	})
	require.Equal(t, 1, countNetworked(w))

	fighter = w.Entry(esync.FindByNetworkId(w, 1))
	assert.Equal(t, 12.0, netcomponents.NetPosition.Get(fighter).X)
	assert.Equal(t, attack.StateAttackWindow, netcomponents.NetAttackState.Get(fighter).State)
	assert.Equal(t, netconfig.Punch01, netcomponents.NetFighterState.Get(fighter).StateID, "missing components keep their last value")
}

func TestClientKeepsLatestSnapshot(t *testing.T) {
	c := NewClient()
	assert.Nil(t, c.LatestSnapshot())

	c.pushSnapshot(make(esync.WorldSnapshot, 1))
	c.pushSnapshot(make(esync.WorldSnapshot, 2))

	snap := c.LatestSnapshot()
	require.NotNil(t, snap)
	assert.Len(t, *snap, 2, "stale snapshot dropped")
	assert.Nil(t, c.LatestSnapshot())
	assert.Equal(t, 2, c.Snapshots())
	assert.Equal(t, StateDisconnected, c.State())
}
