package protocol

import (
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition     uint = 10
	SyncIDNetFighterState uint = 12
	SyncIDNetAttackState  uint = 20
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	// FighterState and AttackState: no interpolation (discrete state changes)
	if err := esync.RegisterComponent(
		SyncIDNetFighterState,
		netcomponents.NetFighterStateData{},
		netcomponents.NetFighterState,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetAttackState,
		netcomponents.NetAttackStateData{},
		netcomponents.NetAttackState,
	); err != nil {
		return err
	}

	return nil
}
