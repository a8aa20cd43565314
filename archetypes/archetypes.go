package archetypes

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
)

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Fighter,
		components.Object,
		components.Health,
		components.Animation,
		components.State,
		components.Input,
		components.MeleeAttack,
		components.AttackCommand,
		components.Flash,
		netcomponents.NetPosition,
		netcomponents.NetFighterState,
		netcomponents.NetAttackState,
	)
	Dummy = newArchetype(
		tags.Dummy,
		components.Object,
		components.Health,
		components.Animation,
		components.State,
		components.Flash,
		netcomponents.NetPosition,
		netcomponents.NetFighterState,
	)
	Hitbox = newArchetype(
		tags.Hitbox,
		components.Hitbox,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Scheduler = newArchetype(
		components.Scheduler,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates the entity directly on the world; client and server share
// archetypes.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
