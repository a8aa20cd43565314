package network

import (
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Mirror keeps a local world in step with the simulator's snapshots. It only
// holds replicated components; nothing is simulated locally.
type Mirror struct {
	world      donburi.World
	presentIDs map[esync.NetworkId]bool
}

func NewMirror(w donburi.World) *Mirror {
	return &Mirror{
		world:      w,
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

func (m *Mirror) World() donburi.World { return m.world }

// Apply decodes snapshot and applies it. Entities missing from the snapshot
// are removed.
func (m *Mirror) Apply(snapshot esync.WorldSnapshot) {
	decoded := make(map[esync.NetworkId][]any, len(snapshot))
	for _, ent := range snapshot {
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}
		decoded[ent.Id] = compData
	}
	m.ApplyDecoded(decoded)
}

// ApplyDecoded applies already deserialized component values per entity.
func (m *Mirror) ApplyDecoded(entities map[esync.NetworkId][]any) {
	clear(m.presentIDs)

	for id, compData := range entities {
		m.presentIDs[id] = true

		entity := esync.FindByNetworkId(m.world, id)
		if !m.world.Valid(entity) {
			entity = m.world.Create(componentTypesFromInstances(compData)...)
			entry := m.world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, id)
		}

		entry := m.world.Entry(entity)
		for _, data := range compData {
			applyComponentToEntry(entry, data)
		}
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(m.world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil || !m.presentIDs[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

func componentTypesFromInstances(components []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range components {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetFighterStateData:
			ctypes = append(ctypes, netcomponents.NetFighterState)
		case netcomponents.NetAttackStateData:
			ctypes = append(ctypes, netcomponents.NetAttackState)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		if !entry.HasComponent(netcomponents.NetPosition) {
			entry.AddComponent(netcomponents.NetPosition)
		}
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetFighterStateData:
		if !entry.HasComponent(netcomponents.NetFighterState) {
			entry.AddComponent(netcomponents.NetFighterState)
		}
		netcomponents.NetFighterState.SetValue(entry, v)
	case netcomponents.NetAttackStateData:
		if !entry.HasComponent(netcomponents.NetAttackState) {
			entry.AddComponent(netcomponents.NetAttackState)
		}
		netcomponents.NetAttackState.SetValue(entry, v)
	}
}
