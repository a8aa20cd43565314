package factory

import (
	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/shared/timer"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func CreateSpace(w donburi.World, width, height, cellWidth, cellHeight int) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	components.Space.SetValue(space, components.SpaceData{
		Space: resolv.NewSpace(width, height, cellWidth, cellHeight),
	})
	return space
}

// CreateScheduler spawns the world's timer singleton.
func CreateScheduler(w donburi.World) *timer.Scheduler {
	e := archetypes.Scheduler.Spawn(w)
	sched := timer.NewScheduler()
	components.Scheduler.SetValue(e, components.SchedulerData{Scheduler: sched})
	return sched
}

// SchedulerOf returns the world's scheduler, or nil before CreateScheduler.
func SchedulerOf(w donburi.World) *timer.Scheduler {
	if e, ok := components.Scheduler.First(w); ok {
		return components.Scheduler.Get(e).Scheduler
	}
	return nil
}

// SpaceOf returns the world's collision space, or nil before CreateSpace.
func SpaceOf(w donburi.World) *resolv.Space {
	if e, ok := components.Space.First(w); ok {
		return components.Space.Get(e).Space
	}
	return nil
}
