package components

import (
	"github.com/automoto/doomerang-combat/shared/timer"
	"github.com/yohamta/donburi"
)

type SchedulerData struct {
	*timer.Scheduler
}

// Scheduler is the world's timer singleton.
var Scheduler = donburi.NewComponentType[SchedulerData]()
