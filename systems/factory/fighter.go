package factory

import (
	"log"
	"os"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/automoto/doomerang-combat/shared/attack"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CombatLogger returns the diagnostics logger, or nil when combat logging is
// off.
func CombatLogger() *log.Logger {
	if !cfg.Debug.LogCombat {
		return nil
	}
	return log.New(os.Stderr, "[combat] ", log.LstdFlags)
}

// AttackCommands builds the per-state command map from an attack table.
func AttackCommands(table cfg.AttackTable) map[cfg.StateID]animcmd.Command {
	cmds := make(map[cfg.StateID]animcmd.Command, len(table.Attacks))
	for _, state := range table.AttackStates() {
		if cmd, ok := table.Command(state); ok {
			cmds[state] = cmd
		}
	}
	return cmds
}

// CreateFighter spawns a fighter whose attack sequencer listens to its own
// animation command sender. The world must already hold a scheduler.
func CreateFighter(w donburi.World, x, y, direction float64) *donburi.Entry {
	fighter := archetypes.Fighter.Spawn(w)

	obj := resolv.NewObject(x, y, float64(cfg.Fighter.CollisionWidth), float64(cfg.Fighter.CollisionHeight))
	obj.SetShape(resolv.NewRectangle(0, 0, float64(cfg.Fighter.CollisionWidth), float64(cfg.Fighter.CollisionHeight)))
	obj.AddTags("character", tags.ResolvFighter, tags.ResolvTarget)
	obj.Data = fighter
	components.Object.SetValue(fighter, components.ObjectData{Object: obj})
	if space := SpaceOf(w); space != nil {
		space.Add(obj)
	}

	components.Fighter.SetValue(fighter, components.FighterData{Direction: direction})
	components.State.SetValue(fighter, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
	})
	components.Health.SetValue(fighter, components.HealthData{
		Current: cfg.Fighter.Health,
		Max:     cfg.Fighter.Health,
	})
	components.Animation.Set(fighter, GenerateAnimations("fighter"))

	sched := SchedulerOf(w)
	logger := CombatLogger()

	sender := animcmd.NewSender(sched, animcmd.Command{})
	sender.Registry().Logger = logger

	opts := []attack.Option{
		attack.WithProgress(func() float64 {
			anim := components.Animation.Get(fighter)
			if anim.CurrentAnimation == nil {
				return 0
			}
			return anim.CurrentAnimation.NormalizedTime()
		}),
	}
	if logger != nil {
		opts = append(opts, attack.WithLogger(logger))
	}
	seq := attack.New(sched, cfg.Attacks.ComboLimits, opts...)
	sender.AddListener(seq)

	components.AttackCommand.SetValue(fighter, components.AttackCommandData{
		Sender:   sender,
		Commands: AttackCommands(cfg.Attacks),
	})
	components.MeleeAttack.SetValue(fighter, components.MeleeAttackData{Sequencer: seq})

	return fighter
}

// CreateDummy spawns a practice target.
func CreateDummy(w donburi.World, x, y float64) *donburi.Entry {
	dummy := archetypes.Dummy.Spawn(w)

	obj := resolv.NewObject(x, y, float64(cfg.Dummy.CollisionWidth), float64(cfg.Dummy.CollisionHeight))
	obj.SetShape(resolv.NewRectangle(0, 0, float64(cfg.Dummy.CollisionWidth), float64(cfg.Dummy.CollisionHeight)))
	obj.AddTags(tags.ResolvDummy, tags.ResolvTarget)
	obj.Data = dummy
	components.Object.SetValue(dummy, components.ObjectData{Object: obj})
	if space := SpaceOf(w); space != nil {
		space.Add(obj)
	}

	components.State.SetValue(dummy, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
	})
	components.Health.SetValue(dummy, components.HealthData{
		Current: cfg.Dummy.Health,
		Max:     cfg.Dummy.Health,
	})
	components.Animation.Set(dummy, GenerateAnimations("dummy"))

	return dummy
}
