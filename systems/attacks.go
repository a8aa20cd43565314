package systems

import (
	"log"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/yohamta/donburi"
)

// ApplyAttackTable makes table the active attack table and pushes it to
// every fighter. Running attacks keep the timing snapshot they started with;
// the new commands and combo limits apply from the next attack.
func ApplyAttackTable(w donburi.World, table cfg.AttackTable) {
	cfg.Attacks = table
	components.AttackCommand.Each(w, func(e *donburi.Entry) {
		components.AttackCommand.Get(e).Commands = factory.AttackCommands(table)
		if e.HasComponent(components.MeleeAttack) {
			components.MeleeAttack.Get(e).Sequencer.SetLimits(table.ComboLimits)
		}
	})
}

// PollAttackReload applies any table the watcher has reloaded since the
// last call. It never blocks.
func PollAttackReload(w donburi.World, watcher *cfg.Watcher) {
	if watcher == nil {
		return
	}
	for {
		select {
		case table, ok := <-watcher.Tables:
			if !ok {
				return
			}
			log.Printf("[config] attack table reloaded (%d attacks)", len(table.Attacks))
			ApplyAttackTable(w, table)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: attack table reload failed: %v", err)
		default:
			return
		}
	}
}
