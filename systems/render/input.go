// Package render holds the ebiten side of the combat lab: keyboard polling
// and the debug overlay. The simulation itself never imports ebiten.
package render

import (
	"log"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// InputBinding maps a logical action to physical keys and buttons.
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings is the lab's control scheme.
var Bindings = map[cfg.ActionID]InputBinding{
	cfg.ActionAttack: {
		Keys:                   []ebiten.Key{ebiten.KeyJ, ebiten.KeyX},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	cfg.ActionStun: {
		Keys: []ebiten.Key{ebiten.KeyK},
	},
	cfg.ActionSave: {
		Keys: []ebiten.Key{ebiten.KeyF5},
	},
	cfg.ActionReload: {
		Keys: []ebiten.Key{ebiten.KeyF9},
	},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateKeyboardInput polls the bindings into every fighter's input and runs
// the lab-only actions. Must run BEFORE the simulation systems.
func UpdateKeyboardInput(w donburi.World) {
	var current [cfg.ActionCount]bool
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for action, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				current[action] = true
			}
		}
		for _, id := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(id) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(id, btn) {
					current[action] = true
				}
			}
		}
	}

	tags.Fighter.Each(w, func(e *donburi.Entry) {
		input := components.Input.Get(e)
		input.Advance(current)

		if input.JustPressed(cfg.ActionStun) {
			systems.Stun(e, cfg.Combat.DebugStunDamage)
		}
	})

	if justPressed(w, cfg.ActionSave) {
		saveLab()
	}
	if justPressed(w, cfg.ActionReload) {
		reloadLab(w)
	}
}

func justPressed(w donburi.World, action cfg.ActionID) bool {
	e, ok := tags.Fighter.First(w)
	return ok && components.Input.Get(e).JustPressed(action)
}

func saveLab() {
	if err := systems.SaveAttackOverrides(cfg.Attacks); err != nil {
		log.Printf("Warning: Could not save attack overrides: %v", err)
		return
	}
	if err := systems.SaveSettings(); err != nil {
		return
	}
	log.Printf("[lab] saved attack table and settings")
}

// reloadLab restores saved overrides, or the embedded table when none exist.
func reloadLab(w donburi.World) {
	table, ok := systems.LoadAttackOverrides()
	if !ok {
		table = cfg.DefaultAttackTable()
	}
	systems.ApplyAttackTable(w, table)
	log.Printf("[lab] attack table reloaded (saved=%t)", ok)
}
