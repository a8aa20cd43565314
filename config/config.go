package config

import "image/color"

// FighterConfig contains fighter-related configuration values
type FighterConfig struct {
	Health int

	// Hit-stun applied when a fighter takes damage (frames)
	StunFrames int

	// Dimensions
	CollisionWidth  int
	CollisionHeight int
}

// DummyConfig contains the practice target's configuration values
type DummyConfig struct {
	Health       int
	HitFrames    int // frames spent in the Hit state per hit
	RespawnAtMax bool

	CollisionWidth  int
	CollisionHeight int
}

// CombatConfig contains combat-related configuration values
type CombatConfig struct {
	// Damage applied by the lab's stun key
	DebugStunDamage int

	// Flash effects (frames)
	HitFlashFrames int
}

// UIConfig contains debug overlay colors and sizes
type UIConfig struct {
	FighterColor color.RGBA
	DummyColor   color.RGBA
	HitboxColor  color.RGBA
	TextColor    color.RGBA

	// Phase bar colors indexed by timeline phase
	PhaseColors [5]color.RGBA
	PhaseBarY   float32
	PhaseBarH   float32
}

// Config holds general game configuration
type Config struct {
	Width    int
	Height   int
	TickRate int // simulation ticks per second
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	LogCombat    bool // log stale timers, ignored events and listener faults
	ShowHitboxes bool
}

// Global configuration instances
var C *Config
var Fighter FighterConfig
var Dummy DummyConfig
var Combat CombatConfig
var UI UIConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightRed  = color.RGBA{R: 255, G: 60, B: 60, A: 180}
	Green     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue      = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	LightBlue = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Gray      = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// Direction constants for fighter facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

// TickSeconds is the fixed simulation step in seconds.
func TickSeconds() float32 {
	if C == nil || C.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1 / float32(C.TickRate)
}

func init() {
	C = &Config{
		Width:    640,
		Height:   360,
		TickRate: 60,
	}

	Fighter = FighterConfig{
		Health:          100,
		StunFrames:      24,
		CollisionWidth:  16,
		CollisionHeight: 40,
	}

	Dummy = DummyConfig{
		Health:          200,
		HitFrames:       12,
		RespawnAtMax:    true,
		CollisionWidth:  20,
		CollisionHeight: 44,
	}

	Combat = CombatConfig{
		DebugStunDamage: 10,
		HitFlashFrames:  6,
	}

	UI = UIConfig{
		FighterColor: LightBlue,
		DummyColor:   Gray,
		HitboxColor:  LightRed,
		TextColor:    White,
		PhaseColors: [5]color.RGBA{
			Gray,   // none
			Yellow, // startup
			Red,    // active
			Blue,   // recovery
			Green,  // end
		},
		PhaseBarY: 20,
		PhaseBarH: 6,
	}
}
