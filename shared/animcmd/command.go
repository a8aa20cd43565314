// Package animcmd turns per-frame animation progress into phase events for
// registered listeners. A Sender drives one animated entity; the host feeds
// it the current state identity and normalized time once per tick.
package animcmd

import (
	"fmt"
	"math"

	"github.com/automoto/doomerang-combat/shared/timeline"
)

// Flags is an opaque bit set carried on every event. The sender never
// interprets it; listeners may filter on it.
type Flags uint32

// Command is the designer-authored timing configuration for one animation.
type Command struct {
	Name             string
	Thresholds       timeline.Thresholds
	AdditionalWindow float64 // seconds appended after normalized time 1.0
	Flags            Flags
	SubID            int
	Layer            int
}

// Normalized returns a copy with thresholds ordered and the window clamped
// to non-negative.
func (c Command) Normalized() Command {
	c.Thresholds = c.Thresholds.Normalize()
	if c.AdditionalWindow < 0 || math.IsNaN(c.AdditionalWindow) {
		c.AdditionalWindow = 0
	}
	return c
}

// Identity distinguishes animation instances. State is the host's state or
// sheet id; Instance changes every time the host restarts that state.
type Identity struct {
	State    int
	Instance uint64
}

func (id Identity) String() string {
	return fmt.Sprintf("%d#%d", id.State, id.Instance)
}

// EnterEvent is delivered once when an instance starts. It carries the full
// snapshot so listeners can derive their own timers without re-reading
// configuration.
type EnterEvent struct {
	Identity         Identity
	Command          Command
	Thresholds       timeline.Thresholds
	AdditionalWindow float64
	Layer            int
	Flags            Flags
	SubID            int
}

type PhaseEvent struct {
	Identity       Identity
	Phase          timeline.Phase
	NormalizedTime float64
	Flags          Flags
	SubID          int
}

type WindowEvent struct {
	Identity Identity
	Duration float64
	Flags    Flags
	SubID    int
}

// ExitEvent reports a pre-empted instance. It never implies a normal end.
type ExitEvent struct {
	Identity Identity
	Fired    timeline.PhaseMask
	Flags    Flags
	SubID    int
}
