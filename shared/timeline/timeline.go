// Package timeline classifies normalized animation progress into combat
// timing phases. It must have zero dependencies on ebiten so the headless
// server can share it.
package timeline

import "math"

// Phase is a named sub-interval of an attack animation's playback.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseStartup
	PhaseActive
	PhaseRecovery
	PhaseEnd
)

// Phases lists every real phase in firing order.
var Phases = [...]Phase{PhaseStartup, PhaseActive, PhaseRecovery, PhaseEnd}

func (p Phase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseActive:
		return "active"
	case PhaseRecovery:
		return "recovery"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// PhaseMask records which phases already fired for one animation instance.
type PhaseMask uint8

const (
	MaskStartup PhaseMask = 1 << iota
	MaskActive
	MaskRecovery
	MaskEnd

	MaskAll = MaskStartup | MaskActive | MaskRecovery | MaskEnd
)

// Bit returns the mask bit for p, or 0 for PhaseNone.
func (p Phase) Bit() PhaseMask {
	if p == PhaseNone || p > PhaseEnd {
		return 0
	}
	return 1 << (p - 1)
}

func (m PhaseMask) Has(p Phase) bool {
	b := p.Bit()
	return b != 0 && m&b == b
}

func (m PhaseMask) With(p Phase) PhaseMask {
	return m | p.Bit()
}

// Count returns the number of phases set in m.
func (m PhaseMask) Count() int {
	n := 0
	for _, p := range Phases {
		if m.Has(p) {
			n++
		}
	}
	return n
}

// Thresholds are the normalized end points of the startup, active and
// recovery phases. Editor-authored values may be out of order; use
// Normalize before classifying.
type Thresholds struct {
	StartupEnd  float64 `yaml:"startup" json:"startup"`
	ActiveEnd   float64 `yaml:"active" json:"active"`
	RecoveryEnd float64 `yaml:"recovery" json:"recovery"`
}

// Normalize clamps every threshold into [0,1] and makes them
// monotonically non-decreasing, collapsing phases instead of producing
// negative-length intervals.
func (th Thresholds) Normalize() Thresholds {
	th.StartupEnd = clamp01(th.StartupEnd)
	th.ActiveEnd = math.Max(clamp01(th.ActiveEnd), th.StartupEnd)
	th.RecoveryEnd = math.Max(clamp01(th.RecoveryEnd), th.ActiveEnd)
	return th
}

// Classify returns the phases newly entered at normalized time t, in firing
// order, together with the updated mask. Phases skipped by a large jump in t
// are caught up within the same call. Classify is pure; it never fails.
func Classify(mask PhaseMask, t float64, th Thresholds) ([]Phase, PhaseMask) {
	if mask&MaskAll == MaskAll {
		return nil, mask
	}
	th = th.Normalize()
	if math.IsNaN(t) {
		t = 0
	}

	// reached[i] reports whether the start of Phases[i] has been reached.
	// Startup is the instance-begins edge and is always reached.
	reached := [len(Phases)]bool{
		true,
		t >= th.StartupEnd,
		t >= th.ActiveEnd,
		t >= 1.0,
	}

	// A later reached phase implies every earlier one was passed.
	last := -1
	for i := range reached {
		if reached[i] {
			last = i
		}
	}

	var entered []Phase
	for i := 0; i <= last; i++ {
		p := Phases[i]
		if mask.Has(p) {
			continue
		}
		entered = append(entered, p)
		mask = mask.With(p)
	}
	return entered, mask
}

// Begin emits the instance-begins edge: Startup, unless it already fired.
func Begin(mask PhaseMask) ([]Phase, PhaseMask) {
	if mask.Has(PhaseStartup) {
		return nil, mask
	}
	return []Phase{PhaseStartup}, mask.With(PhaseStartup)
}

// Locate returns the phase that contains t. It is level-triggered and is
// meant for overlays and diagnostics, not for firing events.
func Locate(t float64, th Thresholds) Phase {
	th = th.Normalize()
	switch {
	case t >= 1.0:
		return PhaseEnd
	case t >= th.ActiveEnd:
		// the tail between RecoveryEnd and 1.0 still reads as recovery
		return PhaseRecovery
	case t >= th.StartupEnd:
		return PhaseActive
	case t >= 0:
		return PhaseStartup
	default:
		return PhaseNone
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
