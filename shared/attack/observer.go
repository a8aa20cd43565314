package attack

import (
	"log"

	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/automoto/doomerang-combat/shared/timeline"
)

// EndReason says why an attack sequence finished.
type EndReason uint8

const (
	EndNatural       EndReason = iota // animation reported End
	EndWindowElapsed                  // cancellation window ran out
	EndExited                         // animation was pre-empted mid-attack
)

func (r EndReason) String() string {
	switch r {
	case EndWindowElapsed:
		return "window elapsed"
	case EndExited:
		return "exited"
	default:
		return "natural"
	}
}

type AttackPhaseEvent struct {
	AttackID   uint64
	ComboIndex int
	Phase      timeline.Phase
	Flags      animcmd.Flags
	SubID      int
}

type AttackEndEvent struct {
	AttackID   uint64
	ComboIndex int
	Reason     EndReason
}

type StateChange struct {
	From     State
	To       State
	AttackID uint64
}

// Observer is a downstream gameplay listener: hit detection, input gating,
// audio and so on.
type Observer interface {
	OnAttackPhase(e AttackPhaseEvent)
	OnAttackEnd(e AttackEndEvent)
	OnAttackStateChanged(c StateChange)
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	Phase   func(AttackPhaseEvent)
	End     func(AttackEndEvent)
	Changed func(StateChange)
}

func (f ObserverFuncs) OnAttackPhase(e AttackPhaseEvent) {
	if f.Phase != nil {
		f.Phase(e)
	}
}

func (f ObserverFuncs) OnAttackEnd(e AttackEndEvent) {
	if f.End != nil {
		f.End(e)
	}
}

func (f ObserverFuncs) OnAttackStateChanged(c StateChange) {
	if f.Changed != nil {
		f.Changed(c)
	}
}

// ObserverID identifies one registration in an ObserverRegistry.
type ObserverID uint64

type observerReg struct {
	id       ObserverID
	observer Observer
}

// ObserverRegistry holds observers in registration order. Like the command
// registry it is copy-on-write, so dispatch always walks a stable snapshot.
type ObserverRegistry struct {
	regs   []observerReg
	nextID ObserverID
	logger *log.Logger
}

func (r *ObserverRegistry) Add(o Observer) ObserverID {
	if o == nil {
		return 0
	}
	r.nextID++
	next := make([]observerReg, len(r.regs), len(r.regs)+1)
	copy(next, r.regs)
	r.regs = append(next, observerReg{id: r.nextID, observer: o})
	return r.nextID
}

func (r *ObserverRegistry) Remove(id ObserverID) {
	for i, reg := range r.regs {
		if reg.id != id {
			continue
		}
		next := make([]observerReg, 0, len(r.regs)-1)
		next = append(next, r.regs[:i]...)
		r.regs = append(next, r.regs[i+1:]...)
		return
	}
}

func (r *ObserverRegistry) Len() int {
	return len(r.regs)
}

func (r *ObserverRegistry) each(fn func(Observer)) {
	for _, reg := range r.regs {
		r.deliver(reg.observer, fn)
	}
}

func (r *ObserverRegistry) deliver(o Observer, fn func(Observer)) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Printf("Warning: attack observer panicked: %v", rec)
			} else {
				log.Printf("Warning: attack observer panicked: %v", rec)
			}
		}
	}()
	fn(o)
}
