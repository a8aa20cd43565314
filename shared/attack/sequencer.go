// Package attack implements the combo-aware attack state machine that sits
// on top of animation command events.
package attack

import (
	"log"

	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/shared/timer"
)

// State is the sequencer's position in the None → Waiting → Attacking →
// AttackWindow → None cycle.
type State uint8

const (
	StateNone State = iota
	StateWaiting
	StateAttacking
	StateAttackWindow
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateAttacking:
		return "attacking"
	case StateAttackWindow:
		return "attack window"
	default:
		return "none"
	}
}

// ComboLimits caps how many attacks a chain may hold at each combo stage.
type ComboLimits []int

// Limit returns the cap for index, clamping index into the table. An empty
// table allows a single attack.
func (c ComboLimits) Limit(index int) int {
	if len(c) == 0 {
		return 1
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c) {
		index = len(c) - 1
	}
	if c[index] < 0 {
		return 0
	}
	return c[index]
}

type Option func(*Sequencer)

// WithProgress supplies the host's normalized time. When set, each entered
// command also runs a per-tick handler task that classifies this value
// against the command's thresholds, so the sequencer keeps working when it
// is driven from host state info instead of a Sender's Tick loop.
func WithProgress(fn func() float64) Option {
	return func(s *Sequencer) {
		s.progress = fn
	}
}

// WithLogger enables diagnostics for discarded stale events.
func WithLogger(l *log.Logger) Option {
	return func(s *Sequencer) {
		s.logger = l
		s.observers.logger = l
	}
}

// Sequencer owns one fighter's attack chain. The window timer and the
// command-handler task are exclusively owned and always canceled before
// being replaced.
type Sequencer struct {
	sched    *timer.Scheduler
	limits   ComboLimits
	progress func() float64
	logger   *log.Logger

	state      State
	count      int
	attackID   uint64
	comboIndex int

	window       timer.Handle
	windowOpened bool
	handler      timer.Handle

	// Instance currently bound to the live attack.
	bound      bool
	instance   animcmd.Identity
	mask       timeline.PhaseMask
	thresholds timeline.Thresholds
	extra      float64
	flags      animcmd.Flags
	subID      int

	observers ObserverRegistry
}

func New(sched *timer.Scheduler, limits ComboLimits, opts ...Option) *Sequencer {
	s := &Sequencer{
		sched:  sched,
		limits: append(ComboLimits(nil), limits...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequencer) State() State { return s.state }
func (s *Sequencer) AttackID() uint64 { return s.attackID }
func (s *Sequencer) Count() int { return s.count }
func (s *Sequencer) ComboIndex() int { return s.comboIndex }
func (s *Sequencer) Limits() ComboLimits { return s.limits }
func (s *Sequencer) Observers() *ObserverRegistry { return &s.observers }
func (s *Sequencer) WindowPending() bool { return s.window != 0 }

// SetLimits replaces the combo table. The running chain keeps its count.
func (s *Sequencer) SetLimits(limits ComboLimits) {
	s.limits = append(ComboLimits(nil), limits...)
}

// BeginAttack admits a new attack at comboIndex. It is rejected while an
// attack is waiting for its animation or still attacking, and once the
// chain holds as many attacks as the stage allows. Starting from the attack
// window supersedes that window outright.
func (s *Sequencer) BeginAttack(comboIndex int) bool {
	if s.state == StateWaiting || s.state == StateAttacking {
		return false
	}
	limit := s.limits.Limit(comboIndex)
	if s.count >= limit {
		return false
	}

	s.cancelWindow()
	s.cancelHandler()
	s.unbind()

	s.count++
	if s.count > limit {
		s.count = limit
	}
	s.attackID++
	s.comboIndex = comboIndex
	s.setState(StateWaiting)
	return true
}

// CancelAttack drops the whole chain: timers, handler task, state and
// count. It may be called from gameplay code at any time.
func (s *Sequencer) CancelAttack() {
	s.cancelWindow()
	s.cancelHandler()
	s.unbind()
	s.count = 0
	s.setState(StateNone)
}

// OnCommandEnter binds the new animation instance to the live attack.
func (s *Sequencer) OnCommandEnter(e animcmd.EnterEvent) {
	s.cancelHandler()
	s.bound = true
	s.instance = e.Identity
	s.mask = 0
	s.windowOpened = false
	s.thresholds = e.Thresholds.Normalize()
	s.extra = e.AdditionalWindow
	s.flags = e.Flags
	s.subID = e.SubID
	s.setState(StateAttacking)

	if s.progress != nil && s.sched != nil {
		id := e.Identity
		s.handler = s.sched.Every(func(float32) bool {
			if !s.bound || s.instance != id {
				return false
			}
			s.sampleProgress(s.progress())
			return !s.mask.Has(timeline.PhaseEnd) && !s.windowOpened
		})
	}
}

func (s *Sequencer) OnPhase(e animcmd.PhaseEvent) {
	if !s.owns(e.Identity, e.Phase.String()) {
		return
	}
	s.handlePhase(e.Phase)
}

func (s *Sequencer) OnAdditionalWindow(e animcmd.WindowEvent) {
	if !s.owns(e.Identity, "additional window") {
		return
	}
	s.mask = s.mask.With(timeline.PhaseStartup).With(timeline.PhaseActive).With(timeline.PhaseRecovery)
	s.openWindow(e.Duration)
}

// OnCommandExit finishes an attack whose animation was pre-empted. A
// waiting attack is left alone: the exited instance belonged to the attack
// it superseded.
func (s *Sequencer) OnCommandExit(e animcmd.ExitEvent) {
	if !s.owns(e.Identity, "exit") {
		return
	}
	if s.state == StateAttacking || s.state == StateAttackWindow {
		s.finish(EndExited)
		return
	}
	s.cancelHandler()
	s.unbind()
}

// sampleProgress is the derived path. It shares the mask with the event
// path, so each phase is handled once whichever path sees it first.
func (s *Sequencer) sampleProgress(t float64) {
	for !s.windowOpened {
		entered, _ := timeline.Classify(s.mask, t, s.thresholds)
		if len(entered) == 0 {
			return
		}
		p := entered[0]
		if p == timeline.PhaseEnd && s.extra > 0 {
			s.openWindow(s.extra)
			return
		}
		id := s.attackID
		s.handlePhase(p)
		if s.attackID != id || !s.bound {
			return
		}
	}
}

func (s *Sequencer) handlePhase(p timeline.Phase) {
	if s.mask.Has(p) {
		return
	}
	s.mask = s.mask.With(p)

	switch p {
	case timeline.PhaseStartup, timeline.PhaseActive:
		s.notifyPhase(p)
	case timeline.PhaseRecovery:
		s.setState(StateAttackWindow)
		s.notifyPhase(p)
	case timeline.PhaseEnd:
		// Authoritative end; also the backstop if a window timer was lost.
		s.finish(EndNatural)
	}
}

func (s *Sequencer) openWindow(d float64) {
	if s.windowOpened {
		return
	}
	s.cancelWindow()
	s.windowOpened = true
	captured := s.attackID
	s.setState(StateAttackWindow)
	if s.sched == nil || s.attackID != captured || s.state != StateAttackWindow {
		return
	}
	s.window = s.sched.After(float32(d), func() {
		s.windowElapsed(captured)
	})
}

// windowElapsed is the window timer callback. Only the attack that armed
// the timer may be ended by it.
func (s *Sequencer) windowElapsed(captured uint64) {
	if captured != s.attackID {
		s.logf("attack: discarding stale window timer for attack %d (current %d)", captured, s.attackID)
		return
	}
	s.window = 0
	s.finish(EndWindowElapsed)
}

func (s *Sequencer) finish(reason EndReason) {
	live := s.state != StateNone
	ev := AttackEndEvent{AttackID: s.attackID, ComboIndex: s.comboIndex, Reason: reason}
	s.CancelAttack()
	if !live {
		return
	}
	s.observers.each(func(o Observer) {
		o.OnAttackEnd(ev)
	})
}

func (s *Sequencer) owns(id animcmd.Identity, what string) bool {
	if s.bound && s.instance == id {
		return true
	}
	s.logf("attack: ignoring %s from instance %s (bound=%t)", what, id, s.bound)
	return false
}

func (s *Sequencer) notifyPhase(p timeline.Phase) {
	ev := AttackPhaseEvent{
		AttackID:   s.attackID,
		ComboIndex: s.comboIndex,
		Phase:      p,
		Flags:      s.flags,
		SubID:      s.subID,
	}
	s.observers.each(func(o Observer) {
		o.OnAttackPhase(ev)
	})
}

func (s *Sequencer) setState(to State) {
	if s.state == to {
		return
	}
	c := StateChange{From: s.state, To: to, AttackID: s.attackID}
	s.state = to
	s.observers.each(func(o Observer) {
		o.OnAttackStateChanged(c)
	})
}

func (s *Sequencer) cancelWindow() {
	if s.window != 0 {
		s.sched.Cancel(s.window)
		s.window = 0
	}
	s.windowOpened = false
}

func (s *Sequencer) cancelHandler() {
	if s.handler != 0 {
		s.sched.Cancel(s.handler)
		s.handler = 0
	}
}

func (s *Sequencer) unbind() {
	s.bound = false
	s.instance = animcmd.Identity{}
	s.mask = 0
}

func (s *Sequencer) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
