package animcmd

import (
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/shared/timer"
)

// pendingWindow marks a window that was announced but whose timer is not
// armed yet.
const pendingWindow = ^timer.Handle(0)

// Sender converts one entity's animation progress into phase events. Each
// phase fires exactly once per instance; the optional additional window
// defers End by a real-time delay run on the scheduler.
type Sender struct {
	sched     *timer.Scheduler
	next      Command
	listeners Registry

	// Per-instance state. gen changes on every Enter and Exit so callbacks
	// from an older instance can detect they were superseded.
	cmd      Command
	id       Identity
	active   bool
	gen      uint64
	mask     timeline.PhaseMask
	lastTime float64
	window   timer.Handle
}

// NewSender returns a sender for cmd. sched may be nil only if no command
// will use an additional window; End is then delivered immediately.
func NewSender(sched *timer.Scheduler, cmd Command) *Sender {
	return &Sender{
		sched: sched,
		next:  cmd,
	}
}

// SetCommand replaces the configuration used by the next instance. The
// running instance keeps the snapshot taken at Enter.
func (s *Sender) SetCommand(cmd Command) {
	s.next = cmd
}

// Command returns the snapshot of the running instance, or the pending
// configuration when idle.
func (s *Sender) Command() Command {
	if s.active {
		return s.cmd
	}
	return s.next
}

func (s *Sender) Registry() *Registry { return &s.listeners }
func (s *Sender) Active() bool { return s.active }
func (s *Sender) Identity() Identity { return s.id }
func (s *Sender) Fired() timeline.PhaseMask { return s.mask }
func (s *Sender) WindowPending() bool { return s.window != 0 }
func (s *Sender) NormalizedTime() float64 { return s.lastTime }

func (s *Sender) AddListener(l Listener, filters ...Filter) Subscription {
	return s.listeners.Add(l, filters...)
}

// Enter starts a new instance, exiting any live previous one first.
// Listeners get OnCommandEnter and then the Startup phase.
func (s *Sender) Enter(id Identity) {
	s.Exit()

	s.cmd = s.next.Normalized()
	s.id = id
	s.active = true
	s.gen++
	s.mask = 0
	s.lastTime = 0
	gen := s.gen

	ev := EnterEvent{
		Identity:         id,
		Command:          s.cmd,
		Thresholds:       s.cmd.Thresholds,
		AdditionalWindow: s.cmd.AdditionalWindow,
		Layer:            s.cmd.Layer,
		Flags:            s.cmd.Flags,
		SubID:            s.cmd.SubID,
	}
	s.listeners.each(s.cmd.Flags, s.cmd.SubID, "enter", func(l Listener) {
		if s.gen == gen {
			l.OnCommandEnter(ev)
		}
	})
	if s.gen != gen {
		return
	}

	entered, _ := timeline.Begin(s.mask)
	s.emit(gen, entered)
}

// Tick samples normalized time for the running instance.
func (s *Sender) Tick(t float64) {
	if !s.active || s.mask.Has(timeline.PhaseEnd) || s.window != 0 {
		return
	}
	s.lastTime = t
	entered, _ := timeline.Classify(s.mask, t, s.cmd.Thresholds)
	s.emit(s.gen, entered)
}

// Sample is the per-tick host entry point: a changed identity retires the
// old instance and enters a new one before the time sample is applied.
func (s *Sender) Sample(id Identity, t float64) {
	if !s.active || id != s.id {
		s.Enter(id)
	}
	s.Tick(t)
}

// Exit pre-empts the running instance. End is not emitted. An instance that
// already ended naturally is retired without an Exit notification.
func (s *Sender) Exit() {
	if !s.active {
		return
	}
	if s.mask.Has(timeline.PhaseEnd) {
		s.quiesce()
		return
	}
	ev := ExitEvent{
		Identity: s.id,
		Fired:    s.mask,
		Flags:    s.cmd.Flags,
		SubID:    s.cmd.SubID,
	}
	s.quiesce()
	s.listeners.each(ev.Flags, ev.SubID, "exit", func(l Listener) {
		l.OnCommandExit(ev)
	})
}

func (s *Sender) quiesce() {
	if s.window != 0 {
		if s.window != pendingWindow {
			s.sched.Cancel(s.window)
		}
		s.window = 0
	}
	s.active = false
	s.mask = 0
	s.gen++
}

// emit delivers phases in order, stopping if a listener started or exited
// an instance mid-delivery.
func (s *Sender) emit(gen uint64, phases []timeline.Phase) {
	for _, p := range phases {
		if s.gen != gen {
			return
		}
		if p == timeline.PhaseEnd && s.cmd.AdditionalWindow > 0 {
			s.openWindow(gen)
			return
		}
		s.mask = s.mask.With(p)
		s.deliverPhase(p)
	}
}

// deliverPhase skips the remaining listeners once one of them retires the
// instance.
func (s *Sender) deliverPhase(p timeline.Phase) {
	gen := s.gen
	ev := PhaseEvent{
		Identity:       s.id,
		Phase:          p,
		NormalizedTime: s.lastTime,
		Flags:          s.cmd.Flags,
		SubID:          s.cmd.SubID,
	}
	s.listeners.each(ev.Flags, ev.SubID, p.String(), func(l Listener) {
		if s.gen == gen {
			l.OnPhase(ev)
		}
	})
}

// openWindow withholds End, announces the window and then arms the timer
// that delivers End when it elapses.
func (s *Sender) openWindow(gen uint64) {
	d := s.cmd.AdditionalWindow
	if s.sched == nil {
		s.mask = s.mask.With(timeline.PhaseEnd)
		s.deliverPhase(timeline.PhaseEnd)
		return
	}

	// Mark the window pending before notifying so a re-entrant Tick is a no-op.
	s.window = pendingWindow
	ev := WindowEvent{
		Identity: s.id,
		Duration: d,
		Flags:    s.cmd.Flags,
		SubID:    s.cmd.SubID,
	}
	s.listeners.each(ev.Flags, ev.SubID, "additional window", func(l Listener) {
		if s.gen == gen {
			l.OnAdditionalWindow(ev)
		}
	})
	if s.gen != gen {
		return
	}

	s.window = s.sched.After(float32(d), func() {
		if s.gen != gen {
			return
		}
		s.window = 0
		s.mask = s.mask.With(timeline.PhaseEnd)
		s.deliverPhase(timeline.PhaseEnd)
	})
}
