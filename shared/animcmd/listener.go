package animcmd

import (
	"log"
)

// Listener receives command events from a Sender.
type Listener interface {
	OnCommandEnter(e EnterEvent)
	OnPhase(e PhaseEvent)
	OnAdditionalWindow(e WindowEvent)
	OnCommandExit(e ExitEvent)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are
// skipped.
type ListenerFuncs struct {
	Enter  func(EnterEvent)
	Phase  func(PhaseEvent)
	Window func(WindowEvent)
	Exit   func(ExitEvent)
}

func (f ListenerFuncs) OnCommandEnter(e EnterEvent) {
	if f.Enter != nil {
		f.Enter(e)
	}
}

func (f ListenerFuncs) OnPhase(e PhaseEvent) {
	if f.Phase != nil {
		f.Phase(e)
	}
}

func (f ListenerFuncs) OnAdditionalWindow(e WindowEvent) {
	if f.Window != nil {
		f.Window(e)
	}
}

func (f ListenerFuncs) OnCommandExit(e ExitEvent) {
	if f.Exit != nil {
		f.Exit(e)
	}
}

// Filter decides whether a listener sees an event with the given flags and
// sub id.
type Filter func(flags Flags, subID int) bool

// MatchFlags passes events that share at least one bit with mask.
func MatchFlags(mask Flags) Filter {
	return func(flags Flags, _ int) bool {
		return flags&mask != 0
	}
}

// MatchSubID passes events carrying exactly id.
func MatchSubID(id int) Filter {
	return func(_ Flags, subID int) bool {
		return subID == id
	}
}

// Subscription identifies one registration in a Registry.
type Subscription uint64

type registration struct {
	id       Subscription
	listener Listener
	filters  []Filter
}

func (r registration) accepts(flags Flags, subID int) bool {
	for _, f := range r.filters {
		if f != nil && !f(flags, subID) {
			return false
		}
	}
	return true
}

// Registry is an ordered set of listeners owned by one Sender. Dispatch
// walks a snapshot, so listeners may register or unregister from inside a
// callback; the change applies from the next dispatch.
type Registry struct {
	regs   []registration
	nextID Subscription

	// Logger receives listener fault reports. Nil uses the log package.
	Logger *log.Logger
}

// Add registers l behind optional filters and returns its subscription.
func (r *Registry) Add(l Listener, filters ...Filter) Subscription {
	if l == nil {
		return 0
	}
	r.nextID++
	regs := make([]registration, len(r.regs), len(r.regs)+1)
	copy(regs, r.regs)
	r.regs = append(regs, registration{id: r.nextID, listener: l, filters: filters})
	return r.nextID
}

// Remove unregisters sub. Unknown subscriptions are ignored.
func (r *Registry) Remove(sub Subscription) {
	for i, reg := range r.regs {
		if reg.id != sub {
			continue
		}
		regs := make([]registration, 0, len(r.regs)-1)
		regs = append(regs, r.regs[:i]...)
		r.regs = append(regs, r.regs[i+1:]...)
		return
	}
}

func (r *Registry) Len() int {
	return len(r.regs)
}

// each calls fn for every accepting listener in registration order. The
// backing slice is copy-on-write, so holding it is a stable snapshot. A
// panicking listener is logged and skipped.
func (r *Registry) each(flags Flags, subID int, what string, fn func(Listener)) {
	snapshot := r.regs
	for _, reg := range snapshot {
		if !reg.accepts(flags, subID) {
			continue
		}
		r.deliver(reg, what, fn)
	}
}

func (r *Registry) deliver(reg registration, what string, fn func(Listener)) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logf("Warning: listener %d panicked during %s: %v", reg.id, what, rec)
		}
	}()
	fn(reg.listener)
}

func (r *Registry) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
