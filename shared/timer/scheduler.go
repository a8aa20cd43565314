// Package timer provides cancelable cooperative timers advanced once per
// game tick. It replaces coroutine-style "wait N seconds" helpers with
// explicit handles whose callbacks are guaranteed never to run after Cancel.
package timer

import (
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Handle identifies an armed timer or task. The zero Handle is never issued.
type Handle uint64

type entry struct {
	id    Handle
	tween *gween.Tween // nil for per-tick tasks
	fire  func()
	task  func(dt float32) bool
	dead  bool
}

// Scheduler owns every timer for one world. It is not safe for concurrent
// use; all calls happen on the tick goroutine.
type Scheduler struct {
	entries []*entry
	byID    map[Handle]*entry
	nextID  Handle
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[Handle]*entry),
	}
}

// After arms a one-shot timer that calls fn once seconds of tick time have
// elapsed. Non-positive durations fire on the next Update, never inline.
func (s *Scheduler) After(seconds float32, fn func()) Handle {
	if seconds < 0 {
		seconds = 0
	}
	e := &entry{
		tween: gween.New(0, 1, seconds, ease.Linear),
		fire:  fn,
	}
	return s.add(e)
}

// Every runs fn on each Update until it returns false or the handle is
// canceled.
func (s *Scheduler) Every(fn func(dt float32) bool) Handle {
	return s.add(&entry{task: fn})
}

func (s *Scheduler) add(e *entry) Handle {
	s.nextID++
	e.id = s.nextID
	s.entries = append(s.entries, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel disarms h. Canceling a fired, canceled or unknown handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	e, ok := s.byID[h]
	if !ok {
		return
	}
	e.dead = true
	e.fire = nil
	e.task = nil
	delete(s.byID, h)
}

// Active reports whether h is still waiting to fire or still running.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.byID[h]
	return ok
}

// Len returns the number of live timers and tasks.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Clear cancels everything.
func (s *Scheduler) Clear() {
	for h := range s.byID {
		s.Cancel(h)
	}
}

// Update advances every timer by dt seconds and runs the ones that
// finished. Timers armed by callbacks during Update start counting on the
// next Update.
func (s *Scheduler) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}

	// Entries appended during this pass sit past n and wait for the next Update.
	n := len(s.entries)
	for i := 0; i < n; i++ {
		e := s.entries[i]
		if e.dead {
			continue
		}
		if e.tween == nil {
			s.runTask(e, dt)
			continue
		}
		if _, finished := e.tween.Update(dt); finished {
			fn := e.fire
			s.Cancel(e.id)
			s.call(e.id, fn)
		}
	}
	s.compact()
}

func (s *Scheduler) runTask(e *entry, dt float32) {
	fn := e.task
	if fn == nil {
		return
	}
	keep := true
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: timer task %d panicked: %v", e.id, r)
				keep = false
			}
		}()
		keep = fn(dt)
	}()
	if !keep {
		s.Cancel(e.id)
	}
}

func (s *Scheduler) call(id Handle, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: timer %d callback panicked: %v", id, r)
		}
	}()
	fn()
}

// compact drops dead entries; it runs only at the end of Update so the
// slice is never reshaped under the update loop.
func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}
