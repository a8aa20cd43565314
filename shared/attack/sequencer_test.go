package attack

import (
	"bytes"
	"log"
	"testing"

	"github.com/automoto/doomerang-combat/shared/animcmd"
	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/automoto/doomerang-combat/shared/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watcher struct {
	phases  []timeline.Phase
	ends    []AttackEndEvent
	changes []StateChange
}

func watch(s *Sequencer) *watcher {
	w := &watcher{}
	s.Observers().Add(ObserverFuncs{
		Phase:   func(e AttackPhaseEvent) { w.phases = append(w.phases, e.Phase) },
		End:     func(e AttackEndEvent) { w.ends = append(w.ends, e) },
		Changed: func(c StateChange) { w.changes = append(w.changes, c) },
	})
	return w
}

var scenario = animcmd.Command{
	Name:             "jab",
	Thresholds:       timeline.Thresholds{StartupEnd: 0.1, ActiveEnd: 0.6, RecoveryEnd: 0.9},
	AdditionalWindow: 0.5,
}

func enterEvent(id animcmd.Identity) animcmd.EnterEvent {
	return animcmd.EnterEvent{
		Identity:         id,
		Command:          scenario,
		Thresholds:       scenario.Thresholds,
		AdditionalWindow: scenario.AdditionalWindow,
	}
}

// toWindow binds an instance and drives it into the attack window.
func toWindow(s *Sequencer, id animcmd.Identity) {
	s.OnCommandEnter(enterEvent(id))
	s.OnPhase(animcmd.PhaseEvent{Identity: id, Phase: timeline.PhaseStartup})
	s.OnPhase(animcmd.PhaseEvent{Identity: id, Phase: timeline.PhaseActive})
	s.OnPhase(animcmd.PhaseEvent{Identity: id, Phase: timeline.PhaseRecovery})
}

func TestComboLimits_Limit(t *testing.T) {
	limits := ComboLimits{2, 3}
	assert.Equal(t, 2, limits.Limit(-4))
	assert.Equal(t, 2, limits.Limit(0))
	assert.Equal(t, 3, limits.Limit(1))
	assert.Equal(t, 3, limits.Limit(9))
	assert.Equal(t, 1, ComboLimits(nil).Limit(0))
	assert.Equal(t, 0, ComboLimits{-1}.Limit(0))
}

func TestBeginAttack_AdmitsAfterCancel(t *testing.T) {
	s := New(timer.NewScheduler(), ComboLimits{2, 3})
	for i := 0; i < 3; i++ {
		require.True(t, s.BeginAttack(0), "attempt %d", i)
		s.CancelAttack()
	}
	assert.Equal(t, uint64(3), s.AttackID())
	assert.Equal(t, 0, s.Count())
}

func TestBeginAttack_ChainStopsAtLimit(t *testing.T) {
	s := New(timer.NewScheduler(), ComboLimits{2, 3})

	require.True(t, s.BeginAttack(0))
	toWindow(s, animcmd.Identity{State: 1, Instance: 1})
	require.Equal(t, StateAttackWindow, s.State())

	require.True(t, s.BeginAttack(0))
	toWindow(s, animcmd.Identity{State: 1, Instance: 2})

	assert.False(t, s.BeginAttack(0))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, StateAttackWindow, s.State())

	// A later stage has more room.
	assert.True(t, s.BeginAttack(1))
	assert.Equal(t, 3, s.Count())
}

func TestBeginAttack_RejectedWhileBusy(t *testing.T) {
	s := New(timer.NewScheduler(), ComboLimits{5})

	require.True(t, s.BeginAttack(0))
	assert.False(t, s.BeginAttack(0), "waiting")

	s.OnCommandEnter(enterEvent(animcmd.Identity{State: 1, Instance: 1}))
	assert.Equal(t, StateAttacking, s.State())
	assert.False(t, s.BeginAttack(0), "attacking")
	assert.Equal(t, 1, s.Count())
}

func TestWindowTimer_StaleAttackIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	sched := timer.NewScheduler()
	s := New(sched, ComboLimits{3}, WithLogger(log.New(&buf, "", 0)))
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	first := animcmd.Identity{State: 1, Instance: 1}
	toWindow(s, first)
	s.OnAdditionalWindow(animcmd.WindowEvent{Identity: first, Duration: 0.5})
	require.True(t, s.WindowPending())
	require.Equal(t, uint64(1), s.AttackID())

	require.True(t, s.BeginAttack(0))
	assert.Equal(t, uint64(2), s.AttackID())
	assert.False(t, s.WindowPending())
	assert.Equal(t, 0, sched.Len())

	// Simulate a timer that escaped cancellation.
	s.windowElapsed(1)

	assert.Equal(t, StateWaiting, s.State())
	assert.Equal(t, 2, s.Count())
	assert.Empty(t, w.ends)
	assert.Contains(t, buf.String(), "stale window timer for attack 1")
}

func TestCancelAttack_IdempotentFromNone(t *testing.T) {
	s := New(timer.NewScheduler(), ComboLimits{1})
	w := watch(s)

	s.CancelAttack()
	s.CancelAttack()

	assert.Equal(t, StateNone, s.State())
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, w.changes)
	assert.Empty(t, w.ends)
}

func TestCancelAttack_FromWindowSilencesTimer(t *testing.T) {
	sched := timer.NewScheduler()
	s := New(sched, ComboLimits{1})
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	id := animcmd.Identity{State: 1, Instance: 1}
	toWindow(s, id)
	s.OnAdditionalWindow(animcmd.WindowEvent{Identity: id, Duration: 0.5})

	s.CancelAttack()
	sched.Update(1)

	assert.Equal(t, StateNone, s.State())
	assert.Empty(t, w.ends)
}

func TestScenario_WindowElapses(t *testing.T) {
	sched := timer.NewScheduler()
	sender := animcmd.NewSender(sched, scenario)
	s := New(sched, ComboLimits{1})
	sender.AddListener(s)
	w := watch(s)
	id := animcmd.Identity{State: 2, Instance: 1}

	require.True(t, s.BeginAttack(0))
	assert.Equal(t, StateWaiting, s.State())

	sender.Enter(id)
	assert.Equal(t, StateAttacking, s.State())
	assert.Equal(t, []timeline.Phase{timeline.PhaseStartup}, w.phases)

	sender.Tick(0.05)
	assert.Len(t, w.phases, 1)

	sender.Tick(0.2)
	assert.Equal(t, timeline.PhaseActive, w.phases[len(w.phases)-1])

	sender.Tick(0.65)
	assert.Equal(t, timeline.PhaseRecovery, w.phases[len(w.phases)-1])
	assert.Equal(t, StateAttackWindow, s.State())

	sender.Tick(1.0)
	assert.Len(t, w.phases, 3)
	assert.True(t, sender.WindowPending())
	assert.True(t, s.WindowPending())
	assert.Empty(t, w.ends)
	assert.Equal(t, uint64(1), s.AttackID())

	sched.Update(0.25)
	assert.Equal(t, StateAttackWindow, s.State())

	sched.Update(0.25)
	assert.Equal(t, StateNone, s.State())
	assert.Equal(t, 0, s.Count())
	require.Len(t, w.ends, 1)
	assert.Equal(t, AttackEndEvent{AttackID: 1, ComboIndex: 0, Reason: EndWindowElapsed}, w.ends[0])
	assert.True(t, sender.Fired().Has(timeline.PhaseEnd))
	assert.Equal(t, 0, sched.Len())
}

func TestScenario_ComboDuringWindowSupersedes(t *testing.T) {
	sched := timer.NewScheduler()
	sender := animcmd.NewSender(sched, scenario)
	s := New(sched, ComboLimits{2})
	sender.AddListener(s)
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	sender.Sample(animcmd.Identity{State: 2, Instance: 1}, 1.0)
	require.Equal(t, StateAttackWindow, s.State())

	require.True(t, s.BeginAttack(0))
	sender.Sample(animcmd.Identity{State: 2, Instance: 2}, 0)
	assert.Equal(t, StateAttacking, s.State())
	assert.Equal(t, uint64(2), s.AttackID())

	// The first attack's window would have elapsed here.
	sched.Update(0.5)
	assert.Equal(t, StateAttacking, s.State())
	assert.Empty(t, w.ends)
}

func TestNaturalEndWithoutWindow(t *testing.T) {
	cmd := scenario
	cmd.AdditionalWindow = 0
	sender := animcmd.NewSender(nil, cmd)
	s := New(nil, ComboLimits{1})
	sender.AddListener(s)
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	sender.Sample(animcmd.Identity{State: 2, Instance: 1}, 1.0)

	assert.Equal(t, StateNone, s.State())
	require.Len(t, w.ends, 1)
	assert.Equal(t, EndNatural, w.ends[0].Reason)
}

func TestExitMidAttackEndsIt(t *testing.T) {
	sender := animcmd.NewSender(timer.NewScheduler(), scenario)
	s := New(nil, ComboLimits{1})
	sender.AddListener(s)
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	sender.Sample(animcmd.Identity{State: 2, Instance: 1}, 0.3)
	sender.Exit()

	assert.Equal(t, StateNone, s.State())
	require.Len(t, w.ends, 1)
	assert.Equal(t, EndExited, w.ends[0].Reason)
}

func TestStaleInstanceEventsAreIgnored(t *testing.T) {
	s := New(timer.NewScheduler(), ComboLimits{3})
	w := watch(s)
	old := animcmd.Identity{State: 1, Instance: 1}

	require.True(t, s.BeginAttack(0))
	toWindow(s, old)
	require.True(t, s.BeginAttack(0))

	s.OnPhase(animcmd.PhaseEvent{Identity: old, Phase: timeline.PhaseEnd})
	s.OnCommandExit(animcmd.ExitEvent{Identity: old})

	assert.Equal(t, StateWaiting, s.State())
	assert.Empty(t, w.ends)
}

func TestDerivedProgress_MatchesEventPath(t *testing.T) {
	sched := timer.NewScheduler()
	var now float64
	s := New(sched, ComboLimits{1}, WithProgress(func() float64 { return now }))
	w := watch(s)

	require.True(t, s.BeginAttack(0))
	s.OnCommandEnter(enterEvent(animcmd.Identity{State: 2, Instance: 1}))

	for _, now = range []float64{0.05, 0.2, 0.65, 1.0} {
		sched.Update(0.25)
	}
	assert.Equal(t, []timeline.Phase{timeline.PhaseStartup, timeline.PhaseActive, timeline.PhaseRecovery}, w.phases)
	assert.Equal(t, StateAttackWindow, s.State())
	assert.True(t, s.WindowPending())

	sched.Update(0.25)
	sched.Update(0.25)
	require.Len(t, w.ends, 1)
	assert.Equal(t, EndWindowElapsed, w.ends[0].Reason)
	assert.Equal(t, 0, sched.Len())
}

func TestDerivedProgress_AlongsideSenderFiresOnce(t *testing.T) {
	sched := timer.NewScheduler()
	sender := animcmd.NewSender(sched, scenario)
	var now float64
	s := New(sched, ComboLimits{1}, WithProgress(func() float64 { return now }))
	sender.AddListener(s)
	w := watch(s)
	id := animcmd.Identity{State: 2, Instance: 1}

	require.True(t, s.BeginAttack(0))
	for _, now = range []float64{0, 0.2, 0.65, 1.0, 1.0, 1.0} {
		sender.Sample(id, now)
		sched.Update(0.25)
	}

	assert.Equal(t, []timeline.Phase{timeline.PhaseStartup, timeline.PhaseActive, timeline.PhaseRecovery}, w.phases)
	require.Len(t, w.ends, 1)
	assert.Equal(t, StateNone, s.State())
}

func TestObserverPanicDoesNotStopOthers(t *testing.T) {
	s := New(nil, ComboLimits{1}, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	s.Observers().Add(ObserverFuncs{Changed: func(StateChange) { panic("observer") }})
	w := watch(s)

	assert.NotPanics(t, func() { s.BeginAttack(0) })
	require.Len(t, w.changes, 1)
	assert.Equal(t, StateChange{From: StateNone, To: StateWaiting, AttackID: 1}, w.changes[0])
}

func TestObserverRegistry_Remove(t *testing.T) {
	s := New(nil, ComboLimits{1})
	calls := 0
	id := s.Observers().Add(ObserverFuncs{Changed: func(StateChange) { calls++ }})
	s.Observers().Remove(id)

	s.BeginAttack(0)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, s.Observers().Len())
}
