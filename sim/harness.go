package sim

import mb "github.com/soycabanillas/monkeyboard-go"

// Harness wires an Executor to a Scheduler and a Reporter, and advances
// the scheduler's clock to an event's own timestamp before feeding it
// through - so a deferred callback scheduled earlier fires exactly
// when the scenario says it should, before the new event is processed.
type Harness struct {
	Executor  *mb.Executor
	Scheduler *Scheduler
	Reporter  *Reporter
}

// New returns a Harness around an Executor built from layers, with a
// fresh Scheduler and Reporter.
func New(layers *mb.LayerManager) *Harness {
	sched := NewScheduler()
	rep := NewReporter(sched)
	return &Harness{
		Executor:  mb.NewExecutor(layers, rep, sched),
		Scheduler: sched,
		Reporter:  rep,
	}
}

// Press advances the clock to t and feeds a press at keypos.
func (h *Harness) Press(t mb.Time, keypos mb.Keypos) bool {
	h.Scheduler.Advance(t)
	return h.Executor.ProcessKey(mb.AbsKeyEvent{Keypos: keypos, IsPress: true, Time: t})
}

// Release advances the clock to t and feeds a release at keypos.
func (h *Harness) Release(t mb.Time, keypos mb.Keypos) bool {
	h.Scheduler.Advance(t)
	return h.Executor.ProcessKey(mb.AbsKeyEvent{Keypos: keypos, IsPress: false, Time: t})
}

// Tick advances the clock to t without an accompanying physical event,
// firing any deferred callbacks due by then.
func (h *Harness) Tick(t mb.Time) {
	h.Scheduler.Advance(t)
}
