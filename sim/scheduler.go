// Package sim provides an in-memory Reporter and Scheduler, modeled on
// tcell's SimulationScreen: a way to drive the executor end-to-end from
// a test or a demo without any real HID stack or hardware timer
// underneath it.
package sim

import mb "github.com/soycabanillas/monkeyboard-go"

type timerEntry struct {
	fireAt   mb.Time
	token    mb.Token
	callback func()
	canceled bool
	fired    bool
}

// Scheduler is a deterministic, manually-advanced Scheduler. Tests
// drive time explicitly through Advance rather than relying on a real
// clock, so a scenario's outcome never depends on how fast the test
// runs.
type Scheduler struct {
	now     mb.Time
	pending []timerEntry
	next    mb.Token
}

// NewScheduler returns a Scheduler starting at time 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current virtual time.
func (s *Scheduler) Now() mb.Time { return s.now }

// ScheduleDeferred implements monkeyboard.Scheduler.
func (s *Scheduler) ScheduleDeferred(delayMs uint32, callback func()) mb.Token {
	s.next++
	s.pending = append(s.pending, timerEntry{
		fireAt:   s.now + mb.Time(delayMs),
		token:    s.next,
		callback: callback,
	})
	return s.next
}

// CancelDeferred implements monkeyboard.Scheduler. Canceling an
// already-fired or unknown token is a no-op.
func (s *Scheduler) CancelDeferred(token mb.Token) {
	for i := range s.pending {
		if s.pending[i].token == token {
			s.pending[i].canceled = true
			return
		}
	}
}

// Advance moves the scheduler's clock to t and fires every pending
// callback whose deadline has passed, in fireAt order. A callback that
// schedules a new timer already due at t fires in the same Advance
// call, so the executor never observes a timer later than it should.
func (s *Scheduler) Advance(t mb.Time) {
	s.now = t
	for {
		idx := -1
		for i := range s.pending {
			e := &s.pending[i]
			if e.fired || e.canceled {
				continue
			}
			if !mb.AfterOrEqual(s.now, e.fireAt) {
				continue
			}
			if idx < 0 || mb.Before(e.fireAt, s.pending[idx].fireAt) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		s.pending[idx].fired = true
		s.pending[idx].callback()
	}
}
