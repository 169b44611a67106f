package sim

import (
	"fmt"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// ReportKind distinguishes the five Reporter operations the virtual
// chain or the tap-dance/combo actions can invoke.
type ReportKind int

const (
	ReportRegister ReportKind = iota
	ReportUnregister
	ReportTap
	ReportLayer
	ReportFlush
)

func (k ReportKind) String() string {
	switch k {
	case ReportRegister:
		return "register"
	case ReportUnregister:
		return "unregister"
	case ReportTap:
		return "tap"
	case ReportLayer:
		return "layer"
	case ReportFlush:
		return "flush"
	default:
		return "invalid"
	}
}

// Report is one recorded Reporter call, timestamped against the clock
// the Reporter was built with.
type Report struct {
	Time    mb.Time
	Kind    ReportKind
	Keycode mb.Keycode
	Layer   uint8
}

func (r Report) String() string {
	switch r.Kind {
	case ReportLayer:
		return fmt.Sprintf("t=%d layer(%d)", r.Time, r.Layer)
	case ReportFlush:
		return fmt.Sprintf("t=%d flush", r.Time)
	default:
		return fmt.Sprintf("t=%d %s(%#x)", r.Time, r.Kind, uint32(r.Keycode))
	}
}

// Clock supplies the timestamp a Reporter stamps onto each call it
// records; Scheduler satisfies it.
type Clock interface {
	Now() mb.Time
}

// Reporter is an in-memory monkeyboard.Reporter that records every
// call for test assertions, instead of driving real HID hardware.
type Reporter struct {
	clock Clock
	Log   []Report
}

// NewReporter returns a Reporter that stamps recorded calls with
// clock.Now().
func NewReporter(clock Clock) *Reporter {
	return &Reporter{clock: clock}
}

func (r *Reporter) record(rep Report) {
	rep.Time = r.clock.Now()
	r.Log = append(r.Log, rep)
}

// RegisterKey implements monkeyboard.Reporter.
func (r *Reporter) RegisterKey(keycode mb.Keycode) {
	r.record(Report{Kind: ReportRegister, Keycode: keycode})
}

// UnregisterKey implements monkeyboard.Reporter.
func (r *Reporter) UnregisterKey(keycode mb.Keycode) {
	r.record(Report{Kind: ReportUnregister, Keycode: keycode})
}

// TapKey implements monkeyboard.Reporter.
func (r *Reporter) TapKey(keycode mb.Keycode) {
	r.record(Report{Kind: ReportTap, Keycode: keycode})
}

// SetActiveLayer implements monkeyboard.Reporter.
func (r *Reporter) SetActiveLayer(layer uint8) {
	r.record(Report{Kind: ReportLayer, Layer: layer})
}

// Flush implements monkeyboard.Reporter.
func (r *Reporter) Flush() {
	r.record(Report{Kind: ReportFlush})
}

// Reset clears the recorded log, for reuse across test cases.
func (r *Reporter) Reset() {
	r.Log = nil
}
