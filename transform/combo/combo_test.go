package combo_test

import (
	"testing"

	mb "github.com/soycabanillas/monkeyboard-go"
	"github.com/soycabanillas/monkeyboard-go/sim"
	"github.com/soycabanillas/monkeyboard-go/transform/combo"
)

type identityKeymap struct{}

func (identityKeymap) KeycodeAt(layer uint8, keypos mb.Keypos) mb.Keycode { return mb.Keycode(keypos) }

func newHarness(cfgs []combo.Config) *sim.Harness {
	layers := mb.NewLayerManager(identityKeymap{})
	h := sim.New(layers)
	h.Executor.AddPhysicalPipeline(combo.New(cfgs))
	return h
}

const comboOutput mb.Keycode = 0x2A

func TestComboActivatesWhenAllMembersPressed(t *testing.T) {
	h := newHarness([]combo.Config{{Keys: []mb.Keypos{1, 2}, Output: comboOutput}})

	h.Press(0, 1)
	h.Press(5, 2)

	want := []sim.Report{{Time: 5, Kind: sim.ReportTap, Keycode: comboOutput}}
	assertLog(t, h.Reporter.Log, want)
}

// TestPartialComboAbandonedAfterDeferredWindow checks that pressing
// only one member, then letting the confirmation window elapse with no
// second member down, never activates the combo and never reports the
// lone key either (it was marked processed while pending).
func TestPartialComboAbandonedAfterDeferredWindow(t *testing.T) {
	h := newHarness([]combo.Config{{Keys: []mb.Keypos{1, 2}, Output: comboOutput}})

	h.Press(0, 1)
	h.Tick(0 + mb.Time(mb.DefaultDeferredDelay) + 1)

	if len(h.Reporter.Log) != 0 {
		t.Fatalf("Log = %+v, want empty (candidate abandoned, not replayed)", h.Reporter.Log)
	}
}

func TestNonMemberKeyPassesThroughUntouched(t *testing.T) {
	h := newHarness([]combo.Config{{Keys: []mb.Keypos{1, 2}, Output: comboOutput}})

	h.Press(0, 9)
	h.Release(1, 9)

	want := []sim.Report{
		{Time: 0, Kind: sim.ReportRegister, Keycode: 9},
		{Time: 0, Kind: sim.ReportFlush},
		{Time: 1, Kind: sim.ReportUnregister, Keycode: 9},
		{Time: 1, Kind: sim.ReportFlush},
	}
	assertLog(t, h.Reporter.Log, want)
}

func assertLog(t *testing.T, got, want []sim.Report) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Log = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Log[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
