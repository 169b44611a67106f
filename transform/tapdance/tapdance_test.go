package tapdance_test

import (
	"testing"

	mb "github.com/soycabanillas/monkeyboard-go"
	"github.com/soycabanillas/monkeyboard-go/sim"
	"github.com/soycabanillas/monkeyboard-go/transform/tapdance"
)

const output mb.Keycode = 0x05 // arbitrary basic HID usage, stands in for OUTPUT

func newHarness(cfg tapdance.Config) (*sim.Harness, *tapdance.Pipeline) {
	layers := mb.NewLayerManager(mapKeymap{})
	h := sim.New(layers)
	p := tapdance.New(cfg)
	h.Executor.AddPhysicalPipeline(p)
	return h, p
}

type mapKeymap struct{}

func (mapKeymap) KeycodeAt(layer uint8, keypos mb.Keypos) mb.Keycode { return 0 }

func baseConfig() tapdance.Config {
	return tapdance.Config{
		Key:           mb.Keypos(3000),
		TapActions:    map[int]tapdance.Action{1: {Keycode: output}},
		HoldAction:    tapdance.Action{PushLayer: true, Layer: 1},
		HoldTimeoutMs: 200,
		Mode:          tapdance.HoldPreferred,
	}
}

// TestHoldReachesTimeout reproduces the literal scenario: press at
// t=100, wait 250ms (the timer fires at t=300, 200ms after the press),
// release at t=350 - HID sees set_active_layer(1) at t=300 and
// set_active_layer(0) at t=350.
func TestHoldReachesTimeout(t *testing.T) {
	h, _ := newHarness(baseConfig())

	h.Press(100, mb.Keypos(3000))
	h.Tick(300) // 200ms past the press: the hold timeout fires
	h.Release(350, mb.Keypos(3000))

	want := []sim.Report{
		{Time: 300, Kind: sim.ReportLayer, Layer: 1},
		{Time: 350, Kind: sim.ReportLayer, Layer: 0},
	}
	assertLog(t, h.Reporter.Log, want)
}

// TestTapResolvesImmediatelyOnRelease reproduces the literal scenario:
// same config, press at t=0, release at t=50 (well inside the 200ms
// hold timeout) - HID sees tap_key(OUTPUT) at t=50, with no deferred
// wait, because no higher tap count is configured.
func TestTapResolvesImmediatelyOnRelease(t *testing.T) {
	h, _ := newHarness(baseConfig())

	h.Press(0, mb.Keypos(3000))
	h.Release(50, mb.Keypos(3000))

	want := []sim.Report{
		{Time: 50, Kind: sim.ReportTap, Keycode: output},
	}
	assertLog(t, h.Reporter.Log, want)
}

// TestSecondTapWaitsOutTapTimeout checks the counter-path: when a
// higher tap count IS configured, releasing doesn't resolve
// immediately - it arms a tap-timeout instead, so a fast second press
// can still arrive and change the outcome.
func TestSecondTapWaitsOutTapTimeout(t *testing.T) {
	cfg := baseConfig()
	cfg.TapActions[2] = tapdance.Action{Keycode: output + 1}
	cfg.TapTimeoutMs = 150
	h, _ := newHarness(cfg)

	h.Press(0, mb.Keypos(3000))
	h.Release(10, mb.Keypos(3000))
	if len(h.Reporter.Log) != 0 {
		t.Fatalf("first release should not resolve yet, Log = %+v", h.Reporter.Log)
	}

	h.Tick(160) // past the 150ms tap timeout with no second press
	want := []sim.Report{
		{Time: 160, Kind: sim.ReportTap, Keycode: output},
	}
	assertLog(t, h.Reporter.Log, want)
}

func TestDoubleTapResolvesOnSecondRelease(t *testing.T) {
	cfg := baseConfig()
	cfg.TapActions[2] = tapdance.Action{Keycode: output + 1}
	cfg.TapTimeoutMs = 150
	h, _ := newHarness(cfg)

	h.Press(0, mb.Keypos(3000))
	h.Release(10, mb.Keypos(3000))
	h.Press(20, mb.Keypos(3000))
	h.Release(30, mb.Keypos(3000))

	want := []sim.Report{
		{Time: 30, Kind: sim.ReportTap, Keycode: output + 1},
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
