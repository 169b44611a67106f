package replacer_test

import (
	"reflect"
	"testing"

	mb "github.com/soycabanillas/monkeyboard-go"
	"github.com/soycabanillas/monkeyboard-go/transform/replacer"
)

type recordedAction struct {
	press bool
	kc    mb.Keycode
}

type fakeActions struct {
	calls []recordedAction
}

func (f *fakeActions) AddTap(kc mb.Keycode)   { f.calls = append(f.calls, recordedAction{true, kc}) }
func (f *fakeActions) AddUntap(kc mb.Keycode) { f.calls = append(f.calls, recordedAction{false, kc}) }

const trigger mb.Keycode = 0x20_0001

func TestPressExpandsIntoReplacementTapsInOrder(t *testing.T) {
	p := replacer.New([]replacer.Rule{{Keycode: trigger, Replacement: []mb.Keycode{0x04, 0x05, 0x06}}})
	actions := &fakeActions{}

	p.Process(&mb.VirtualCallbackParams{Keycode: trigger, IsPress: true, CallbackType: mb.CallbackKeyEvent}, actions)

	want := []recordedAction{{true, 0x04}, {true, 0x05}, {true, 0x06}}
	if !reflect.DeepEqual(actions.calls, want) {
		t.Fatalf("calls = %+v, want %+v", actions.calls, want)
	}
}

func TestReleaseExpandsIntoReplacementUntapsInOrder(t *testing.T) {
	p := replacer.New([]replacer.Rule{{Keycode: trigger, Replacement: []mb.Keycode{0x04, 0x05}}})
	actions := &fakeActions{}

	p.Process(&mb.VirtualCallbackParams{Keycode: trigger, IsPress: false, CallbackType: mb.CallbackKeyEvent}, actions)

	want := []recordedAction{{false, 0x04}, {false, 0x05}}
	if !reflect.DeepEqual(actions.calls, want) {
		t.Fatalf("calls = %+v, want %+v", actions.calls, want)
	}
}

func TestUnmatchedKeycodeIsIgnored(t *testing.T) {
	p := replacer.New([]replacer.Rule{{Keycode: trigger, Replacement: []mb.Keycode{0x04}}})
	actions := &fakeActions{}

	p.Process(&mb.VirtualCallbackParams{Keycode: 0x09, IsPress: true, CallbackType: mb.CallbackKeyEvent}, actions)

	if len(actions.calls) != 0 {
		t.Fatalf("calls = %+v, want none", actions.calls)
	}
}
