// Package oneshot implements the one-shot modifier transformation: a
// configured trigger keycode latches a set of modifiers, which are
// tapped (pressed) when the very next basic keypress is seen and
// untapped on the virtual event after that, then auto-cleared. Both
// land at the back of the virtual buffer, so the reporter registers
// the modifiers after the key that consumed the latch and unregisters
// them before that key's own release: the key is not enclosed between
// the modifiers' press and release.
package oneshot

import mb "github.com/soycabanillas/monkeyboard-go"

// HID usage codes for the eight physical modifier keys, used to wrap
// the basic key that consumes a latched one-shot modifier.
const (
	LeftCtrl   mb.Keycode = 0xE0
	LeftShift  mb.Keycode = 0xE1
	LeftAlt    mb.Keycode = 0xE2
	LeftGUI    mb.Keycode = 0xE3
	RightCtrl  mb.Keycode = 0xE4
	RightShift mb.Keycode = 0xE5
	RightAlt   mb.Keycode = 0xE6
	RightGUI   mb.Keycode = 0xE7
)

var modifierKeys = []struct {
	bit     uint8
	keycode mb.Keycode
}{
	{mb.ModLSFT, LeftShift},
	{mb.ModRSFT, RightShift},
	{mb.ModLCTL, LeftCtrl},
	{mb.ModRCTL, RightCtrl},
	{mb.ModLALT, LeftAlt},
	{mb.ModRALT, RightAlt},
	{mb.ModLGUI, LeftGUI},
	{mb.ModRGUI, RightGUI},
}

// Pair configures one trigger keycode and the modifier bits (see
// monkeyboard.ModLCTL and siblings) it latches when pressed.
type Pair struct {
	Trigger   mb.Keycode
	Modifiers uint8
}

// Pipeline is a VirtualPipeline implementing one-shot modifiers. A
// single Pipeline can hold several trigger/modifier Pairs, matching any
// number of configured one-shot keys sharing one pending-modifier
// latch - exactly one can be "applied" at a time, same as the
// reference.
type Pipeline struct {
	pairs   []Pair
	pending uint8
	applied bool
}

// New returns a Pipeline configured with pairs.
func New(pairs []Pair) *Pipeline {
	return &Pipeline{pairs: pairs}
}

// Process implements monkeyboard.VirtualPipeline.
func (p *Pipeline) Process(params *mb.VirtualCallbackParams, actions mb.VirtualActions) {
	if p.applied {
		for _, m := range modifierKeys {
			if p.pending&m.bit != 0 {
				actions.AddUntap(m.keycode)
			}
		}
		p.pending = 0
		p.applied = false
	}

	foundTrigger := false
	if params.CallbackType == mb.CallbackKeyEvent && params.IsPress {
		for _, pair := range p.pairs {
			if pair.Trigger == params.Keycode {
				p.pending |= pair.Modifiers
				foundTrigger = true
				break
			}
		}
	}

	if !foundTrigger && p.pending != 0 && params.IsPress && mb.KindOf(params.Keycode) == mb.KindBasic {
		for _, m := range modifierKeys {
			if p.pending&m.bit != 0 {
				actions.AddTap(m.keycode)
			}
		}
		p.applied = true
	}
}

// Reset clears any pending or applied latch.
func (p *Pipeline) Reset() {
	p.pending = 0
	p.applied = false
}
