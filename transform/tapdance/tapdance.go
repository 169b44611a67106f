// Package tapdance implements the tap-dance transformation: pressing
// one configured keypos captures the physical chain, counts
// repetitions within a tap-timeout window, and resolves to either a
// tap action (keyed by the number of completed taps) or a hold action,
// depending on whether the key was released before or after the
// configured hold timeout.
package tapdance

import mb "github.com/soycabanillas/monkeyboard-go"

// ResolutionMode controls how a key press on some other keypos,
// arriving while this key is still down, is treated.
type ResolutionMode int

const (
	// HoldPreferred commits to the hold action as soon as another key
	// is pressed while this one is still held, even before the hold
	// timeout elapses.
	HoldPreferred ResolutionMode = iota
	// TapPreferred never resolves early on an interrupting key; the
	// hold timeout is the only thing that can commit to hold.
	TapPreferred
	// Balanced commits to hold on an interrupting press the same way
	// HoldPreferred does, but ignores an interrupting release (a key
	// that was already down before this sequence started finishing its
	// own release doesn't, by itself, force a hold decision).
	Balanced
)

// Action is either a keycode (tap: press-then-release; hold: held for
// the duration) or a layer push/pop, per spec.md's `count → keycode|layer`
// configuration shape.
type Action struct {
	Keycode   mb.Keycode
	PushLayer bool
	Layer     uint8
}

// Config describes one tap-dance key.
type Config struct {
	Key           mb.Keypos
	TapActions    map[int]Action
	HoldAction    Action
	TapTimeoutMs  uint32
	HoldTimeoutMs uint32
	Mode          ResolutionMode
}

// Pipeline is a PhysicalPipeline implementing tap-dance for exactly one
// configured key. Install one Pipeline per tap-dance key.
type Pipeline struct {
	cfg Config

	active    bool
	heldNow   bool
	holdFired bool
	taps      int
	pressID   uint8
}

// New returns a Pipeline configured with cfg.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Process implements monkeyboard.PhysicalPipeline.
func (p *Pipeline) Process(params *mb.PhysicalCallbackParams, actions mb.PhysicalActions, ret mb.ReturnActions) {
	if params.CallbackType == mb.CallbackTimer {
		p.onTimer(params, actions, ret)
		return
	}
	if params.KeyEvent == nil {
		ret.NoCapture()
		return
	}
	kev := params.KeyEvent

	if !mb.KeyposEqual(kev.Keypos, p.cfg.Key) {
		if !p.active {
			ret.NoCapture()
			return
		}
		p.resolveInterrupt(kev.IsPress, actions)
		ret.NoCapture()
		return
	}

	if kev.IsPress {
		p.taps++
		p.heldNow = true
		p.active = true
		p.pressID = kev.PressID
		ret.MarkAsProcessed()
		ret.CaptureNextKeysOrCallbackOnTimeout(params.CallbackTime + mb.Time(p.cfg.HoldTimeoutMs))
		return
	}

	p.heldNow = false
	if p.holdFired {
		p.finalizeHold(actions)
		p.reset()
		ret.MarkAsProcessed()
		ret.NoCapture()
		return
	}
	ret.MarkAsProcessed()
	if _, more := p.cfg.TapActions[p.taps+1]; more && p.cfg.TapTimeoutMs > 0 {
		// A higher tap count is configured: wait out the tolerance
		// window in case another press follows before committing.
		ret.CaptureNextKeysOrCallbackOnTimeout(params.CallbackTime + mb.Time(p.cfg.TapTimeoutMs))
		return
	}
	p.resolveTap(actions)
	p.reset()
	ret.NoCapture()
}

func (p *Pipeline) onTimer(params *mb.PhysicalCallbackParams, actions mb.PhysicalActions, ret mb.ReturnActions) {
	if p.heldNow && !p.holdFired {
		p.fireHold(actions)
		ret.CaptureNextKeys()
		return
	}
	if !p.heldNow && p.active {
		p.resolveTap(actions)
		p.reset()
	}
	ret.NoCapture()
}

// resolveInterrupt handles a physical event on a different keypos
// arriving while this key's sequence is still open.
func (p *Pipeline) resolveInterrupt(interruptIsPress bool, actions mb.PhysicalActions) {
	if !p.heldNow {
		// Already released, waiting out the tap-timeout for a possible
		// repeat tap: any other key arriving commits to the tap count
		// seen so far.
		p.resolveTap(actions)
		p.reset()
		return
	}
	if p.holdFired {
		return
	}
	switch p.cfg.Mode {
	case TapPreferred:
		return
	case Balanced:
		if !interruptIsPress {
			return
		}
	}
	p.fireHold(actions)
}

func (p *Pipeline) fireHold(actions mb.PhysicalActions) {
	if p.cfg.HoldAction.PushLayer {
		actions.PushLayer(p.cfg.Key, p.pressID, p.cfg.HoldAction.Layer)
	} else {
		actions.RegisterKey(p.cfg.HoldAction.Keycode)
	}
	p.holdFired = true
}

func (p *Pipeline) finalizeHold(actions mb.PhysicalActions) {
	if p.cfg.HoldAction.PushLayer {
		actions.PopLayer(p.cfg.Key)
	} else {
		actions.UnregisterKey(p.cfg.HoldAction.Keycode)
	}
}

func (p *Pipeline) resolveTap(actions mb.PhysicalActions) {
	action, ok := p.cfg.TapActions[p.taps]
	if !ok {
		return
	}
	if action.PushLayer {
		actions.PushLayer(p.cfg.Key, p.pressID, action.Layer)
		actions.PopLayer(p.cfg.Key)
		return
	}
	actions.TapKey(action.Keycode)
}

func (p *Pipeline) reset() {
	p.active = false
	p.heldNow = false
	p.holdFired = false
	p.taps = 0
}

// Reset implements monkeyboard.PhysicalPipeline.
func (p *Pipeline) Reset() {
	p.reset()
}
