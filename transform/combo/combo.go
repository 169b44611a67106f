// Package combo implements the combo transformation: a set of member
// keypos values that, when pressed within a tolerance window of each
// other, suppress their individual key reports and emit one combo
// output instead.
package combo

import mb "github.com/soycabanillas/monkeyboard-go"

type state int

const (
	waiting state = iota
	active
)

// Config describes one combo: the member keypos set and the keycode it
// resolves to once every member is pressed.
type Config struct {
	Keys   []mb.Keypos
	Output mb.Keycode
}

type combo struct {
	cfg     Config
	pressed []bool
	state   state
}

func (c *combo) indexOf(keypos mb.Keypos) int {
	for i, k := range c.cfg.Keys {
		if mb.KeyposEqual(k, keypos) {
			return i
		}
	}
	return -1
}

func (c *combo) allPressed() bool {
	for _, p := range c.pressed {
		if !p {
			return false
		}
	}
	return true
}

func (c *combo) anyPressed() bool {
	for _, p := range c.pressed {
		if p {
			return true
		}
	}
	return false
}

// Pipeline is a PhysicalPipeline implementing combos. It captures
// nothing - combos resolve within the ordinary per-event chain plus one
// deferred callback when a candidate combo has some, but not all, of
// its members down.
type Pipeline struct {
	combos  []*combo
	pending *combo
}

// New returns a Pipeline configured with cfgs.
func New(cfgs []Config) *Pipeline {
	p := &Pipeline{}
	for _, cfg := range cfgs {
		p.combos = append(p.combos, &combo{cfg: cfg, pressed: make([]bool, len(cfg.Keys))})
	}
	return p
}

// Process implements monkeyboard.PhysicalPipeline.
func (p *Pipeline) Process(params *mb.PhysicalCallbackParams, actions mb.PhysicalActions, ret mb.ReturnActions) {
	if params.CallbackType == mb.CallbackTimer {
		p.resolvePending(actions, ret)
		return
	}
	if params.KeyEvent == nil {
		return
	}
	ev := params.KeyEvent

	for _, c := range p.combos {
		if c.state != active {
			continue
		}
		if c.indexOf(ev.Keypos) < 0 {
			continue
		}
		// A member of an already-resolved combo: its press/release
		// pair was already removed from the history at activation
		// time, so in the ordinary case this is unreachable. Swallow
		// defensively rather than let a stray event escape.
		actions.RemovePhysicalPressAndRelease(ev.Keypos)
		ret.MarkAsProcessed()
		if !ev.IsPress {
			c.state = waiting
		}
		return
	}

	if !ev.IsPress {
		for _, c := range p.combos {
			if c.state != waiting {
				continue
			}
			if i := c.indexOf(ev.Keypos); i >= 0 && c.pressed[i] {
				c.pressed[i] = false
				if c == p.pending && !c.anyPressed() {
					p.pending = nil
				}
				ret.MarkAsProcessed()
				return
			}
		}
		ret.NoCapture()
		return
	}

	var best *combo
	for _, c := range p.combos {
		if c.state != waiting {
			continue
		}
		i := c.indexOf(ev.Keypos)
		if i < 0 {
			continue
		}
		c.pressed[i] = true
		if best == nil || len(c.cfg.Keys) > len(best.cfg.Keys) {
			best = c
		}
	}
	if best == nil {
		ret.NoCapture()
		return
	}
	if best.allPressed() {
		p.activate(best, actions)
		p.pending = nil
		ret.MarkAsProcessed()
		return
	}
	p.pending = best
	ret.MarkAsProcessed()
	ret.NoCaptureWithDeferredCallback()
}

func (p *Pipeline) activate(c *combo, actions mb.PhysicalActions) {
	for _, keypos := range c.cfg.Keys {
		actions.RemovePhysicalPressAndRelease(keypos)
	}
	actions.TapKey(c.cfg.Output)
	c.state = active
	for i := range c.pressed {
		c.pressed[i] = false
	}
}

// resolvePending is invoked once the tolerance window for the last
// partially-pressed combo candidate elapses. If every member ended up
// pressed in the meantime it still activates; otherwise the candidate
// is abandoned and its partial presses are simply dropped (they were
// already marked processed when they arrived, so there is nothing left
// to deliver for them).
func (p *Pipeline) resolvePending(actions mb.PhysicalActions, ret mb.ReturnActions) {
	ret.NoCapture()
	c := p.pending
	p.pending = nil
	if c == nil {
		return
	}
	if c.allPressed() {
		p.activate(c, actions)
		return
	}
	for i := range c.pressed {
		c.pressed[i] = false
	}
}

// Reset clears every combo back to its waiting state.
func (p *Pipeline) Reset() {
	p.pending = nil
	for _, c := range p.combos {
		c.state = waiting
		for i := range c.pressed {
			c.pressed[i] = false
		}
	}
}
