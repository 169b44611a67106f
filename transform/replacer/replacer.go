// Package replacer implements the key replacer transformation: a 1:N
// substitution of one virtual keycode for a list of replacement
// keycodes, by identity. The triggering keycode is ordinarily a custom
// (function-id) keycode, so it carries no HID meaning of its own and
// only the replacements reach the reporter.
package replacer

import mb "github.com/soycabanillas/monkeyboard-go"

// Rule maps one triggering keycode to the keycodes it expands into.
type Rule struct {
	Keycode     mb.Keycode
	Replacement []mb.Keycode
}

// Pipeline is a VirtualPipeline implementing key replacement.
type Pipeline struct {
	rules map[mb.Keycode][]mb.Keycode
}

// New returns a Pipeline configured with rules.
func New(rules []Rule) *Pipeline {
	m := make(map[mb.Keycode][]mb.Keycode, len(rules))
	for _, r := range rules {
		m[r.Keycode] = r.Replacement
	}
	return &Pipeline{rules: m}
}

// Process implements monkeyboard.VirtualPipeline.
func (p *Pipeline) Process(params *mb.VirtualCallbackParams, actions mb.VirtualActions) {
	replacement, ok := p.rules[params.Keycode]
	if !ok {
		return
	}
	if params.IsPress {
		for _, kc := range replacement {
			actions.AddTap(kc)
		}
	} else {
		for _, kc := range replacement {
			actions.AddUntap(kc)
		}
	}
}

// Reset is a no-op: the replacement table is static configuration, not
// per-sequence state.
func (p *Pipeline) Reset() {}
