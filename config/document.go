// Package config loads tap-dance, combo, one-shot-modifier and
// key-replacer pipeline configuration from YAML, for host-side tools
// and tests that want to express a pipeline setup as data instead of
// constructing transform.*.Config values directly in Go.
package config

import (
	"fmt"

	mb "github.com/soycabanillas/monkeyboard-go"
	"github.com/soycabanillas/monkeyboard-go/keymap"
	"github.com/soycabanillas/monkeyboard-go/transform/combo"
	"github.com/soycabanillas/monkeyboard-go/transform/oneshot"
	"github.com/soycabanillas/monkeyboard-go/transform/replacer"
	"github.com/soycabanillas/monkeyboard-go/transform/tapdance"
)

type document struct {
	TapDances []tapDanceDoc `yaml:"tap_dances"`
	Combos    []comboDoc    `yaml:"combos"`
	OneShots  []oneShotDoc  `yaml:"one_shot_modifiers"`
	Replacers []replacerDoc `yaml:"key_replacers"`
}

type tapDanceDoc struct {
	Key           string         `yaml:"key"`
	TapActions    map[int]string `yaml:"tap_actions"`
	HoldAction    string         `yaml:"hold_action"`
	TapTimeoutMs  uint32         `yaml:"tap_timeout_ms"`
	HoldTimeoutMs uint32         `yaml:"hold_timeout_ms"`
	Mode          string         `yaml:"resolution_mode"`
}

type comboDoc struct {
	Keys   []string `yaml:"keys"`
	Output string   `yaml:"output"`
}

type oneShotDoc struct {
	Trigger   string   `yaml:"trigger"`
	Modifiers []string `yaml:"modifiers"`
}

type replacerDoc struct {
	Keycode     string   `yaml:"keycode"`
	PressOutput []string `yaml:"press_output"`
}

// Pipelines is the parsed, ready-to-install configuration: one
// *tapdance.Pipeline per configured key, one *combo.Pipeline covering
// every configured combo, one *oneshot.Pipeline covering every
// configured one-shot pair, and one *replacer.Pipeline covering every
// configured replacement rule.
type Pipelines struct {
	TapDances []*tapdance.Pipeline
	Combo     *combo.Pipeline
	OneShot   *oneshot.Pipeline
	Replacer  *replacer.Pipeline
}

// Load parses data as YAML pipeline configuration.
func Load(data []byte) (*Pipelines, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	out := &Pipelines{}

	for _, td := range doc.TapDances {
		cfg, err := resolveTapDance(td)
		if err != nil {
			return nil, err
		}
		out.TapDances = append(out.TapDances, tapdance.New(cfg))
	}

	if len(doc.Combos) > 0 {
		var cfgs []combo.Config
		for _, c := range doc.Combos {
			cfg, err := resolveCombo(c)
			if err != nil {
				return nil, err
			}
			cfgs = append(cfgs, cfg)
		}
		out.Combo = combo.New(cfgs)
	}

	if len(doc.OneShots) > 0 {
		var pairs []oneshot.Pair
		for _, o := range doc.OneShots {
			pair, err := resolveOneShot(o)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
		out.OneShot = oneshot.New(pairs)
	}

	if len(doc.Replacers) > 0 {
		var rules []replacer.Rule
		for _, r := range doc.Replacers {
			rule, err := resolveReplacer(r)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		out.Replacer = replacer.New(rules)
	}

	return out, nil
}

func resolveTapDance(td tapDanceDoc) (tapdance.Config, error) {
	keypos, err := parseKeypos(td.Key)
	if err != nil {
		return tapdance.Config{}, err
	}
	cfg := tapdance.Config{
		Key:           keypos,
		TapTimeoutMs:  td.TapTimeoutMs,
		HoldTimeoutMs: td.HoldTimeoutMs,
		Mode:          resolveMode(td.Mode),
	}
	if td.TapActions != nil {
		cfg.TapActions = make(map[int]tapdance.Action, len(td.TapActions))
		for count, raw := range td.TapActions {
			action, err := resolveAction(raw)
			if err != nil {
				return tapdance.Config{}, err
			}
			cfg.TapActions[count] = action
		}
	}
	if td.HoldAction != "" {
		action, err := resolveAction(td.HoldAction)
		if err != nil {
			return tapdance.Config{}, err
		}
		cfg.HoldAction = action
	}
	return cfg, nil
}

func resolveCombo(c comboDoc) (combo.Config, error) {
	keys := make([]mb.Keypos, len(c.Keys))
	for i, raw := range c.Keys {
		keypos, err := parseKeypos(raw)
		if err != nil {
			return combo.Config{}, err
		}
		keys[i] = keypos
	}
	output, err := keymap.ParseKeycodeName(c.Output)
	if err != nil {
		return combo.Config{}, err
	}
	return combo.Config{Keys: keys, Output: output}, nil
}

func resolveOneShot(o oneShotDoc) (oneshot.Pair, error) {
	trigger, err := keymap.ParseKeycodeName(o.Trigger)
	if err != nil {
		return oneshot.Pair{}, err
	}
	var mods uint8
	for _, name := range o.Modifiers {
		bit, err := modifierBit(name)
		if err != nil {
			return oneshot.Pair{}, err
		}
		mods |= bit
	}
	return oneshot.Pair{Trigger: trigger, Modifiers: mods}, nil
}

func resolveReplacer(r replacerDoc) (replacer.Rule, error) {
	trigger, err := keymap.ParseKeycodeName(r.Keycode)
	if err != nil {
		return replacer.Rule{}, err
	}
	replacement := make([]mb.Keycode, len(r.PressOutput))
	for i, name := range r.PressOutput {
		kc, err := keymap.ParseKeycodeName(name)
		if err != nil {
			return replacer.Rule{}, err
		}
		replacement[i] = kc
	}
	return replacer.Rule{Keycode: trigger, Replacement: replacement}, nil
}

// resolveAction parses either a bare keycode name or "layer:N" into a
// tapdance.Action.
func resolveAction(raw string) (tapdance.Action, error) {
	var layer uint8
	if parseLayerRef(raw, &layer) {
		return tapdance.Action{PushLayer: true, Layer: layer}, nil
	}
	kc, err := keymap.ParseKeycodeName(raw)
	if err != nil {
		return tapdance.Action{}, err
	}
	return tapdance.Action{Keycode: kc}, nil
}

func resolveMode(raw string) tapdance.ResolutionMode {
	switch raw {
	case "TapPreferred":
		return tapdance.TapPreferred
	case "Balanced":
		return tapdance.Balanced
	default:
		return tapdance.HoldPreferred
	}
}

func modifierBit(name string) (uint8, error) {
	switch name {
	case "LCTL":
		return mb.ModLCTL, nil
	case "LSFT":
		return mb.ModLSFT, nil
	case "LALT":
		return mb.ModLALT, nil
	case "LGUI":
		return mb.ModLGUI, nil
	case "RCTL":
		return mb.ModRCTL, nil
	case "RSFT":
		return mb.ModRSFT, nil
	case "RALT":
		return mb.ModRALT, nil
	case "RGUI":
		return mb.ModRGUI, nil
	default:
		return 0, fmt.Errorf("config: unknown modifier %q", name)
	}
}
