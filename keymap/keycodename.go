package keymap

import (
	"fmt"
	"strconv"
	"strings"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// basicNames maps the symbolic names recognized in a keymap document to
// their HID usage byte. It covers the letters, digits and the small set
// of named keys a tap-dance/combo output is typically bound to; it is
// deliberately not exhaustive.
var basicNames = func() map[string]uint8 {
	m := map[string]uint8{
		"ENTER": 0x28, "ESC": 0x29, "BSPC": 0x2A, "TAB": 0x2B, "SPACE": 0x2C,
		"MINUS": 0x2D, "EQUAL": 0x2E, "LBRC": 0x2F, "RBRC": 0x30,
		"SCLN": 0x33, "QUOT": 0x34, "GRV": 0x35, "COMM": 0x36, "DOT": 0x37, "SLSH": 0x38,
		"CAPS": 0x39,
	}
	for i := 0; i < 26; i++ {
		m[string(rune('A'+i))] = uint8(0x04 + i)
	}
	for i := 1; i <= 9; i++ {
		m[strconv.Itoa(i)] = uint8(0x1E + i - 1)
	}
	m["0"] = 0x27
	for i := 1; i <= 12; i++ {
		m[fmt.Sprintf("F%d", i)] = uint8(0x3A + i - 1)
	}
	return m
}()

var modWrappers = map[string]uint8{
	"LCTL": mb.ModLCTL, "LSFT": mb.ModLSFT, "LALT": mb.ModLALT, "LGUI": mb.ModLGUI,
	"RCTL": mb.ModRCTL, "RSFT": mb.ModRSFT, "RALT": mb.ModRALT, "RGUI": mb.ModRGUI,
}

// ParseKeycodeName resolves one keymap-document token into a Keycode.
// Recognized forms: a bare basic-key name ("A", "ENTER", "F1"); a
// modifier wrapper applied to one inner token ("LCTL(A)", nestable);
// "UNICODE(<codepoint>)"; "CUSTOM(<id>)"; a bare decimal or 0x-prefixed
// hex literal taken as a raw Keycode value; or "" / "KC_NO" for 0. The
// single digits "0" to "9" are basic-key names (the digit keys), not
// raw values.
func ParseKeycodeName(token string) (mb.Keycode, error) {
	token = strings.TrimSpace(token)
	if token == "" || token == "KC_NO" {
		return 0, nil
	}
	if open := strings.IndexByte(token, '('); open >= 0 && strings.HasSuffix(token, ")") {
		head := strings.ToUpper(token[:open])
		inner := token[open+1 : len(token)-1]
		switch head {
		case "UNICODE":
			cp, err := strconv.ParseInt(inner, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("keymap: bad unicode token %q: %w", token, err)
			}
			return mb.MakeUnicode(rune(cp)), nil
		case "CUSTOM":
			id, err := strconv.ParseUint(inner, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("keymap: bad custom token %q: %w", token, err)
			}
			return mb.MakeCustom(uint32(id)), nil
		default:
			bit, ok := modWrappers[head]
			if !ok {
				return 0, fmt.Errorf("keymap: unknown wrapper %q", head)
			}
			inn, err := ParseKeycodeName(inner)
			if err != nil {
				return 0, err
			}
			return mb.MakeModified(mb.Basic(inn), mb.Modifiers(inn)|bit), nil
		}
	}
	if usage, ok := basicNames[strings.ToUpper(token)]; ok {
		return mb.Keycode(usage), nil
	}
	n, err := strconv.ParseUint(token, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("keymap: unknown keycode token %q", token)
	}
	return mb.Keycode(n), nil
}

// resolveLayers parses a document's [][]string token grid into
// [][]mb.Keycode, row by row.
func resolveLayers(raw [][]string) ([][]mb.Keycode, error) {
	out := make([][]mb.Keycode, len(raw))
	for i, row := range raw {
		resolved := make([]mb.Keycode, len(row))
		for j, tok := range row {
			kc, err := ParseKeycodeName(tok)
			if err != nil {
				return nil, fmt.Errorf("keymap: layer %d keypos %d: %w", i, j, err)
			}
			resolved[j] = kc
		}
		out[i] = resolved
	}
	return out, nil
}

// resolveFlat parses a flat string token list into []mb.Keycode.
func resolveFlat(raw []string) ([]mb.Keycode, error) {
	out := make([]mb.Keycode, len(raw))
	for i, tok := range raw {
		kc, err := ParseKeycodeName(tok)
		if err != nil {
			return nil, fmt.Errorf("keymap: keypos %d: %w", i, err)
		}
		out[i] = kc
	}
	return out, nil
}
