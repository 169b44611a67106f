//go:build !rowcol

package keymap

import mb "github.com/soycabanillas/monkeyboard-go"

// Flat is a keymap source over flat keypos indices: the keycode at a
// given layer and keypos is layers[layer][keypos], matching the
// "Flat 1-D" keymap loader contract.
type Flat struct {
	layers [][]mb.Keycode
}

// NewFlat returns a Flat keymap backed by layers, indexed
// layers[layer][keypos]. Layers need not all be the same length;
// KeycodeAt returns 0 for any layer or keypos out of range for the
// slice it indexes into.
func NewFlat(layers [][]mb.Keycode) *Flat {
	return &Flat{layers: layers}
}

// KeycodeAt implements monkeyboard.Keymap.
func (f *Flat) KeycodeAt(layer uint8, keypos mb.Keypos) mb.Keycode {
	if int(layer) >= len(f.layers) {
		return 0
	}
	row := f.layers[layer]
	if int(keypos) >= len(row) {
		return 0
	}
	return row[keypos]
}

// NumLayers reports how many layers this keymap holds.
func (f *Flat) NumLayers() int {
	return len(f.layers)
}
