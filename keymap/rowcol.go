//go:build rowcol

package keymap

import mb "github.com/soycabanillas/monkeyboard-go"

// RowCol is a keymap source over (row, col) keypos, matching the
// "2-D row/col" keymap loader contract: the keycode at a given layer
// and keypos is layers[layer*rows*cols + row*cols + col].
type RowCol struct {
	rows, cols int
	layers     []mb.Keycode
}

// NewRowCol returns a RowCol keymap for a rows x cols matrix, backed
// by the flattened layers slice described above.
func NewRowCol(rows, cols int, layers []mb.Keycode) *RowCol {
	return &RowCol{rows: rows, cols: cols, layers: layers}
}

// KeycodeAt implements monkeyboard.Keymap.
func (r *RowCol) KeycodeAt(layer uint8, keypos mb.Keypos) mb.Keycode {
	if r.rows == 0 || r.cols == 0 || int(keypos.Row) >= r.rows || int(keypos.Col) >= r.cols {
		return 0
	}
	idx := int(layer)*r.rows*r.cols + int(keypos.Row)*r.cols + int(keypos.Col)
	if idx < 0 || idx >= len(r.layers) {
		return 0
	}
	return r.layers[idx]
}

// NumLayers reports how many layers this keymap holds.
func (r *RowCol) NumLayers() int {
	if r.rows == 0 || r.cols == 0 {
		return 0
	}
	return len(r.layers) / (r.rows * r.cols)
}
