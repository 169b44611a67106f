//go:build rowcol

package keymap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a row/col keymap: the matrix
// dimensions, plus one flattened list of keycode tokens per layer (in
// row-major order).
type document struct {
	Rows   int        `yaml:"rows"`
	Cols   int        `yaml:"cols"`
	Layers [][]string `yaml:"layers"`
}

// LoadRowColYAML parses a YAML keymap document into a RowCol keymap.
func LoadRowColYAML(data []byte) (*RowCol, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("keymap: parse yaml: %w", err)
	}
	var flat []string
	for _, layer := range doc.Layers {
		flat = append(flat, layer...)
	}
	resolved, err := resolveFlat(flat)
	if err != nil {
		return nil, err
	}
	return NewRowCol(doc.Rows, doc.Cols, resolved), nil
}
