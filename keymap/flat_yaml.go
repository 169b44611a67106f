//go:build !rowcol

package keymap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a flat keymap: one list of keycode
// tokens per layer, in keypos order.
type document struct {
	Layers [][]string `yaml:"layers"`
}

// LoadFlatYAML parses a YAML keymap document into a Flat keymap. Each
// entry of each layer is resolved through ParseKeycodeName.
func LoadFlatYAML(data []byte) (*Flat, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("keymap: parse yaml: %w", err)
	}
	layers, err := resolveLayers(doc.Layers)
	if err != nil {
		return nil, err
	}
	return NewFlat(layers), nil
}
