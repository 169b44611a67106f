package config

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func parseDocument(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// parseLayerRef recognizes the "layer:N" action shorthand; ok is false
// for anything else (a bare keycode name).
func parseLayerRef(raw string, layer *uint8) bool {
	rest, found := strings.CutPrefix(raw, "layer:")
	if !found {
		return false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return false
	}
	*layer = uint8(n)
	return true
}
