//go:build !rowcol

package config

import (
	"fmt"
	"strconv"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// parseKeypos accepts a plain decimal flat index, matching this
// build's Keypos representation.
func parseKeypos(raw string) (mb.Keypos, error) {
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("config: invalid keypos %q: %w", raw, err)
	}
	return mb.Keypos(n), nil
}
