//go:build rowcol

package config

import (
	"fmt"
	"strconv"
	"strings"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// parseKeypos accepts "row,col", matching this build's Keypos
// representation.
func parseKeypos(raw string) (mb.Keypos, error) {
	row, col, found := strings.Cut(raw, ",")
	if !found {
		return mb.Keypos{}, fmt.Errorf("config: invalid keypos %q, want \"row,col\"", raw)
	}
	r, err := strconv.ParseUint(row, 10, 8)
	if err != nil {
		return mb.Keypos{}, fmt.Errorf("config: invalid keypos row %q: %w", row, err)
	}
	c, err := strconv.ParseUint(col, 10, 8)
	if err != nil {
		return mb.Keypos{}, fmt.Errorf("config: invalid keypos col %q: %w", col, err)
	}
	return mb.Keypos{Row: uint8(r), Col: uint8(c)}, nil
}
