package debuglog

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// transformRune runs a single rune through enc's encoder, the same way
// simulation.go drives its charset conversion through a
// transform.Transformer rather than hand-rolling byte conversion.
func transformRune(enc encoding.Encoding, r rune) (string, int, error) {
	out, n, err := transform.String(enc.NewEncoder(), string(r))
	return out, n, err
}
