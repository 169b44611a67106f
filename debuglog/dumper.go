// Package debuglog formats buffer snapshots for diagnostic output. It
// mirrors the print_key_event_buffer/print_key_press_buffer dumps the
// firmware core gates behind a debug build flag, but as an explicit,
// opt-in Dumper rather than a compile-time macro: nothing in this
// package runs unless a caller creates a Dumper, enables it and passes
// it a buffer. The Executor has no Dumper hook and never calls one.
package debuglog

import (
	"fmt"
	"io"
	"strings"

	gdencoding "github.com/gdamore/encoding"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// Dumper formats press-buffer and event-buffer snapshots as aligned
// tables and writes them to an underlying sink. The zero value writes
// nothing until given a Writer via NewDumper; Enabled defaults to
// false, so a Dumper writes nothing until the caller opts in with
// Enable.
type Dumper struct {
	w       io.Writer
	Enabled bool
	narrow  encoding.Encoding
}

// NewDumper returns a disabled Dumper writing to w. Call Enable to
// turn it on.
func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w, narrow: gdencoding.ISO8859_1}
}

// Enable turns dumping on.
func (d *Dumper) Enable() { d.Enabled = true }

// Disable turns dumping off.
func (d *Dumper) Disable() { d.Enabled = false }

// SetNarrowEncoding overrides the charmap used to transliterate
// Unicode-keycode codepoints for sinks that cannot carry UTF-8 (e.g. a
// legacy debug UART). Passing nil restores the default.
func (d *Dumper) SetNarrowEncoding(enc encoding.Encoding) {
	if enc == nil {
		enc = gdencoding.ISO8859_1
	}
	d.narrow = enc
}

func (d *Dumper) printf(format string, args ...interface{}) {
	if !d.Enabled || d.w == nil {
		return
	}
	fmt.Fprintf(d.w, format, args...)
}

// pad right-pads s with spaces to display width n, using runewidth so
// wide or transliterated glyphs still line up in a monospace dump.
func pad(s string, n int) string {
	w := runewidth.StringWidth(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

func (d *Dumper) keycodeCell(kc mb.Keycode) string {
	if mb.KindOf(kc) != mb.KindUnicode {
		return fmt.Sprintf("0x%06X", uint32(kc))
	}
	r := mb.Unicode(kc)
	out, _, err := transformRune(d.narrow, r)
	if err != nil {
		return fmt.Sprintf("U+%04X(?)", r)
	}
	return fmt.Sprintf("U+%04X(%s)", r, out)
}

// DumpPressBuffer writes one row per live press record: keypos,
// press-id, keycode and the ignore-release flag.
func (d *Dumper) DumpPressBuffer(pb *mb.PressBuffer) {
	if !d.Enabled {
		return
	}
	d.printf("press_buffer (%d live):\n", pb.Len())
	for _, rec := range pb.All() {
		d.printf("  %s  id=%s  kc=%s  ignore_release=%v\n",
			pad(fmt.Sprintf("%v", rec.Keypos), 10),
			pad(fmt.Sprintf("%d", rec.PressID), 4),
			pad(d.keycodeCell(rec.Keycode), 14),
			rec.IgnoreRelease)
	}
}

// DumpEventBuffer writes one row per live event record: keypos,
// kind (press/release), keycode, press-id and time.
func (d *Dumper) DumpEventBuffer(eb *mb.EventBuffer) {
	if !d.Enabled {
		return
	}
	d.printf("event_buffer (%d live):\n", eb.Len())
	for _, rec := range eb.All() {
		kind := "release"
		if rec.IsPress {
			kind = "press"
		}
		d.printf("  %s  %s  kc=%s  id=%s  t=%d\n",
			pad(fmt.Sprintf("%v", rec.Keypos), 10),
			pad(kind, 8),
			pad(d.keycodeCell(rec.Keycode), 14),
			pad(fmt.Sprintf("%d", rec.PressID), 4),
			uint32(rec.Time))
	}
}
