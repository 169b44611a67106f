//go:build linux && !rowcol

// Package evdevscan is a matrix-scanner implementation that reads raw
// key events straight from a Linux evdev device node
// (/dev/input/eventN), the way quillaja's kbd package and
// andrieee44/mylib's linux/input package both do, instead of a real
// keyswitch matrix. It exists for host-side demos and manual testing:
// pressing a key on the attached keyboard drives the same
// monkeyboard.Executor.ProcessKey entry point a firmware scan loop
// would.
package evdevscan

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	mb "github.com/soycabanillas/monkeyboard-go"
)

// eviocgrab is the evdev ioctl that claims (or releases, with arg 0)
// exclusive delivery of a device's events to this file descriptor, so
// a running desktop session doesn't also see the keys this scanner
// consumes. See linux/input.h EVIOCGRAB.
const eviocgrab = 0x40044590

// evKey is the Linux input-event type for key and button state
// changes; see linux/input.h EV_KEY.
const evKey = 1

// autorepeat is the event value the kernel uses for a key that's being
// held down and re-reported, rather than pressed or released.
const autorepeat = 2

// inputEvent mirrors struct input_event from linux/input.h on a
// 64-bit time_t platform.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Scanner reads input_event records off an evdev device node and
// translates EV_KEY events into AbsKeyEvent, treating the event's own
// code as the flat Keypos index.
type Scanner struct {
	file *os.File
	base int64
	seen bool
}

// Open opens the evdev device node at path.
func Open(path string) (*Scanner, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("evdevscan: open %s: %w", path, err)
	}
	return &Scanner{file: f}, nil
}

// Close releases the underlying device node.
func (s *Scanner) Close() error {
	return s.file.Close()
}

// Grab claims or releases exclusive delivery of the device's events to
// this scanner via EVIOCGRAB, so the host's own window system stops
// seeing keys this scanner already consumed.
func (s *Scanner) Grab(exclusive bool) error {
	var arg int
	if exclusive {
		arg = 1
	}
	return unix.IoctlSetInt(int(s.file.Fd()), eviocgrab, arg)
}

// Run reads events until the device is closed or a read fails,
// invoking handle for every press or release. Autorepeat events are
// dropped; every other EV_KEY code is delivered.
func (s *Scanner) Run(handle func(mb.AbsKeyEvent)) error {
	var ev inputEvent
	for {
		if err := binary.Read(s.file, binary.LittleEndian, &ev); err != nil {
			return err
		}
		if ev.Type != evKey || ev.Value == autorepeat {
			continue
		}
		handle(mb.AbsKeyEvent{
			Keypos:  mb.Keypos(ev.Code),
			IsPress: ev.Value == 1,
			Time:    s.millis(ev.Sec, ev.Usec),
		})
	}
}

// millis converts the device's absolute timestamp into a millisecond
// Time relative to the first event seen, so the wrapping clock starts
// near zero instead of near a multi-decade epoch offset.
func (s *Scanner) millis(sec, usec int64) mb.Time {
	abs := sec*1000 + usec/1000
	if !s.seen {
		s.base = abs
		s.seen = true
	}
	return mb.Time(uint32(abs - s.base))
}
