package monkeyboard

// PressBufferCapacity is the maximum number of simultaneously held keys
// the press buffer can track.
const PressBufferCapacity = 10

// PressRecord is one currently-held physical key. It carries the
// keycode resolved at press time, so a release always reports the same
// keycode regardless of any layer change that happens while the key is
// down, and the press_id that links it back to its originating event
// even after that event has been consumed out of the event buffer.
type PressRecord struct {
	Keypos        Keypos
	PressID       uint8
	Keycode       Keycode
	IgnoreRelease bool
}

// PressBuffer holds the set of keys currently physically down, keyed by
// keypos. At most one record exists per keypos (invariant P1) and
// press ids are unique across all live records (invariant P2).
// Iteration and removal preserve insertion order: the buffer always
// reports its oldest-held key first.
type PressBuffer struct {
	records [PressBufferCapacity]PressRecord
	n       int
}

// NewPressBuffer returns an empty press buffer.
func NewPressBuffer() *PressBuffer {
	return &PressBuffer{}
}

// Len reports the number of live records.
func (pb *PressBuffer) Len() int {
	return pb.n
}

// Add inserts a new record for keypos. It fails (returning nil) if a
// record for keypos already exists or the buffer is already at
// PressBufferCapacity.
func (pb *PressBuffer) Add(keypos Keypos, keycode Keycode, pressID uint8) *PressRecord {
	for i := 0; i < pb.n; i++ {
		if KeyposEqual(pb.records[i].Keypos, keypos) {
			return nil
		}
	}
	if pb.n >= PressBufferCapacity {
		return nil
	}
	pb.records[pb.n] = PressRecord{Keypos: keypos, PressID: pressID, Keycode: keycode}
	pb.n++
	return &pb.records[pb.n-1]
}

// Remove deletes the record matching keypos, shifting later records
// down to preserve order. It reports whether a record was found.
func (pb *PressBuffer) Remove(keypos Keypos) bool {
	for i := 0; i < pb.n; i++ {
		if KeyposEqual(pb.records[i].Keypos, keypos) {
			copy(pb.records[i:pb.n-1], pb.records[i+1:pb.n])
			pb.n--
			return true
		}
	}
	return false
}

// FindByKeypos returns the live record for keypos, or nil.
func (pb *PressBuffer) FindByKeypos(keypos Keypos) *PressRecord {
	for i := 0; i < pb.n; i++ {
		if KeyposEqual(pb.records[i].Keypos, keypos) {
			return &pb.records[i]
		}
	}
	return nil
}

// FindByPressID returns the live record carrying pressID, or nil.
func (pb *PressBuffer) FindByPressID(pressID uint8) *PressRecord {
	for i := 0; i < pb.n; i++ {
		if pb.records[i].PressID == pressID {
			return &pb.records[i]
		}
	}
	return nil
}

// MarkIgnoreRelease sets the ignore-release flag on the record carrying
// pressID, causing its eventual release to be suppressed rather than
// turned into a release event. Reports whether a matching record was
// found.
func (pb *PressBuffer) MarkIgnoreRelease(pressID uint8) bool {
	for i := 0; i < pb.n; i++ {
		if pb.records[i].PressID == pressID {
			pb.records[i].IgnoreRelease = true
			return true
		}
	}
	return false
}

// All returns the live records in insertion (oldest-first) order. The
// returned slice aliases the buffer's backing array and is only valid
// until the next mutating call.
func (pb *PressBuffer) All() []PressRecord {
	return pb.records[:pb.n]
}

// Reset empties the buffer.
func (pb *PressBuffer) Reset() {
	pb.n = 0
}
