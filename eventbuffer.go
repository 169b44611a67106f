package monkeyboard

// EventBufferCapacity is the maximum number of event records the event
// buffer retains.
const EventBufferCapacity = 20

// EventRecord is one entry in the replayable physical-event history.
// Several records may share a keypos (a key pressed and released more
// than once lives on as multiple records until consumed or trimmed).
type EventRecord struct {
	Keypos  Keypos
	Keycode Keycode
	IsPress bool
	Time    Time
	PressID uint8
}

// LayerLookup resolves a keypos to a keycode at a given layer. The
// layer manager implements this; EventBuffer only depends on the
// narrow interface so it never needs to import it back.
type LayerLookup interface {
	Lookup(layer uint8, keypos Keypos) Keycode
	CurrentLayer() uint8
}

// EventBuffer owns a PressBuffer and layers a replayable, ordered
// history of press/release events on top of it. Pipelines scan the
// history (possibly more than once) to recognize patterns like
// hold-vs-tap or combos; the press buffer underneath exists so a
// release can still be linked to its originating press_id even after
// the press record has been consumed out of the history.
type EventBuffer struct {
	records [EventBufferCapacity]EventRecord
	n       int
	press   *PressBuffer
	layers  LayerLookup
	lastID  uint8
}

// NewEventBuffer returns an empty event buffer backed by a fresh press
// buffer, resolving keycodes against layers.
func NewEventBuffer(layers LayerLookup) *EventBuffer {
	return &EventBuffer{press: NewPressBuffer(), layers: layers}
}

// Press returns the underlying press buffer.
func (eb *EventBuffer) Press() *PressBuffer {
	return eb.press
}

// Len reports the number of live event records.
func (eb *EventBuffer) Len() int {
	return eb.n
}

// At returns a pointer to the event record at position, or nil if out
// of range. The pointer is only valid until the next mutating call.
func (eb *EventBuffer) At(position int) *EventRecord {
	if position < 0 || position >= eb.n {
		return nil
	}
	return &eb.records[position]
}

// All returns the live records in arrival order. The returned slice
// aliases the buffer's backing array and is only valid until the next
// mutating call.
func (eb *EventBuffer) All() []EventRecord {
	return eb.records[:eb.n]
}

// allocatePressID draws the next press id from 1..=255, skipping any
// id currently live in either the press buffer or the event buffer.
// The press buffer is scanned newest-first, and so is the event
// buffer; whenever the candidate advances because of a collision with
// the event buffer, the event-buffer scan restarts from its newest
// entry, matching the reference allocator's two nested retry loops.
// The combined live set never exceeds PressBufferCapacity +
// EventBufferCapacity, so termination is guaranteed.
func (eb *EventBuffer) allocatePressID() uint8 {
	for {
		eb.lastID = eb.lastID%255 + 1
		collided := false
		for i := eb.press.n - 1; i >= 0; i-- {
			if eb.press.records[i].PressID == eb.lastID {
				collided = true
				break
			}
		}
		if collided {
			continue
		}
		for i := eb.n - 1; i >= 0; i-- {
			if eb.records[i].PressID == eb.lastID {
				collided = true
				break
			}
		}
		if !collided {
			return eb.lastID
		}
	}
}

func (eb *EventBuffer) appendEvent(keypos Keypos, keycode Keycode, isPress bool, pressID uint8, t Time) bool {
	if eb.n >= EventBufferCapacity {
		return false
	}
	eb.records[eb.n] = EventRecord{Keypos: keypos, Keycode: keycode, IsPress: isPress, Time: t, PressID: pressID}
	eb.n++
	return true
}

// AddPhysicalPress resolves keypos against the current layer,
// allocates a fresh press id, and atomically records both a press in
// the press buffer and a press event in the history. On any failure
// (duplicate keypos, press buffer full, or event buffer full) neither
// buffer is left holding a partial record, and AddPhysicalPress
// returns a zero press id with bufferFull set when capacity was the
// cause.
func (eb *EventBuffer) AddPhysicalPress(t Time, keypos Keypos) (pressID uint8, bufferFull bool) {
	id := eb.allocatePressID()
	layer := eb.layers.CurrentLayer()
	keycode := eb.layers.Lookup(layer, keypos)

	rec := eb.press.Add(keypos, keycode, id)
	if rec == nil {
		return 0, eb.press.n >= PressBufferCapacity
	}
	if !eb.appendEvent(keypos, keycode, true, id, t) {
		eb.press.Remove(keypos)
		return 0, true
	}
	return id, false
}

// AddPhysicalRelease looks up keypos in the press buffer. If no press
// is held there, the release is a misfire and is silently dropped
// (false, no buffer-full). If the held press has ignore_release set,
// the release is suppressed and the press record is simply dropped
// (false). Otherwise a release event is appended carrying the held
// press's press_id and keycode, and the press record is removed; if
// appending the event fails for lack of capacity, the press record is
// still removed (the release is lost, but no dangling state remains).
func (eb *EventBuffer) AddPhysicalRelease(t Time, keypos Keypos) (ok bool, bufferFull bool) {
	rec := eb.press.FindByKeypos(keypos)
	if rec == nil {
		return false, false
	}
	if rec.IgnoreRelease {
		eb.press.Remove(keypos)
		return false, false
	}
	keycode := rec.Keycode
	pressID := rec.PressID
	added := eb.appendEvent(keypos, keycode, false, pressID, t)
	eb.press.Remove(keypos)
	if !added {
		return false, true
	}
	return true, false
}

// RemoveEventKeys truncates the event history to empty, leaving the
// press buffer untouched.
func (eb *EventBuffer) RemoveEventKeys() {
	eb.n = 0
}

func (eb *EventBuffer) removeAt(position int) {
	copy(eb.records[position:eb.n-1], eb.records[position+1:eb.n])
	eb.n--
}

func (eb *EventBuffer) findByPressIDAndKind(pressID uint8, isPress bool) (int, bool) {
	for i := eb.n - 1; i >= 0; i-- {
		if eb.records[i].PressID == pressID && eb.records[i].IsPress == isPress {
			return i, true
		}
	}
	return 0, false
}

// RemovePressEventByPressID scans the history newest-first for the
// press record carrying pressID and removes it, returning its former
// position for use as a pipeline replay cursor. Returns found=false if
// no such record exists.
func (eb *EventBuffer) RemovePressEventByPressID(pressID uint8) (position int, found bool) {
	if pos, ok := eb.findByPressIDAndKind(pressID, true); ok {
		eb.removeAt(pos)
		return pos, true
	}
	return 0, false
}

// RemoveReleaseEventByPressID scans the history newest-first for the
// release record carrying pressID and removes it. If no release record
// exists yet, it falls back to marking the live press-buffer record
// (if any) with ignore_release, so the eventual real release never
// gets reported either.
func (eb *EventBuffer) RemoveReleaseEventByPressID(pressID uint8) (position int, found bool) {
	if pos, ok := eb.findByPressIDAndKind(pressID, false); ok {
		eb.removeAt(pos)
		return pos, true
	}
	return 0, eb.press.MarkIgnoreRelease(pressID)
}

// ChangeKeycode updates the keycode associated with pressID everywhere
// it is still visible: the live press-buffer record (if any), the
// press event-record (if still present), and any release event-record
// that follows it in this call. A release record whose matching press
// record is no longer in the history keeps whatever keycode it already
// holds - the press has already been processed, and without it there
// is nothing to say the new keycode should apply retroactively.
func (eb *EventBuffer) ChangeKeycode(pressID uint8, keycode Keycode) {
	if rec := eb.press.FindByPressID(pressID); rec != nil {
		rec.Keycode = keycode
	}
	pressSeen := false
	for i := 0; i < eb.n; i++ {
		ev := &eb.records[i]
		if ev.PressID != pressID {
			continue
		}
		if ev.IsPress {
			pressSeen = true
			ev.Keycode = keycode
			continue
		}
		if pressSeen {
			ev.Keycode = keycode
		}
		// else: the press has already been processed/removed; leave
		// the release's keycode untouched.
	}
}

// UpdateLayerForPhysicalEvents re-resolves the keycode of every event
// record at index >= fromPos against layer, propagating each change
// through ChangeKeycode (so the orphaned-release rule above still
// applies to events reached this way).
func (eb *EventBuffer) UpdateLayerForPhysicalEvents(layer uint8, fromPos int) {
	if fromPos < 0 || fromPos >= eb.n {
		return
	}
	for i := fromPos; i < eb.n; i++ {
		keycode := eb.layers.Lookup(layer, eb.records[i].Keypos)
		eb.ChangeKeycode(eb.records[i].PressID, keycode)
	}
}

// Reset empties both the event history and the underlying press
// buffer.
func (eb *EventBuffer) Reset() {
	eb.n = 0
	eb.press.Reset()
}
