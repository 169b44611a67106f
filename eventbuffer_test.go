package monkeyboard

import "testing"

// constantLayerLookup resolves every keypos to its own value as a
// keycode, on a single layer, which is all these tests need from a
// LayerLookup.
type constantLayerLookup struct {
	layer uint8
}

func (c *constantLayerLookup) Lookup(layer uint8, keypos Keypos) Keycode {
	return Keycode(keypos)
}

func (c *constantLayerLookup) CurrentLayer() uint8 {
	return c.layer
}

// TestFirstPressIDIsOne reproduces the literal scenario: a fresh buffer
// assigns press_id 1 to the first press it ever records.
func TestFirstPressIDIsOne(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	id, full := eb.AddPhysicalPress(0, Keypos(0))
	if full {
		t.Fatal("buffer should not report full on its first press")
	}
	if id != 1 {
		t.Fatalf("first press_id = %d, want 1", id)
	}
}

// TestPressIDDoesNotCollideWithLiveEvents reproduces the literal
// scenario: ten presses on distinct keypos values, with no release in
// between, fill half the 20-slot event history and allocate press_ids
// 1..10 with no collisions.
func TestPressIDDoesNotCollideWithLiveEvents(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	var lastID uint8
	for i := 0; i < 10; i++ {
		id, full := eb.AddPhysicalPress(Time(i), Keypos(i))
		if full {
			t.Fatalf("cycle %d: unexpectedly full", i)
		}
		lastID = id
	}
	if lastID != 10 {
		t.Fatalf("last press_id = %d, want 10", lastID)
	}
	if eb.Len() != 10 {
		t.Fatalf("event history length = %d, want 10 (half of capacity)", eb.Len())
	}
}

// TestPressIDWrapsAt255 exercises the allocator's wraparound: with the
// history cleared after every cycle (as a firmware scan loop would, via
// RemoveEventKeys), ids increase sequentially and wrap from 255 back to
// 1.
func TestPressIDWrapsAt255(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	var lastID uint8
	for i := 0; i < 255; i++ {
		id, full := eb.AddPhysicalPress(0, Keypos(0))
		if full {
			t.Fatalf("cycle %d: unexpectedly full", i)
		}
		eb.AddPhysicalRelease(0, Keypos(0))
		eb.RemoveEventKeys()
		lastID = id
	}
	if lastID != 255 {
		t.Fatalf("id after 255 cycles = %d, want 255", lastID)
	}
	id, _ := eb.AddPhysicalPress(0, Keypos(0))
	if id != 1 {
		t.Fatalf("id after wraparound = %d, want 1", id)
	}
}

func TestAddPhysicalReleaseWithNoLivePressIsNoop(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	ok, full := eb.AddPhysicalRelease(0, Keypos(3))
	if ok || full {
		t.Fatalf("release with no live press: ok=%v full=%v, want false,false", ok, full)
	}
	if eb.Len() != 0 {
		t.Fatalf("history length = %d, want 0", eb.Len())
	}
}

func TestChangeKeycodeLeavesOrphanedReleaseAlone(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	id, _ := eb.AddPhysicalPress(0, Keypos(5))
	// Consume the press record out of the history, as a pipeline would.
	eb.RemovePressEventByPressID(id)
	eb.AddPhysicalRelease(1, Keypos(5))
	eb.ChangeKeycode(id, 0xAB)
	rec := eb.At(0)
	if rec == nil || rec.Keycode == 0xAB {
		t.Fatalf("orphaned release keycode should not change, got %+v", rec)
	}
}

func TestRemoveReleaseEventByPressIDFallsBackToIgnoreFlag(t *testing.T) {
	eb := NewEventBuffer(&constantLayerLookup{})
	id, _ := eb.AddPhysicalPress(0, Keypos(5))
	// No release recorded yet.
	if _, found := eb.RemoveReleaseEventByPressID(id); !found {
		t.Fatal("should fall back to marking the live press ignore_release")
	}
	ok, _ := eb.AddPhysicalRelease(1, Keypos(5))
	if ok {
		t.Fatal("release should be suppressed once ignore_release is set")
	}
}
