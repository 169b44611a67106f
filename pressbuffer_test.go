package monkeyboard

import "testing"

func TestPressBufferAddRejectsDuplicateKeypos(t *testing.T) {
	pb := NewPressBuffer()
	if rec := pb.Add(5, 0x04, 1); rec == nil {
		t.Fatal("first Add should succeed")
	}
	if rec := pb.Add(5, 0x05, 2); rec != nil {
		t.Fatal("Add on a live keypos must fail")
	}
	if pb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pb.Len())
	}
}

func TestPressBufferCapacity(t *testing.T) {
	pb := NewPressBuffer()
	for i := 0; i < PressBufferCapacity; i++ {
		if rec := pb.Add(Keypos(i), 0, uint8(i+1)); rec == nil {
			t.Fatalf("Add #%d should succeed under capacity", i)
		}
	}
	if rec := pb.Add(Keypos(PressBufferCapacity), 0, 99); rec != nil {
		t.Fatal("Add beyond capacity must fail")
	}
}

func TestPressBufferRemovePreservesOrder(t *testing.T) {
	pb := NewPressBuffer()
	pb.Add(1, 0, 1)
	pb.Add(2, 0, 2)
	pb.Add(3, 0, 3)
	if !pb.Remove(2) {
		t.Fatal("Remove should find keypos 2")
	}
	all := pb.All()
	if len(all) != 2 || all[0].Keypos != 1 || all[1].Keypos != 3 {
		t.Fatalf("unexpected order after removal: %+v", all)
	}
}

func TestPressBufferFindByPressID(t *testing.T) {
	pb := NewPressBuffer()
	pb.Add(1, 0, 7)
	rec := pb.FindByPressID(7)
	if rec == nil || rec.Keypos != 1 {
		t.Fatalf("FindByPressID(7) = %+v, want keypos 1", rec)
	}
	if pb.FindByPressID(8) != nil {
		t.Fatal("FindByPressID on unknown id should return nil")
	}
}

func TestPressBufferMarkIgnoreRelease(t *testing.T) {
	pb := NewPressBuffer()
	pb.Add(1, 0, 7)
	if !pb.MarkIgnoreRelease(7) {
		t.Fatal("MarkIgnoreRelease should find live id 7")
	}
	if !pb.FindByKeypos(1).IgnoreRelease {
		t.Fatal("record should now have IgnoreRelease set")
	}
	if pb.MarkIgnoreRelease(9) {
		t.Fatal("MarkIgnoreRelease on unknown id should report false")
	}
}

func TestPressBufferReset(t *testing.T) {
	pb := NewPressBuffer()
	pb.Add(1, 0, 1)
	pb.Reset()
	if pb.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", pb.Len())
	}
	if pb.Add(1, 0, 1) == nil {
		t.Fatal("keypos should be addable again after Reset")
	}
}
