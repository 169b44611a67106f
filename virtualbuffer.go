package monkeyboard

// VirtualBufferCapacity is the maximum number of synthetic key events
// the virtual buffer can hold at once.
const VirtualBufferCapacity = 10

// VirtualEvent is one synthetic key event produced by a physical
// pipeline (register/unregister/tap) or injected by a virtual pipeline
// (add_tap/add_untap, used to wrap modifiers around another event).
type VirtualEvent struct {
	Keycode Keycode
	IsPress bool
}

// VirtualBuffer is an append-only queue of synthetic key events,
// populated during a single executor invocation and drained in order
// by the virtual pipeline chain.
type VirtualBuffer struct {
	records [VirtualBufferCapacity]VirtualEvent
	head    int
	n       int
}

// NewVirtualBuffer returns an empty virtual buffer.
func NewVirtualBuffer() *VirtualBuffer {
	return &VirtualBuffer{}
}

// Len reports the number of queued, undrained events.
func (vb *VirtualBuffer) Len() int {
	return vb.n
}

func (vb *VirtualBuffer) push(ev VirtualEvent) bool {
	if vb.n >= VirtualBufferCapacity {
		return false
	}
	pos := (vb.head + vb.n) % VirtualBufferCapacity
	vb.records[pos] = ev
	vb.n++
	return true
}

// AddPress enqueues a synthetic press of keycode.
func (vb *VirtualBuffer) AddPress(keycode Keycode) bool {
	return vb.push(VirtualEvent{Keycode: keycode, IsPress: true})
}

// AddRelease enqueues a synthetic release of keycode.
func (vb *VirtualBuffer) AddRelease(keycode Keycode) bool {
	return vb.push(VirtualEvent{Keycode: keycode, IsPress: false})
}

// Pop removes and returns the oldest queued event. ok is false if the
// buffer is empty.
func (vb *VirtualBuffer) Pop() (ev VirtualEvent, ok bool) {
	if vb.n == 0 {
		return VirtualEvent{}, false
	}
	ev = vb.records[vb.head]
	vb.head = (vb.head + 1) % VirtualBufferCapacity
	vb.n--
	return ev, true
}

// Reset empties the buffer.
func (vb *VirtualBuffer) Reset() {
	vb.head = 0
	vb.n = 0
}
