package monkeyboard

// CallbackType distinguishes a pipeline invocation driven by a fresh
// key event from one driven by a previously-scheduled timer firing.
type CallbackType int

const (
	CallbackKeyEvent CallbackType = iota
	CallbackTimer
)

// PhysicalCallbackParams is passed to a physical pipeline on every
// invocation. KeyEvent points at the event record the chain is
// currently processing; on a Timer callback it points at the newest
// record still in the event history, and it is nil only when that
// history is empty.
type PhysicalCallbackParams struct {
	KeyEvent     *EventRecord
	CallbackType CallbackType
	CallbackTime Time
}

// PhysicalActions is the synthetic-output action group available to a
// physical pipeline: emitting virtual key events, deleting a physical
// press/release pair by keypos, and recomputing keycodes for buffered
// events after a layer change.
type PhysicalActions interface {
	RegisterKey(keycode Keycode)
	UnregisterKey(keycode Keycode)
	TapKey(keycode Keycode)
	RemovePhysicalPressAndRelease(keypos Keypos)
	UpdateLayerForPhysicalEvents(layer uint8, fromPos int)
	// PushLayer activates layer on top of the nested-layer stack, tied
	// to the press identified by (keypos, pressID), and reports the new
	// active layer to the HID reporter. No-op if the stack is full.
	PushLayer(keypos Keypos, pressID uint8, layer uint8)
	// PopLayer releases the nested-layer entry tied to keypos and
	// reports the layer that becomes active once it's gone.
	PopLayer(keypos Keypos)
}

// ReturnActions is the control-flow action group a physical pipeline
// uses to tell the executor what to do next: accept the event and move
// on (MarkAsProcessed, NoCapture), or capture the pipeline for
// subsequent events, optionally with a timeout.
type ReturnActions interface {
	// MarkAsProcessed signals that the current event has been fully
	// handled; the executor advances to the next event without
	// running it through any further pipelines.
	MarkAsProcessed()
	// NoCapture declines the event; the executor advances to the next
	// pipeline in the chain for the same event, or to the next event
	// if this was the last pipeline.
	NoCapture()
	// CaptureNextKeys pins the chain at this pipeline: every
	// subsequent physical event is routed directly to it, until it
	// calls NoCapture.
	CaptureNextKeys()
	// NoCaptureWithDeferredCallback declines to capture, but asks to
	// be re-invoked once more with CallbackType Timer after a default
	// deferred delay (DefaultDeferredDelay) - used by pipelines such
	// as combo resolution that need to revisit a decision shortly
	// without monopolizing the chain in between.
	NoCaptureWithDeferredCallback()
	// CaptureNextKeysOrCallbackOnTimeout is CaptureNextKeys plus a
	// scheduled Timer callback at the given time, canceled
	// automatically if the pipeline releases capture first.
	CaptureNextKeysOrCallbackOnTimeout(when Time)
}

// PhysicalPipeline is a user-programmable transformation installed in
// the physical chain. Process is invoked with the current event (or a
// timer firing); Reset clears any internal state, e.g. when the
// executor-wide Reset is called.
type PhysicalPipeline interface {
	Process(params *PhysicalCallbackParams, actions PhysicalActions, ret ReturnActions)
	Reset()
}

// VirtualCallbackParams is passed to a virtual pipeline for each
// synthetic event drained off the virtual buffer.
type VirtualCallbackParams struct {
	Keycode      Keycode
	IsPress      bool
	CallbackType CallbackType
	CallbackTime Time
}

// VirtualActions is the action group available to a virtual pipeline.
// AddTap enqueues a synthetic press of keycode; AddUntap enqueues a
// synthetic release. Both land at the back of the virtual buffer and
// are drained - and run through the full virtual chain, including the
// pipeline that added them - on a later pass, the same way a physical
// pipeline's register/unregister calls do. A one-shot modifier
// pipeline uses this to apply a latched modifier: AddTap the modifier
// when it sees the basic key press that consumes the latch, AddUntap
// it the next time it runs.
type VirtualActions interface {
	AddTap(keycode Keycode)
	AddUntap(keycode Keycode)
}

// VirtualPipeline is a user-programmable transformation installed in
// the virtual chain.
type VirtualPipeline interface {
	Process(params *VirtualCallbackParams, actions VirtualActions)
	Reset()
}

// DefaultDeferredDelay is the delay, in milliseconds, used for a timer
// scheduled through ReturnActions.NoCaptureWithDeferredCallback. The
// spec this executor implements leaves the combo-confirmation
// tolerance window unspecified; this value is the one resolution used
// throughout this module.
const DefaultDeferredDelay uint32 = 50
