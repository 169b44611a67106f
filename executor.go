package monkeyboard

// AbsKeyEvent is one raw press or release reported by the matrix
// scanner, timestamped on the scanner's own clock.
type AbsKeyEvent struct {
	Keypos  Keypos
	IsPress bool
	Time    Time
}

type chainDecision int

const (
	decisionNone chainDecision = iota
	decisionNoCapture
	decisionCapture
	decisionDeferred
	decisionCaptureTimeout
)

type capture struct {
	active      bool
	index       int
	timerActive bool
	timerToken  Token
}

type deferred struct {
	active bool
	index  int
	token  Token
}

// Executor is the pipeline executor: it feeds every physical key event
// through the installed physical pipelines in order, honoring
// capture/timeout requests from ReturnActions, then drains whatever
// those pipelines queued onto the virtual buffer through the installed
// virtual pipelines and out to the Reporter. There is exactly one
// Executor per keyboard; it is driven entirely from the scanner's
// callback thread and keeps no internal concurrency of its own.
type Executor struct {
	layers   *LayerManager
	events   *EventBuffer
	virtual  *VirtualBuffer
	physical []PhysicalPipeline
	chain    []VirtualPipeline
	reporter Reporter
	sched    Scheduler

	now      Time
	capture  capture
	deferred deferred
}

// NewExecutor returns an Executor with no pipelines installed yet.
func NewExecutor(layers *LayerManager, reporter Reporter, sched Scheduler) *Executor {
	return &Executor{
		layers:   layers,
		events:   NewEventBuffer(layers),
		virtual:  NewVirtualBuffer(),
		reporter: reporter,
		sched:    sched,
	}
}

// AddPhysicalPipeline appends p to the physical chain, run in
// installation order on every physical event.
func (ex *Executor) AddPhysicalPipeline(p PhysicalPipeline) {
	ex.physical = append(ex.physical, p)
}

// AddVirtualPipeline appends p to the virtual chain, run in
// installation order on every synthetic event drained off the virtual
// buffer.
func (ex *Executor) AddVirtualPipeline(p VirtualPipeline) {
	ex.chain = append(ex.chain, p)
}

// Events exposes the live event history, for pipelines or tests that
// need to scan it directly rather than through the callback params.
func (ex *Executor) Events() *EventBuffer {
	return ex.events
}

// Layers exposes the layer manager backing this executor.
func (ex *Executor) Layers() *LayerManager {
	return ex.layers
}

// ProcessKey records a raw press or release and runs it through the
// physical chain, then drains any resulting virtual events through the
// virtual chain and the reporter. It returns false only when a buffer
// was full and the event had to be dropped before any pipeline saw it.
func (ex *Executor) ProcessKey(ev AbsKeyEvent) bool {
	ex.now = ev.Time
	if ev.IsPress {
		if _, bufferFull := ex.events.AddPhysicalPress(ev.Time, ev.Keypos); bufferFull {
			return false
		}
	} else {
		ok, bufferFull := ex.events.AddPhysicalRelease(ev.Time, ev.Keypos)
		if bufferFull {
			return false
		}
		if !ok {
			return true
		}
	}
	ex.runPhysicalChain(CallbackKeyEvent)
	ex.drainVirtualChain()
	return true
}

func (ex *Executor) lastKeyEvent() *EventRecord {
	if ex.events.Len() == 0 {
		return nil
	}
	return ex.events.At(ex.events.Len() - 1)
}

func (ex *Executor) runPhysicalChain(cbType CallbackType) {
	start := 0
	if ex.capture.active {
		start = ex.capture.index
	}
	kev := ex.lastKeyEvent()
	for i := start; i < len(ex.physical); i++ {
		params := &PhysicalCallbackParams{KeyEvent: kev, CallbackType: cbType, CallbackTime: ex.now}
		ret := &returnActionsImpl{}
		actions := &physicalActionsImpl{ex: ex}
		ex.physical[i].Process(params, actions, ret)
		if ex.applyDecision(ret, i) {
			return
		}
	}
	// Every pipeline declined: default handling registers or
	// unregisters the resolved keycode directly, the way returning
	// true from an unhandled key falls through to default key
	// processing in the firmware this executor is modeled on.
	ex.defaultDeliver(kev)
}

func (ex *Executor) defaultDeliver(kev *EventRecord) {
	if kev == nil {
		return
	}
	if kev.IsPress {
		ex.virtual.AddPress(kev.Keycode)
	} else {
		ex.virtual.AddRelease(kev.Keycode)
	}
}

// fireTimer re-enters pipeline index directly, on behalf of a timer
// scheduled earlier through either ReturnActions.NoCaptureWithDeferredCallback
// or CaptureNextKeysOrCallbackOnTimeout. It never walks the rest of the
// chain: the timer belongs to exactly one pipeline.
func (ex *Executor) fireTimer(index int) {
	if index < 0 || index >= len(ex.physical) {
		return
	}
	params := &PhysicalCallbackParams{KeyEvent: ex.lastKeyEvent(), CallbackType: CallbackTimer, CallbackTime: ex.now}
	ret := &returnActionsImpl{}
	actions := &physicalActionsImpl{ex: ex}
	ex.physical[index].Process(params, actions, ret)
	ex.applyDecision(ret, index)
	ex.drainVirtualChain()
}

// applyDecision interprets the outcome of one pipeline invocation at
// index: MarkAsProcessed and the four routing choices are independent
// - a pipeline may call both, the way the reference always pairs
// mark_as_processed with a routing decision in the same callback. The
// routing choice updates capture/timer state; processed then decides
// whether the chain stops here for this event (true) or continues to
// index+1 (false). Capturing the chain (with or without a timeout)
// always stops it, processed or not: nothing else should see an event
// a pipeline just pinned itself to.
func (ex *Executor) applyDecision(ret *returnActionsImpl, index int) bool {
	switch ret.routing {
	case decisionCapture:
		ex.cancelCaptureTimer()
		ex.capture = capture{active: true, index: index}
		return true

	case decisionCaptureTimeout:
		ex.cancelCaptureTimer()
		token := ex.armTimer(index, uint32(Span(ex.now, ret.timeoutAt)))
		ex.capture = capture{active: true, index: index, timerActive: true, timerToken: token}
		return true

	case decisionDeferred:
		if ex.deferred.active {
			ex.sched.CancelDeferred(ex.deferred.token)
		}
		token := ex.armTimer(index, DefaultDeferredDelay)
		ex.deferred = deferred{active: true, index: index, token: token}
		if ex.capture.active && ex.capture.index == index {
			ex.uncapture()
		}
		return ret.processed

	default: // decisionNone, decisionNoCapture
		if ex.capture.active && ex.capture.index == index {
			ex.uncapture()
		}
		return ret.processed
	}
}

func (ex *Executor) armTimer(index int, delayMs uint32) Token {
	return ex.sched.ScheduleDeferred(delayMs, func() {
		ex.fireTimer(index)
	})
}

func (ex *Executor) uncapture() {
	ex.cancelCaptureTimer()
	ex.capture = capture{}
}

// cancelCaptureTimer cancels whatever timer the current capture holds,
// if any. A pipeline may re-capture (with or without a new timeout)
// without ever calling NoCapture in between - e.g. tap-dance re-arming
// its timeout on every new press in a multi-tap sequence - and the
// timer it held before must not survive that transition, or it fires
// later against state the pipeline has already moved past.
func (ex *Executor) cancelCaptureTimer() {
	if ex.capture.timerActive {
		ex.sched.CancelDeferred(ex.capture.timerToken)
	}
}

func (ex *Executor) drainVirtualChain() {
	actions := &virtualActionsImpl{ex: ex}
	for {
		ev, ok := ex.virtual.Pop()
		if !ok {
			return
		}
		for _, vp := range ex.chain {
			params := &VirtualCallbackParams{
				Keycode:      ev.Keycode,
				IsPress:      ev.IsPress,
				CallbackType: CallbackKeyEvent,
				CallbackTime: ex.now,
			}
			vp.Process(params, actions)
		}
		// Custom-range keycodes carry no HID meaning of their own -
		// they exist only to trigger transformations (tap-dance
		// anchors, one-shot-modifier triggers) and are never
		// registered or unregistered with the reporter. Flush still
		// runs so a virtual chain that only produced a Custom event
		// doesn't stall the host's batching cadence.
		if KindOf(ev.Keycode) != KindCustom {
			if ev.IsPress {
				ex.reporter.RegisterKey(ev.Keycode)
			} else {
				ex.reporter.UnregisterKey(ev.Keycode)
			}
		}
		ex.reporter.Flush()
	}
}

// Reset clears all transient executor state - the event history, the
// virtual buffer, any active capture or pending timer - and calls
// Reset on every installed pipeline. The layer manager is left
// untouched: an executor reset is a mid-stream recovery (e.g. the host
// dropped the connection), not a reason to discard which layer the
// user had navigated to.
func (ex *Executor) Reset() {
	if ex.capture.timerActive {
		ex.sched.CancelDeferred(ex.capture.timerToken)
	}
	if ex.deferred.active {
		ex.sched.CancelDeferred(ex.deferred.token)
	}
	ex.capture = capture{}
	ex.deferred = deferred{}
	ex.events.Reset()
	ex.virtual.Reset()
	for _, p := range ex.physical {
		p.Reset()
	}
	for _, p := range ex.chain {
		p.Reset()
	}
}

// returnActionsImpl records the decisions a pipeline makes during one
// Process call. processed and routing are independent: a pipeline
// typically calls MarkAsProcessed alongside exactly one routing method
// in the same callback (mirroring the reference, which always pairs
// them), but either can be omitted.
type returnActionsImpl struct {
	processed bool
	routing   chainDecision
	timeoutAt Time
}

func (r *returnActionsImpl) MarkAsProcessed()               { r.processed = true }
func (r *returnActionsImpl) NoCapture()                     { r.routing = decisionNoCapture }
func (r *returnActionsImpl) CaptureNextKeys()                { r.routing = decisionCapture }
func (r *returnActionsImpl) NoCaptureWithDeferredCallback()  { r.routing = decisionDeferred }
func (r *returnActionsImpl) CaptureNextKeysOrCallbackOnTimeout(when Time) {
	r.routing = decisionCaptureTimeout
	r.timeoutAt = when
}

type physicalActionsImpl struct {
	ex *Executor
}

func (a *physicalActionsImpl) RegisterKey(keycode Keycode)   { a.ex.virtual.AddPress(keycode) }
func (a *physicalActionsImpl) UnregisterKey(keycode Keycode) { a.ex.virtual.AddRelease(keycode) }

// TapKey reports a single press-then-release directly to the reporter,
// the way SetActiveLayer does, rather than queuing a press and release
// onto the virtual buffer: a tap-dance or combo output is a finished
// decision by the time it's reported, not a key whose press and
// release a virtual pipeline (e.g. a one-shot modifier) should still
// be able to intercept and wrap.
func (a *physicalActionsImpl) TapKey(keycode Keycode) {
	a.ex.reporter.TapKey(keycode)
}

// RemovePhysicalPressAndRelease deletes every trace of keypos's current
// press: its live press-buffer record and any press or release event
// still sitting in the history. Used by pipelines that fully absorb a
// key (e.g. a combo member) and never want it reported on its own.
func (a *physicalActionsImpl) RemovePhysicalPressAndRelease(keypos Keypos) {
	rec := a.ex.events.Press().FindByKeypos(keypos)
	if rec == nil {
		return
	}
	pressID := rec.PressID
	a.ex.events.RemovePressEventByPressID(pressID)
	a.ex.events.RemoveReleaseEventByPressID(pressID)
	a.ex.events.Press().Remove(keypos)
}

func (a *physicalActionsImpl) UpdateLayerForPhysicalEvents(layer uint8, fromPos int) {
	a.ex.events.UpdateLayerForPhysicalEvents(layer, fromPos)
}

func (a *physicalActionsImpl) PushLayer(keypos Keypos, pressID uint8, layer uint8) {
	if !a.ex.layers.PushLayer(keypos, pressID, layer) {
		return
	}
	a.ex.reporter.SetActiveLayer(a.ex.layers.CurrentLayer())
}

func (a *physicalActionsImpl) PopLayer(keypos Keypos) {
	if !a.ex.layers.PopLayerByKeypos(keypos) {
		return
	}
	a.ex.reporter.SetActiveLayer(a.ex.layers.CurrentLayer())
}

// virtualActionsImpl enqueues the press/release events a virtual
// pipeline produces directly onto the virtual buffer, exactly like
// PhysicalActions.RegisterKey/UnregisterKey do for the physical chain.
// They drain on a later iteration of drainVirtualChain's loop and so
// run through the full virtual chain themselves - this is how a
// one-shot-modifier pipeline can add_tap a modifier now and add_untap
// it again the next time it sees a virtual event, without the executor
// needing to know anything about modifier wrapping.
type virtualActionsImpl struct {
	ex *Executor
}

func (v *virtualActionsImpl) AddTap(keycode Keycode)   { v.ex.virtual.AddPress(keycode) }
func (v *virtualActionsImpl) AddUntap(keycode Keycode) { v.ex.virtual.AddRelease(keycode) }
