package monkeyboard

// Token identifies a deferred callback registered through Scheduler,
// so it can later be canceled.
type Token uint32

// Scheduler is the platform's deferred-execution timer source. The
// executor asks it to invoke a callback after delayMs milliseconds,
// and may cancel that request before it fires (for example, when a
// capturing pipeline voluntarily releases capture). Cancel must be
// idempotent: if the timer has already fired, or the token is
// otherwise stale, Cancel is a no-op.
type Scheduler interface {
	ScheduleDeferred(delayMs uint32, callback func()) Token
	CancelDeferred(token Token)
}
