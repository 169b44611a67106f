package monkeyboard

import "errors"

var (
	// ErrPressBufferFull indicates the press buffer already holds its
	// maximum number of live presses (PressBufferCapacity).
	ErrPressBufferFull = errors.New("monkeyboard: press buffer full")

	// ErrEventBufferFull indicates the event buffer already holds its
	// maximum number of records (EventBufferCapacity).
	ErrEventBufferFull = errors.New("monkeyboard: event buffer full")

	// ErrVirtualBufferFull indicates the virtual buffer already holds
	// its maximum number of records (VirtualBufferCapacity).
	ErrVirtualBufferFull = errors.New("monkeyboard: virtual buffer full")

	// ErrLayerStackFull indicates the nested-layer stack already holds
	// its maximum number of activations (MaxNestedLayers).
	ErrLayerStackFull = errors.New("monkeyboard: nested layer stack full")

	// ErrDuplicateKeypos indicates an add_press was attempted for a
	// keypos that already has a live record in the press buffer. This
	// is a misfire (spec error kind 2), not a hard failure: callers
	// that only care about success/failure can ignore it, since
	// PressBuffer.Add already reports it by returning nil.
	ErrDuplicateKeypos = errors.New("monkeyboard: keypos already pressed")
)
