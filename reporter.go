package monkeyboard

// Reporter is the abstract HID reporter the virtual pipeline chain
// calls at its tail. RegisterKey/UnregisterKey hold or release a key
// in the next outgoing report; TapKey is a convenience for a
// press-then-release pair. SetActiveLayer is called whenever the
// layer manager's active layer changes, independent of the virtual
// chain (layer pushes/pops are not virtual key events). Flush is
// called once every time a virtual event finishes traversing the
// virtual pipeline chain, so a host implementation can batch the
// register/unregister calls made for that event into one outgoing
// report, the way a scan-cycle-driven HID stack naturally would.
type Reporter interface {
	RegisterKey(keycode Keycode)
	UnregisterKey(keycode Keycode)
	TapKey(keycode Keycode)
	SetActiveLayer(layer uint8)
	Flush()
}
