package monkeyboard

// MaxNestedLayers is the maximum depth of the nested-layer stack.
const MaxNestedLayers = 10

// NestedLayer is one layer activation tied to a physical press. It is
// popped automatically when that press ends (the owner calls
// PopLayerByKeypos with the same keypos).
type NestedLayer struct {
	Keypos  Keypos
	PressID uint8
	Layer   uint8
}

// Keymap resolves a (layer, keypos) pair to a keycode. Flat and
// (row, col) keymap sources (see package keymap) both implement it;
// LayerManager never cares which representation backs the lookup.
type Keymap interface {
	// KeycodeAt returns 0 if layer or keypos is out of bounds.
	KeycodeAt(layer uint8, keypos Keypos) Keycode
}

// LayerManager resolves a keypos to a keycode against a stack of
// nested layer activations, and holds the "original" (absolute) layer
// that is active once the stack empties. It is process-wide state -
// there is exactly one keyboard - mutated only from within pipeline
// callbacks.
type LayerManager struct {
	keymap        Keymap
	originalLayer uint8
	stack         [MaxNestedLayers]NestedLayer
	n             int
}

// NewLayerManager returns a LayerManager resolving lookups against
// keymap, starting on layer 0 with an empty stack.
func NewLayerManager(keymap Keymap) *LayerManager {
	return &LayerManager{keymap: keymap}
}

// CurrentLayer returns the layer that should resolve newly-pressed
// keypos values: the top of the nested-layer stack, or the original
// layer if the stack is empty.
func (lm *LayerManager) CurrentLayer() uint8 {
	if lm.n == 0 {
		return lm.originalLayer
	}
	return lm.stack[lm.n-1].Layer
}

// Lookup resolves (layer, keypos) through the configured keymap.
func (lm *LayerManager) Lookup(layer uint8, keypos Keypos) Keycode {
	return lm.keymap.KeycodeAt(layer, keypos)
}

// SetAbsoluteLayer clears the nested-layer stack and makes layer both
// the original layer and the active one.
func (lm *LayerManager) SetAbsoluteLayer(layer uint8) {
	lm.originalLayer = layer
	lm.n = 0
}

// PushLayer activates layer on top of the stack, tying it to the press
// identified by (keypos, pressID). It fails silently (no-op) if the
// stack is already at MaxNestedLayers.
func (lm *LayerManager) PushLayer(keypos Keypos, pressID uint8, layer uint8) bool {
	if lm.n >= MaxNestedLayers {
		return false
	}
	lm.stack[lm.n] = NestedLayer{Keypos: keypos, PressID: pressID, Layer: layer}
	lm.n++
	return true
}

// PopLayerByKeypos removes the stack entry matching keypos, shifting
// later entries down to preserve order. Because CurrentLayer always
// reads the live top of the stack, this automatically reproduces the
// reference behavior: removing the topmost (or only) entry changes the
// active layer to the new top, or to the original layer once the stack
// is empty, while removing a non-top entry leaves the top - and so the
// active layer - untouched. Reports whether an entry was found.
func (lm *LayerManager) PopLayerByKeypos(keypos Keypos) bool {
	for i := 0; i < lm.n; i++ {
		if !KeyposEqual(lm.stack[i].Keypos, keypos) {
			continue
		}
		copy(lm.stack[i:lm.n-1], lm.stack[i+1:lm.n])
		lm.n--
		return true
	}
	return false
}
