// Package input turns polled key state into edge-triggered toggles.
package input

// KeyPoller reports whether a physical key is currently held.
// platform.Window implements it.
type KeyPoller interface {
	IsKeyPressed(key int) bool
}

const maxKeys = 512

// Keys tracks the watched keys across frames so presses can be told apart
// from holds.
type Keys struct {
	poller  KeyPoller
	watched []int

	keys     [maxKeys]bool
	keysPrev [maxKeys]bool
}

func NewKeys(poller KeyPoller, watched ...int) *Keys {
	k := &Keys{poller: poller}
	for _, key := range watched {
		k.Watch(key)
	}
	return k
}

// Watch adds key to the set polled by Update.
func (k *Keys) Watch(key int) {
	if key < 0 || key >= maxKeys {
		return
	}
	for _, w := range k.watched {
		if w == key {
			return
		}
	}
	k.watched = append(k.watched, key)
}

// Update should be called once per frame, before any query.
func (k *Keys) Update() {
	copy(k.keysPrev[:], k.keys[:])
	for _, key := range k.watched {
		k.keys[key] = k.poller.IsKeyPressed(key)
	}
}

func (k *Keys) IsKeyDown(key int) bool {
	if key < 0 || key >= maxKeys {
		return false
	}
	return k.keys[key]
}

// IsKeyPressed is true only on the frame the key went down.
func (k *Keys) IsKeyPressed(key int) bool {
	if key < 0 || key >= maxKeys {
		return false
	}
	return k.keys[key] && !k.keysPrev[key]
}

func (k *Keys) IsKeyReleased(key int) bool {
	if key < 0 || key >= maxKeys {
		return false
	}
	return !k.keys[key] && k.keysPrev[key]
}

// Toggle is a boolean flipped by one key press. Holding the key does not
// flip it again.
type Toggle struct {
	Key int
	On  bool

	// OnChange, if set, is called with the new state after each flip.
	OnChange func(on bool)
}

func NewToggle(key int, on bool) *Toggle {
	return &Toggle{Key: key, On: on}
}

// Poll flips the toggle if its key was pressed this frame.
func (t *Toggle) Poll(keys *Keys) bool {
	if keys.IsKeyPressed(t.Key) {
		t.Flip()
	}
	return t.On
}

// Press handles a key event from a callback-driven source. Events for
// other keys are ignored.
func (t *Toggle) Press(key int) {
	if key == t.Key {
		t.Flip()
	}
}

func (t *Toggle) Flip() {
	t.On = !t.On
	if t.OnChange != nil {
		t.OnChange(t.On)
	}
}
