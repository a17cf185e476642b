package main

import "time"

// keyRepeatWindow is how long a key counts as held after its last press.
// Many terminals never report releases, only repeats.
const keyRepeatWindow = 600 * time.Millisecond

// Keys tracks which keys are held.
type Keys struct {
	last map[string]time.Time
}

// NewKeys creates an empty key set.
func NewKeys() *Keys {
	return &Keys{last: make(map[string]time.Time)}
}

// Press records a press or repeat of key.
func (k *Keys) Press(key string, now time.Time) {
	k.last[key] = now
}

// Release forgets key.
func (k *Keys) Release(key string) {
	delete(k.last, key)
}

// Down reports whether key is held at now.
func (k *Keys) Down(key string, now time.Time) bool {
	t, ok := k.last[key]
	return ok && now.Sub(t) <= keyRepeatWindow
}

// Reset releases every key.
func (k *Keys) Reset() {
	clear(k.last)
}
