package main

import (
	"testing"
	"time"
)

func TestKeys(t *testing.T) {
	t0 := time.Unix(100, 0)
	k := NewKeys()

	if k.Down("w", t0) {
		t.Fatal("unpressed key is down")
	}
	k.Press("w", t0)
	if !k.Down("w", t0.Add(keyRepeatWindow)) {
		t.Error("key should be held within the repeat window")
	}
	if k.Down("w", t0.Add(keyRepeatWindow+time.Millisecond)) {
		t.Error("key should expire without repeats")
	}

	k.Press("w", t0)
	k.Release("w")
	if k.Down("w", t0) {
		t.Error("released key is down")
	}

	k.Press("a", t0)
	k.Press("d", t0)
	k.Reset()
	if k.Down("a", t0) || k.Down("d", t0) {
		t.Error("Reset left keys held")
	}
}
