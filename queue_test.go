package fabric_test

import (
	"testing"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
)

func TestQueue_fillDrain(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 16} {
		q := fabric.NewQueue[int](capacity)
		if !q.Empty() || q.Full() || q.Len() != 0 || q.Cap() != capacity {
			t.Fatalf("cap %d: bad initial state", capacity)
		}
		for i := 0; i < capacity; i++ {
			if !q.TryPush(i) {
				t.Fatalf("cap %d: push %d rejected", capacity, i)
			}
		}
		if !q.Full() || q.Empty() || q.Len() != capacity {
			t.Fatalf("cap %d: not full after %d pushes", capacity, capacity)
		}
		if q.TryPush(99) {
			t.Fatalf("cap %d: push accepted on full queue", capacity)
		}
		if q.Len() != capacity {
			t.Fatalf("cap %d: rejected push mutated the queue", capacity)
		}
		for i := 0; i < capacity; i++ {
			v, ok := q.Peek()
			if !ok || v != i {
				t.Fatalf("cap %d: peek = %d, %v; want %d, true", capacity, v, ok, i)
			}
			if !q.TryPop() {
				t.Fatalf("cap %d: pop %d rejected", capacity, i)
			}
		}
		if !q.Empty() || q.TryPop() {
			t.Fatalf("cap %d: not empty after draining", capacity)
		}
		if _, ok := q.Peek(); ok {
			t.Fatalf("cap %d: peek succeeded on empty queue", capacity)
		}
	}
}

// The head must stay readable, unchanged, across repeated peeks until
// it is popped.
func TestQueue_showAhead(t *testing.T) {
	q := fabric.NewQueue[string](4)
	q.TryPush("a")
	q.TryPush("b")
	for i := 0; i < 3; i++ {
		if v, ok := q.Peek(); !ok || v != "a" {
			t.Fatalf("peek #%d = %q, %v; want \"a\", true", i, v, ok)
		}
	}
	q.TryPop()
	if v, _ := q.Peek(); v != "b" {
		t.Fatalf("head after pop = %q; want \"b\"", v)
	}
}

// Cursors live in [0, 2C); cycling the queue many times past the wrap
// point must keep full/empty detection exact.
func TestQueue_cursorWrap(t *testing.T) {
	for _, capacity := range []int{1, 3, 4, 16} {
		q := fabric.NewQueue[int](capacity)
		for round := 0; round < 5*capacity; round++ {
			if !q.TryPush(round) {
				t.Fatalf("cap %d round %d: push rejected on empty queue", capacity, round)
			}
			if q.Empty() {
				t.Fatalf("cap %d round %d: empty after push", capacity, round)
			}
			if v, _ := q.Peek(); v != round {
				t.Fatalf("cap %d round %d: head = %d", capacity, round, v)
			}
			q.TryPop()
			if !q.Empty() || q.Len() != 0 {
				t.Fatalf("cap %d round %d: not empty after pop", capacity, round)
			}
		}
	}
}

func TestQueue_interleaved(t *testing.T) {
	q := fabric.NewQueue[int](3)
	next, expect := 0, 0
	push := func() bool { ok := q.TryPush(next); next++; return ok }
	pop := func() {
		t.Helper()
		v, ok := q.Peek()
		if !ok || v != expect {
			t.Fatalf("head = %d, %v; want %d, true", v, ok, expect)
		}
		q.TryPop()
		expect++
	}
	// drive the queue through partial fills across several wraps
	for i := 0; i < 10; i++ {
		push()
		push()
		pop()
		push()
		pop()
		pop()
	}
	if !q.Empty() {
		t.Fatal("queue not empty at end")
	}
}

func TestQueue_reset(t *testing.T) {
	q := fabric.NewQueue[int](2)
	q.TryPush(1)
	q.TryPush(2)
	q.Reset()
	if !q.Empty() || q.Full() || q.Len() != 0 {
		t.Fatal("queue not empty after reset")
	}
	if !q.TryPush(7) {
		t.Fatal("push rejected after reset")
	}
	if v, _ := q.Peek(); v != 7 {
		t.Fatalf("head after reset = %d; want 7", v)
	}
}

func TestQueue_badCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewQueue(%d) did not panic", capacity)
				}
			}()
			fabric.NewQueue[int](capacity)
		}()
	}
}
