package domain

import (
	"strconv"
	"testing"
)

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q == nil {
		t.Fatal("NewQueue returned nil")
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got length %d", q.Len())
	}
	if !q.IsEmpty() {
		t.Error("expected IsEmpty to be true")
	}
}

func TestQueue_Append(t *testing.T) {
	q := NewQueue()

	q.Append(Track{Title: "Song 1", SourceRef: "ref-1"})
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}

	q.Append(
		Track{Title: "Song 2", SourceRef: "ref-2"},
		Track{Title: "Song 3", SourceRef: "ref-3"},
	)
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_Next_ReturnsFIFOOrder(t *testing.T) {
	q := NewQueue()
	for i := 1; i <= 3; i++ {
		q.Append(Track{Title: "Song " + strconv.Itoa(i), SourceRef: "ref-" + strconv.Itoa(i)})
	}

	for i := 1; i <= 3; i++ {
		got := q.Next()
		if got == nil {
			t.Fatalf("expected track %d, got nil", i)
		}
		if want := "ref-" + strconv.Itoa(i); got.SourceRef != want {
			t.Errorf("expected %q, got %q", want, got.SourceRef)
		}
	}

	if q.Len() != 0 {
		t.Errorf("expected empty queue after draining, got length %d", q.Len())
	}
}

func TestQueue_Next_EmptyReturnsNil(t *testing.T) {
	q := NewQueue()

	if got := q.Next(); got != nil {
		t.Errorf("expected nil from empty queue, got %v", got)
	}
	// Still empty, still a no-op
	if got := q.Next(); got != nil {
		t.Errorf("expected nil from repeated empty dequeue, got %v", got)
	}
}

func TestQueue_Prepend(t *testing.T) {
	q := NewQueue()
	q.Append(Track{Title: "Song 2", SourceRef: "ref-2"})
	q.Prepend(Track{Title: "Song 1", SourceRef: "ref-1"})

	got := q.Next()
	if got == nil || got.SourceRef != "ref-1" {
		t.Errorf("expected prepended track first, got %v", got)
	}
}

func TestQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewQueue()

	if got := q.Peek(); got != nil {
		t.Errorf("expected nil peek on empty queue, got %v", got)
	}

	q.Append(Track{Title: "Song 1", SourceRef: "ref-1"})

	got := q.Peek()
	if got == nil || got.SourceRef != "ref-1" {
		t.Fatalf("expected front track, got %v", got)
	}
	if q.Len() != 1 {
		t.Errorf("expected peek to leave queue intact, got length %d", q.Len())
	}
}

func TestQueue_List_ReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Append(Track{Title: "Song 1", SourceRef: "ref-1"})

	list := q.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}

	list[0].Title = "mutated"
	if q.Peek().Title != "Song 1" {
		t.Error("expected List to return a copy, queue was mutated")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Append(
		Track{Title: "Song 1", SourceRef: "ref-1"},
		Track{Title: "Song 2", SourceRef: "ref-2"},
	)

	if got := q.Clear(); got != 2 {
		t.Errorf("expected Clear to report 2 removed, got %d", got)
	}
	if !q.IsEmpty() {
		t.Error("expected empty queue after Clear")
	}
	if got := q.Clear(); got != 0 {
		t.Errorf("expected Clear on empty queue to report 0, got %d", got)
	}
}
