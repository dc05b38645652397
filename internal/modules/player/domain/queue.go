package domain

// Queue is an ordered FIFO sequence of tracks: insertion order is playback
// order. It holds no placeholder entries and has no capacity bound.
type Queue struct {
	tracks []Track
}

// NewQueue creates a new empty Queue.
func NewQueue() *Queue {
	return &Queue{
		tracks: make([]Track, 0),
	}
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Append adds track(s) to the end of the queue.
func (q *Queue) Append(tracks ...Track) {
	q.tracks = append(q.tracks, tracks...)
}

// Prepend adds track(s) to the front of the queue.
func (q *Queue) Prepend(tracks ...Track) {
	q.tracks = append(tracks, q.tracks...)
}

// Next removes and returns the front track. Dequeuing from an empty queue
// is a defined no-op that returns nil, never an error.
func (q *Queue) Next() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return &track
}

// Peek returns the front track without removing it, or nil if empty.
func (q *Queue) Peek() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	return &q.tracks[0]
}

// List returns a copy of all queued tracks in playback order.
func (q *Queue) List() []Track {
	result := make([]Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Clear removes all tracks and returns the number removed.
func (q *Queue) Clear() int {
	count := len(q.tracks)
	q.tracks = make([]Track, 0)
	return count
}
