package events

// Recorder buffers events of the operation in progress.
type Recorder struct {
	pending []Event
}

func (r *Recorder) Emit(e Event) {
	r.pending = append(r.pending, e)
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.pending
	r.pending = nil
	return out
}

func (r *Recorder) Len() int {
	return len(r.pending)
}
