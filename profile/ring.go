package profile

// ring is a fixed-capacity FIFO of feature vectors. Pushing beyond the
// capacity overwrites the oldest element, preserving the relative order of
// the survivors.
type ring struct {
	slots [][]float32
	head  int // index of the oldest element
	n     int
}

func newRing(capacity int) *ring {
	return &ring{slots: make([][]float32, capacity)}
}

func (r *ring) push(vec []float32) {
	if r.n < len(r.slots) {
		r.slots[(r.head+r.n)%len(r.slots)] = vec
		r.n++

		return
	}

	r.slots[r.head] = vec
	r.head = (r.head + 1) % len(r.slots)
}

func (r *ring) len() int { return r.n }

// vectors returns the stored vectors oldest-first.
func (r *ring) vectors() [][]float32 {
	out := make([][]float32, 0, r.n)
	for i := range r.n {
		out = append(out, r.slots[(r.head+i)%len(r.slots)])
	}

	return out
}
