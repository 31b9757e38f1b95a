package overlay

// ValueBuffer is a fixed-capacity FIFO of samples, oldest first. It stores
// values as given; display policies are applied by GraphSeries.
type ValueBuffer struct {
	samples  []float64
	capacity int
}

// NewValueBuffer returns an empty buffer. A capacity below 1 is raised to 1
// so the buffer always holds the most recent sample.
func NewValueBuffer(capacity int) *ValueBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ValueBuffer{
		samples:  make([]float64, 0, capacity+1),
		capacity: capacity,
	}
}

// Push appends v and evicts the oldest sample once the buffer is over capacity.
func (b *ValueBuffer) Push(v float64) {
	b.samples = append(b.samples, v)
	if len(b.samples) > b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:b.capacity]
	}
}

// Snapshot returns a copy of the samples, oldest first.
func (b *ValueBuffer) Snapshot() []float64 {
	out := make([]float64, len(b.samples))
	copy(out, b.samples)
	return out
}

func (b *ValueBuffer) Len() int { return len(b.samples) }
func (b *ValueBuffer) Cap() int { return b.capacity }

// Last returns the newest sample.
func (b *ValueBuffer) Last() (float64, bool) {
	if len(b.samples) == 0 {
		return 0, false
	}
	return b.samples[len(b.samples)-1], true
}
