package canm

import "math"

// FramePool is the shared payload buffer of one encode pass.
//
// Every track registers its flattened values; a sequence that already occurs
// in the pool as a contiguous run reuses the earliest such run instead of
// being appended again. Tracks register in file order, so the result is
// deterministic.
//
// Lookup is a linear scan: O(Len() * len(seq)) per Register in the worst
// case. Pools hold at most a few thousand values in practice.
type FramePool struct {
	values []float32
	shared int
}

func NewFramePool() *FramePool {
	return &FramePool{}
}

// Register returns the index of seq within the pool, appending it when no
// existing run matches. An empty sequence registers at index 0.
func (p *FramePool) Register(seq []float32) int {
	if len(seq) == 0 {
		return 0
	}
	if i := p.find(seq); i >= 0 {
		p.shared++
		return i
	}
	i := len(p.values)
	p.values = append(p.values, seq...)
	return i
}

// find returns the first index at which seq occurs, or -1. Values compare by
// bit pattern so a reused run decodes to exactly the registered values.
func (p *FramePool) find(seq []float32) int {
	last := len(p.values) - len(seq)
	for i := 0; i <= last; i++ {
		if equalBits(p.values[i:i+len(seq)], seq) {
			return i
		}
	}
	return -1
}

func equalBits(a, b []float32) bool {
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

// Len is the number of values in the pool.
func (p *FramePool) Len() int { return len(p.values) }

// Values returns the pool contents. The slice must not be modified.
func (p *FramePool) Values() []float32 { return p.values }

// Shared counts registrations served by an existing run.
func (p *FramePool) Shared() int { return p.shared }
