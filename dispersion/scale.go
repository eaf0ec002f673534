package dispersion

import "fmt"

// RelativeScale returns Π a[i]/b[i], the factor that moves a value computed
// with scale vector a into the frame of scale vector b:
//
//	value_in_b = value_a · RelativeScale(a, b)
//
// Empty vectors (a lone half-space) give 1. Panics if len(a) != len(b).
func RelativeScale(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("dispersion: RelativeScale length mismatch %d != %d", len(a), len(b)))
	}
	r := 1.0
	for i := range a {
		r *= a[i] / b[i]
	}

	return r
}

// scratch is the fixed pool of three scale buffers of one solving worker.
// Candidate points refer to buffers by index; a role change moves the index,
// never the data.
type scratch struct {
	bufs [3][]float64
}

// newScratch allocates the three buffers of length n.
func newScratch(n int) (*scratch, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: scale length %d", ErrScratchAllocation, n)
	}
	s := &scratch{}
	for i := range s.bufs {
		s.bufs[i] = make([]float64, n)
	}

	return s, nil
}

// buf returns the buffer behind index i.
func (s *scratch) buf(i int) []float64 { return s.bufs[i] }

// free returns the index held by neither a nor b.
func free(a, b int) int { return 3 - a - b }
