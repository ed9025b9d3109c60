package fastdc

import (
	"fmt"

	"github.com/soypat/glgl/math/ms3"
)

// sampler evaluates an SDF3 over batches of positions using reusable buffers.
// A sampler is not safe for concurrent use; parallel passes use one per task.
type sampler struct {
	sdf      SDF3
	userData any
	// posbuf's length accumulates positions to be evaluated.
	posbuf []ms3.Vec
	// distbuf is set to the calculated distances for posbuf.
	distbuf []float32
	// evals counts positions evaluated since creation.
	evals int
}

func newSampler(sdf SDF3, userData any) *sampler {
	return &sampler{sdf: sdf, userData: userData}
}

// reset discards buffered positions.
func (s *sampler) reset() { s.posbuf = s.posbuf[:0] }

// add buffers a position for evaluation and returns its index in the batch.
func (s *sampler) add(p ms3.Vec) int {
	s.posbuf = append(s.posbuf, p)
	return len(s.posbuf) - 1
}

// evaluate computes the density at all buffered positions. The returned slice
// is indexed like the buffered positions and is valid until the next call.
func (s *sampler) evaluate() ([]float32, error) {
	n := len(s.posbuf)
	if cap(s.distbuf) < n {
		s.distbuf = make([]float32, n)
	}
	dist := s.distbuf[:n]
	if n == 0 {
		return dist, nil
	}
	err := s.sdf.Evaluate(s.posbuf, dist, s.userData)
	if err != nil {
		return nil, fmt.Errorf("evaluating %d positions: %w", n, err)
	}
	s.evals += n
	return dist, nil
}
