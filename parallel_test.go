package fastdc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alitto/pond/v2"
)

func TestForEachPartCoversRange(t *testing.T) {
	pool := pond.NewPool(4)
	defer pool.StopAndWait()
	for _, p := range []pond.Pool{nil, pool} {
		for _, tc := range []struct{ n, parts int }{{0, 3}, {1, 4}, {7, 3}, {100, 8}, {5, 64}} {
			hits := make([]int, tc.n)
			forEachPart(p, tc.n, tc.parts, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					hits[i]++
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Errorf("pool=%v n=%d parts=%d: index %d visited %d times", p != nil, tc.n, tc.parts, i, h)
				}
			}
		}
	}
}

func TestRunPartsLowestError(t *testing.T) {
	pool := pond.NewPool(4)
	defer pool.StopAndWait()
	for _, p := range []pond.Pool{nil, pool} {
		err := runParts(p, 40, 4, func(part, lo, hi int) error {
			if part >= 2 {
				return fmt.Errorf("part %d: %w", part, errEval)
			}
			return nil
		})
		if !errors.Is(err, errEval) || err.Error() != "part 2: "+errEval.Error() {
			t.Errorf("pool=%v: got %v, want error of part 2", p != nil, err)
		}
	}
}
