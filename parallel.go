package fastdc

import (
	"sync"

	"github.com/alitto/pond/v2"
)

// splitRange returns the bounds of the part'th of parts contiguous chunks of [0,n).
func splitRange(n, parts, part int) (lo, hi int) {
	return n * part / parts, n * (part + 1) / parts
}

// runParts calls fn for each of parts contiguous chunks of [0,n). When pool is
// nil the chunks run sequentially on the calling goroutine. The returned error
// is that of the lowest numbered failing part so results do not depend on
// scheduling.
func runParts(pool pond.Pool, n, parts int, fn func(part, lo, hi int) error) error {
	if parts < 1 || n == 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	if pool == nil || parts == 1 {
		for part := 0; part < parts; part++ {
			lo, hi := splitRange(n, parts, part)
			if err := fn(part, lo, hi); err != nil {
				return err
			}
		}
		return nil
	}
	errs := make([]error, parts)
	var wg sync.WaitGroup
	for part := 0; part < parts; part++ {
		wg.Add(1)
		lo, hi := splitRange(n, parts, part)
		pool.Submit(func() {
			defer wg.Done()
			errs[part] = fn(part, lo, hi)
		})
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// forEachPart is runParts for work that cannot fail.
func forEachPart(pool pond.Pool, n, parts int, fn func(lo, hi int)) {
	_ = runParts(pool, n, parts, func(_, lo, hi int) error {
		fn(lo, hi)
		return nil
	})
}
