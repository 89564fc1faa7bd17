package matchenv

import "golang.org/x/sync/errgroup"

// serialCutoff is the item count below which work runs on the caller's goroutine.
const serialCutoff = 64

// parallelRange splits [0, n) into contiguous chunks and runs fn on each
// with at most workers goroutines. fn must only write to state owned by its
// own index range.
func parallelRange(workers, n int, fn func(lo, hi int)) {
	if workers <= 1 || n < serialCutoff {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
