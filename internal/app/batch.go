package app

import (
	"fmt"
	"sync"
)

// GenerateAll produces every requested card using a bounded worker pool.
// Cards are independent, so a failed card never stops the batch; the
// returned errors name each card that was not produced.
func (g *Generator) GenerateAll(reqs []Request, workers int) []error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	work := make(chan Request)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range work {
				if err := g.Generate(req); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", req.Output, err))
					mu.Unlock()
				}
			}
		}()
	}

	for _, req := range reqs {
		work <- req
	}
	close(work)
	wg.Wait()

	return errs
}
