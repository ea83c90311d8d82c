package runner

import (
	"errors"
	"sync"
)

type Job func() error

// RunPool executes independent jobs with at most maxWorkers running at
// once and returns the joined errors. Each job must own its engine
// exclusively; the pool is for separate runs (one bake per map), never
// for parallelism inside a single run.
func RunPool(maxWorkers int, jobs []Job) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	sem := make(chan struct{}, maxWorkers)

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := j(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(job)
	}
	wg.Wait()
	return errors.Join(errs...)
}
