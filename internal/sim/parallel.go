package sim

import (
	"context"
	"sync"
)

// Job is one independent run of an Ensemble.
type Job struct {
	Name   string
	Config Config
	Steps  []Step
}

// Ensemble runs jobs concurrently. Every job gets its own host, widget and
// freshly built metrics, so nothing is shared between goroutines.
type Ensemble struct {
	metrics func() []Metric
}

func NewEnsemble(metrics func() []Metric) *Ensemble {
	return &Ensemble{metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := New()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, jobs[idx].Config, jobs[idx].Steps)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
