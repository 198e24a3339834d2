package health

import (
	"context"
	"sync"
)

// Registry holds the checkers consulted by the readiness probe.
type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs all checkers in parallel. The overall status is down if any check is down.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	if len(r.checkers) == 0 {
		return ReadinessResponse{Status: StatusUp}
	}

	results := make([]CheckResult, len(r.checkers))
	var wg sync.WaitGroup

	for i, checker := range r.checkers {
		wg.Add(1)
		go func(idx int, c Checker) {
			defer wg.Done()
			res := c.Check(ctx)
			results[idx] = CheckResult{
				Name:    c.Name(),
				Status:  res.Status,
				Message: res.Message,
			}
		}(i, checker)
	}

	wg.Wait()

	overall := StatusUp
	for _, res := range results {
		if res.Status == StatusDown {
			overall = StatusDown
			break
		}
	}

	return ReadinessResponse{Status: overall, Checks: results}
}
