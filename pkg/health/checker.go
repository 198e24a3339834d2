package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds a whole readiness probe.
const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result is the outcome of a single health check.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc struct {
	CheckName string
	Fn        func(ctx context.Context) Result
}

func (f CheckerFunc) Name() string { return f.CheckName }

func (f CheckerFunc) Check(ctx context.Context) Result { return f.Fn(ctx) }

func down(err error) Result {
	return Result{Status: StatusDown, Message: err.Error()}
}
