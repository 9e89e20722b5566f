package scaffolding

import (
	"context"

	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/logging"
)

// Status is the outcome of a pipeline run.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusFailed {
		return "failed"
	}
	return "succeeded"
}

// Result is the tagged outcome of a run. On failure Step names the step
// that stopped the run and Kind classifies Err.
type Result struct {
	Status Status
	Step   string
	Kind   cerrors.Kind
	Err    error

	// Dir is the component directory.
	Dir string
	// Files lists the files written, or that would be written on a dry run,
	// in write order.
	Files  []string
	DryRun bool
}

// OK reports whether the run succeeded.
func (r Result) OK() bool { return r.Status == StatusSucceeded }

// Step is one fallible unit of the pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context, p *plan) error
}

// sequence runs steps in order and stops at the first error. Later steps
// never run once one has failed.
func sequence(ctx context.Context, logger logging.Logger, steps []Step, p *plan) Result {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return failed(step.Name, err)
		}

		op := logging.StartOperation(logger, step.Name)
		if err := step.Run(ctx, p); err != nil {
			// The reporter already shows user-facing errors.
			if cerrors.IsUserFacing(err) {
				op.Debug(ctx, "Step stopped", "error", err.Error())
			} else {
				op.EndWithError(ctx, err)
			}
			return failed(step.Name, err)
		}
		op.End(ctx)
	}
	return Result{Status: StatusSucceeded}
}

func failed(step string, err error) Result {
	return Result{
		Status: StatusFailed,
		Step:   step,
		Kind:   cerrors.KindOf(err),
		Err:    err,
	}
}
