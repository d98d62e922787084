package workflow

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow/command"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

var (
	ErrWorkflowMustBeSet     = errors.New("workflow must be set")
	ErrNameMustBeSet         = errors.New("name must be set")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicateTarget       = errors.New("target is already produced by another task")
	ErrIntraGroupDependency  = errors.New("task depends on a target of its own group")
	ErrMissingUpstreamOutput = errors.New("missing upstream output")

	ErrBatchLengthMismatch   = model.ErrBatchLengthMismatch
	ErrPlaceholderOutOfRange = command.ErrPlaceholderOutOfRange
	ErrInvalidResources      = model.ErrInvalidResources
)

// ConstructionError is returned when a graph fragment cannot be assembled. It
// names the stage and the parameter at fault, and wraps the sentinel error.
type ConstructionError struct {
	Stage     string
	Parameter string
	Err       error
}

func (e *ConstructionError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("stage %q: parameter %q: %v", e.Stage, e.Parameter, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors.Cause walk through a ConstructionError.
func (e *ConstructionError) Cause() error { return e.Err }

// NewConstructionError wraps err with the stage and parameter it relates to.
// An error that already is a ConstructionError for the same stage is returned
// as is.
func NewConstructionError(stage, parameter string, err error) error {
	if err == nil {
		return nil
	}

	var cErr *ConstructionError
	if errors.As(err, &cErr) && cErr.Stage == stage {
		return err
	}

	return &ConstructionError{Stage: stage, Parameter: parameter, Err: err}
}

// parameterOf guesses which builder parameter an error is about.
func parameterOf(err error) string {
	switch {
	case errors.Is(err, command.ErrPlaceholderOutOfRange), errors.Is(err, command.ErrMalformedPlaceholder):
		return "template"
	case errors.Is(err, model.ErrInvalidResources):
		return "resources"
	case errors.Is(err, model.ErrBatchLengthMismatch):
		return "depends/targets"
	case errors.Is(err, ErrDuplicateTarget), errors.Is(err, ErrIntraGroupDependency):
		return "targets"
	case errors.Is(err, model.ErrEmptyIdentifier), errors.Is(err, ErrMissingUpstreamOutput):
		return "depends"
	default:
		return ""
	}
}
