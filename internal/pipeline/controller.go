package pipeline

import "fmt"

// Status is a stage's reported outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkip    Status = "skip"
	StatusDone    Status = "done"
	StatusFatal   Status = "fatal"
)

// StepResult is returned by a stage's Invoke.
type StepResult struct {
	Status  Status
	Message string
	Err     error
}

func Success(message string) StepResult { return StepResult{Status: StatusSuccess, Message: message} }
func Skip(message string) StepResult    { return StepResult{Status: StatusSkip, Message: message} }
func Done(message string) StepResult    { return StepResult{Status: StatusDone, Message: message} }
func Fatal(message string, err error) StepResult {
	return StepResult{Status: StatusFatal, Message: message, Err: err}
}

// Stage implements C8's two-method contract.
type Stage interface {
	Name() string
	Handles(ctx *Context) bool
	Invoke(ctx *Context) StepResult
}

// ExecutionError wraps an unrecoverable stage failure, whether reported
// via a Fatal StepResult or an unexpected panic recovered from Invoke.
type ExecutionError struct {
	Stage string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("pipeline: stage %q failed: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Controller runs an ordered sequence of stages over a Context.
type Controller struct {
	Stages []Stage
}

func NewController(stages []Stage) *Controller {
	return &Controller{Stages: stages}
}

// Run executes each stage in order: Skip/Success continue, Done
// short-circuits successfully, Fatal aborts with an ExecutionError. A
// panic inside a stage's Invoke is recovered and treated the same as a
// Fatal result, mirroring the original's blanket exception handling
// around each handler invocation.
func (c *Controller) Run(ctx *Context) (res Result, err error) {
	for _, stage := range c.Stages {
		if !stage.Handles(ctx) {
			continue
		}

		result, invokeErr := c.invoke(stage, ctx)
		if invokeErr != nil {
			ctx.RecordError(invokeErr)
			return Result{}, invokeErr
		}
		ctx.Logf("[pipeline] %s: %s", stage.Name(), result.Status)

		switch result.Status {
		case StatusSkip, StatusSuccess:
			continue
		case StatusDone:
			ctx.Completed = true
			return ctx.Finalize(), nil
		case StatusFatal:
			cause := result.Err
			if cause == nil {
				cause = fmt.Errorf("%s", orDefault(result.Message, "stage failed"))
			}
			execErr := &ExecutionError{Stage: stage.Name(), Err: cause}
			ctx.RecordError(execErr)
			return Result{}, execErr
		}
	}
	return ctx.Finalize(), nil
}

func (c *Controller) invoke(stage Stage, ctx *Context) (result StepResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{Stage: stage.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return stage.Invoke(ctx), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
