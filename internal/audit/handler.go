package audit

import (
	"context"

	"github.com/hibiken/asynq"
)

// asyncHandlerFunc adapts a plain func([]byte) error to asynq.Handler
// without pulling the task's type/payload plumbing into every registered
// handler body.
type asyncHandlerFunc func(payload []byte) error

func (f asyncHandlerFunc) ProcessTask(_ context.Context, t *asynq.Task) error {
	return f(t.Payload())
}
