// Package step runs pipeline steps whose failure must not abort the
// surrounding pipeline.
package step

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

// Outcome is the result of a degradable step. When Err is set, Value holds
// the placeholder the step fell back to.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) Degraded() bool {
	return o.Err != nil
}

// Run calls fn and, if it fails, logs a warning and substitutes placeholder.
func Run[T any](ctx context.Context, log logger.Logger, name string, placeholder T, fn func(context.Context) (T, error)) Outcome[T] {
	v, err := fn(ctx)
	if err != nil {
		log.Warn(ctx, "%s failed: %v", name, err)
		return Outcome[T]{Value: placeholder, Err: err}
	}
	return Outcome[T]{Value: v}
}
