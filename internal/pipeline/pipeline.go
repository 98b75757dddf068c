// Package pipeline routes commands and queries through validation and
// execution. A command goes to its validator first (when one is registered)
// and only reaches the handler with a clean validation pass; the handler's
// result flows back unchanged. The pipeline performs no retries; a failed
// result is terminal for that dispatch.
package pipeline

import (
	"context"

	"real-estate-backend/internal/result"
)

// Handler executes one use case.
type Handler[C any, T any] interface {
	Handle(ctx context.Context, cmd C) result.Result[T]
}

// Validator runs structural and cross-field rules over a command before
// execution. It collects every failed rule, never stops at the first, never
// mutates state, and performs no I/O beyond existence checks its rules need.
type Validator[C any] interface {
	Validate(ctx context.Context, cmd C) []*result.Error
}

// Pipeline binds a command type to its optional validator and its handler.
type Pipeline[C any, T any] struct {
	validator Validator[C]
	handler   Handler[C, T]
}

// New builds a pipeline. validator may be nil for commands without rules.
func New[C any, T any](validator Validator[C], handler Handler[C, T]) *Pipeline[C, T] {
	return &Pipeline[C, T]{validator: validator, handler: handler}
}

// Send dispatches the command: validator (if any) then handler, in that
// order. Validation failure short-circuits and all collected errors come back
// together without the handler running. ctx reaches the handler and
// everything it awaits.
func (p *Pipeline[C, T]) Send(ctx context.Context, cmd C) result.Result[T] {
	if p.validator != nil {
		if errs := p.validator.Validate(ctx, cmd); len(errs) > 0 {
			return result.Fail[T](errs...)
		}
	}
	return p.handler.Handle(ctx, cmd)
}
