package board

import (
	"context"
	"errors"
	"fmt"
)

// step is one remote call (or local transition) in a multi-step mutation.
type step struct {
	name string
	run  func(ctx context.Context) error

	// abort stops the sequence when this step fails. Failures of other
	// steps are logged and the sequence carries on.
	abort bool
}

// runSteps executes steps in order. It returns the error of the first
// failing abort step, or ErrIncomplete joined with every soft failure.
func (b *Board) runSteps(ctx context.Context, op string, steps []step) error {
	var soft []error
	for _, s := range steps {
		err := s.run(ctx)
		if err == nil {
			continue
		}
		if s.abort {
			b.log.Error("step failed", "op", op, "step", s.name, "err", err)
			return fmt.Errorf("%s: %w", s.name, err)
		}
		b.log.Warn("step failed", "op", op, "step", s.name, "err", err)
		soft = append(soft, fmt.Errorf("%s: %w", s.name, err))
	}
	if len(soft) > 0 {
		return fmt.Errorf("%w: %w", ErrIncomplete, errors.Join(soft...))
	}
	return nil
}
