// Package ctxutil holds small helpers for checking context state between
// pipeline stages.
package ctxutil

import (
	"context"
	"errors"
	"fmt"
)

// Canceled returns nil while ctx is live. Once ctx is done it returns
// ctx.Err(), wrapped together with the cancellation cause when one was
// recorded through context.WithCancelCause, so both match with errors.Is.
func Canceled(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	cause := context.Cause(ctx)
	if cause == nil || errors.Is(cause, err) {
		return err
	}
	return fmt.Errorf("%w: %w", err, cause)
}
