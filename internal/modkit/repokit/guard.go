package repokit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// GuardTimeout bounds a startup check when ctx carries no deadline
const GuardTimeout = 5 * time.Second

// Guarder checks that its backends answer; *store.Store is one
type Guarder interface {
	Guard(context.Context) error
}

// CheckGuard runs g.Guard, adding GuardTimeout when ctx has no deadline of its own
func CheckGuard(ctx context.Context, g Guarder) error {
	if g == nil {
		return errors.New("dependency guard: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return fmt.Errorf("dependency guard failed: %w", err)
	}
	return nil
}

// MustGuard panics when CheckGuard fails; for service startup
func MustGuard(ctx context.Context, g Guarder) {
	if err := CheckGuard(ctx, g); err != nil {
		panic(err)
	}
}
