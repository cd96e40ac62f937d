package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// ToggleState is the relationship state after a toggle.
type ToggleState string

const (
	ToggleOn  ToggleState = "on"
	ToggleOff ToggleState = "off"
)

// maxToggleAttempts bounds the delete/insert loop when inserts keep losing
// the create race to concurrent toggles.
const maxToggleAttempts = 5

// ToggleResult reports the resulting state. Record is set only when the
// relationship was created.
type ToggleResult[T any] struct {
	State  ToggleState
	Record *T
}

// toggleOps binds the store operations for one (actor, target) pair.
type toggleOps[T any] struct {
	relation string
	remove   func(ctx context.Context) (bool, error)
	insert   func(ctx context.Context, record *T) error
}

// toggle flips the relationship between an actor and a target.
//
// The delete runs first: if it removed a row the relationship is now off.
// Otherwise the insert runs guarded by target visibility. A unique violation
// means a concurrent toggle created the row between our delete and insert,
// so the loop starts over and deletes it. No state is read before writing,
// so two racing toggles always net out to an even number of flips.
func toggle[T any](ctx context.Context, ops toggleOps[T], record *T) (ToggleResult[T], error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		removed, err := ops.remove(ctx)
		if err != nil {
			return ToggleResult[T]{}, fmt.Errorf("remove %s: %w", ops.relation, err)
		}
		if removed {
			metrics.TogglesTotal.WithLabelValues(ops.relation, string(ToggleOff)).Inc()
			return ToggleResult[T]{State: ToggleOff}, nil
		}

		err = ops.insert(ctx, record)
		switch {
		case err == nil:
			metrics.TogglesTotal.WithLabelValues(ops.relation, string(ToggleOn)).Inc()
			return ToggleResult[T]{State: ToggleOn, Record: record}, nil
		case errors.Is(err, repository.ErrDuplicate):
			metrics.ToggleConflictsTotal.WithLabelValues(ops.relation).Inc()
			continue
		case errors.Is(err, repository.ErrNotFound):
			return ToggleResult[T]{}, err
		default:
			return ToggleResult[T]{}, fmt.Errorf("insert %s: %w", ops.relation, err)
		}
	}

	return ToggleResult[T]{}, fmt.Errorf("%s: %w", ops.relation, ErrToggleUnsettled)
}
