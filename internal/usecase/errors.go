package usecase

import (
	"errors"
	"log/slog"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

var (
	// ErrUnauthenticated is returned by every mutation called without an actor.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrSelfSubscription is returned when self-subscription is disabled and
	// a channel tries to subscribe to itself.
	ErrSelfSubscription = errors.New("cannot subscribe to own channel")

	// ErrToggleUnsettled is returned when a toggle keeps losing races with
	// concurrent toggles of the same pair.
	ErrToggleUnsettled = errors.New("toggle did not settle after repeated conflicts")
)

// ownership counts owner-filtered mutations that matched no row and returns
// err unchanged. Missing and foreign resources are counted together.
func ownership(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		metrics.OwnershipRejectionsTotal.WithLabelValues(resource).Inc()
		slog.Debug("owned mutation matched no row", "resource", resource)
	}
	return err
}
