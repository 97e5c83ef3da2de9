package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/throttling"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/metrics"
)

// releasedOrder pairs a released ID with the reason, so counters can be
// bumped after the transaction commits.
type releasedOrder struct {
	id     kernel.UUID
	reason order.ReleaseReason
}

// EvaluateReleaseCommandHandler drains a restaurant's held queue. It runs
// after every order mutation and on the periodic sweep, always in one
// transaction:
//
//  1. throttling disabled — every held order is released at once;
//  2. orders held past the max hold time are released oldest-first;
//  3. if the load has recovered under both release ceilings, exactly one
//     more order is released. The next evaluation sees the new load and
//     decides again, so a recovered kitchen refills one order at a time.
type EvaluateReleaseCommandHandler struct {
	uowFactory UoWFactory
}

// NewEvaluateReleaseCommandHandler creates the release-engine handler.
func NewEvaluateReleaseCommandHandler(uowFactory UoWFactory) EvaluateReleaseCommandHandler {
	return EvaluateReleaseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle evaluates the held queue and returns the IDs of released orders,
// oldest hold first.
func (h *EvaluateReleaseCommandHandler) Handle(ctx context.Context, cmd EvaluateReleaseCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settings, err := resolveSettings(ctx, uow, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	held, err := orderRepo.GetHeld(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return nil, uow.Commit(ctx)
	}

	now := time.Now()

	var released []releasedOrder
	if !settings.Enabled() {
		released, err = releaseAll(ctx, orderRepo, held, now)
	} else {
		released, err = h.releaseEligible(ctx, orderRepo, settings, held, cmd.RestaurantID(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(released))
	for _, r := range released {
		metrics.OrdersReleased.WithLabelValues(r.reason.String()).Inc()
		ids = append(ids, r.id)
	}
	return ids, nil
}

// releaseEligible applies the timeout pass and then at most one
// load-recovery release over the remaining queue.
func (h *EvaluateReleaseCommandHandler) releaseEligible(
	ctx context.Context,
	repo ports.OrderRepository,
	settings throttling.Settings,
	held []*order.Order,
	restaurantID kernel.UUID,
	now time.Time,
) ([]releasedOrder, error) {
	maxHold := time.Duration(settings.MaxHoldMinutes()) * time.Minute

	var released []releasedOrder
	var remaining []*order.Order
	for _, aggregate := range held {
		heldAt := aggregate.ThrottleHeldAt()
		if heldAt == nil || now.Sub(*heldAt) < maxHold {
			remaining = append(remaining, aggregate)
			continue
		}

		if !aggregate.Release(order.ReleaseReasonMaxHoldTimeout, order.ThrottleSourceAuto, now) {
			continue
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		released = append(released, releasedOrder{id: aggregate.ID(), reason: order.ReleaseReasonMaxHoldTimeout})
	}

	if len(remaining) == 0 {
		return released, nil
	}

	// Timed-out orders just rejoined the active queue inside this
	// transaction, so the sample already counts them.
	load, err := sampleLoad(ctx, repo, restaurantID, now)
	if err != nil {
		return nil, err
	}
	if !throttling.Recovered(load, settings) {
		return released, nil
	}

	next := remaining[0]
	if !next.Release(order.ReleaseReasonLoadRecovered, order.ThrottleSourceAuto, now) {
		return released, nil
	}
	if err := repo.Update(ctx, next); err != nil {
		return nil, err
	}

	return append(released, releasedOrder{id: next.ID(), reason: order.ReleaseReasonLoadRecovered}), nil
}

// releaseAll drains the queue when throttling has been switched off, so
// nothing stays parked behind a disabled engine.
func releaseAll(ctx context.Context, repo ports.OrderRepository, held []*order.Order, now time.Time) ([]releasedOrder, error) {
	var released []releasedOrder
	for _, aggregate := range held {
		if !aggregate.Release(order.ReleaseReasonLoadRecovered, order.ThrottleSourceAuto, now) {
			continue
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		released = append(released, releasedOrder{id: aggregate.ID(), reason: order.ReleaseReasonLoadRecovered})
	}
	return released, nil
}
