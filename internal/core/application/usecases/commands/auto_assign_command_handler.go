package commands

import (
	"context"
	"errors"
	"log/slog"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/core/ports"
)

// AutoAssignResult is the outcome of one dispatch sweep.
type AutoAssignResult struct {
	// Assigned is the number of orders whose status became assigned as a
	// result of this sweep.
	Assigned int
	// Unplaced lists the orders the sweep could not place because no
	// courier was available. They stay in the backlog for the next sweep.
	Unplaced []kernel.UUID
}

// AutoAssignCommandHandler runs the dispatch sweep: every unassigned
// accepted order, oldest first, gets a courier dealt from the available
// pool, round-robin. Each assignment is independent; a conflict or an
// availability flip on one order is logged and skipped, never aborting the
// sweep.
//
// Example:
//
//	handler := NewAutoAssignCommandHandler(uowFactory, assignHandler, logger)
//	cmd, _ := NewAutoAssignCommand(admin)
//	result, err := handler.Handle(ctx, cmd)
//	log.Printf("assigned %d orders, %d left for next sweep", result.Assigned, len(result.Unplaced))
type AutoAssignCommandHandler struct {
	uowFactory    DispatchUoWFactory
	assignHandler AssignCourierCommandHandler
	logger        *slog.Logger
}

// NewAutoAssignCommandHandler creates the sweep handler. It reuses the
// manual assignment handler per order so both dispatch paths share one
// write path and one set of race guards.
func NewAutoAssignCommandHandler(
	uowFactory DispatchUoWFactory,
	assignHandler AssignCourierCommandHandler,
	logger *slog.Logger,
) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory:    uowFactory,
		assignHandler: assignHandler,
		logger:        logger.With("component", "auto_assign"),
	}
}

// Handle runs one sweep and reports the per-order outcomes. The sweep itself
// never fails on individual orders; only scan errors surface.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, cmd AutoAssignCommand) (AutoAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoAssignResult{}, err
	}

	backlog, picker, err := h.scan(ctx)
	if err != nil {
		return AutoAssignResult{}, err
	}

	var result AutoAssignResult
	for _, orderID := range backlog {
		dispatchTarget, err := picker.Pick()
		if errors.Is(err, services.ErrNoCourierAvailable) {
			result.Unplaced = append(result.Unplaced, orderID)
			continue
		}
		if err != nil {
			return AutoAssignResult{}, err
		}

		assignCmd, err := NewAssignCourierCommand(orderID, dispatchTarget.ID(), cmd.Caller())
		if err != nil {
			return AutoAssignResult{}, err
		}

		if _, err = h.assignHandler.Handle(ctx, assignCmd); err != nil {
			if errors.Is(err, ErrCourierUnavailable) || errors.Is(err, ports.ErrConcurrentUpdate) {
				h.logger.Info("order skipped during sweep",
					"order_id", orderID.String(), "reason", err.Error())
				continue
			}
			h.logger.Error("assignment failed during sweep",
				"order_id", orderID.String(), "error", err.Error())
			continue
		}

		result.Assigned++
	}

	return result, nil
}

// scan snapshots the unassigned backlog (oldest first) and the available
// courier pool in one read transaction.
func (h AutoAssignCommandHandler) scan(ctx context.Context) ([]kernel.UUID, *services.CourierPicker, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	backlogOrders, err := uow.OrderRepository().GetAllUnassignedInAcceptedStatus(ctx)
	if err != nil {
		return nil, nil, err
	}

	pool, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	backlog := make([]kernel.UUID, 0, len(backlogOrders))
	for _, o := range backlogOrders {
		backlog = append(backlog, o.ID())
	}

	picker, err := services.NewCourierPicker(pool)
	if err != nil {
		return nil, nil, err
	}

	return backlog, picker, nil
}
