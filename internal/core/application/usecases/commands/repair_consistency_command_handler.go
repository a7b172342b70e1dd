package commands

import (
	"context"
	"fmt"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/retry"
)

// RepairResult reports a repair run. Fixed is zero whenever Errors is not empty
// because the run is rolled back as a whole.
type RepairResult struct {
	Fixed  int
	Errors []string
}

// RepairConsistencyCommandHandler fixes name mismatches found by the
// consistency audit. Orphaned orders and shared phones are left alone.
// Each fixed order takes the person's name and phone and is linked to it.
type RepairConsistencyCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.Recorder
	retrier    *retry.Retrier
}

func NewRepairConsistencyCommandHandler(
	uowFactory UoWFactory,
	recorder ports.Recorder,
	retrier *retry.Retrier,
) RepairConsistencyCommandHandler {
	return RepairConsistencyCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorderOrNop(recorder),
		retrier:    retrier,
	}
}

// Handle runs the repair. The error is non-nil only when the run could not be
// attempted or committed; per-order failures are reported in RepairResult.Errors.
func (h RepairConsistencyCommandHandler) Handle(ctx context.Context, command RepairConsistencyCommand) (RepairResult, error) {
	if err := command.Validate(); err != nil {
		return RepairResult{}, err
	}

	result, err := retry.DoValue(ctx, h.retrier, func(ctx context.Context) (RepairResult, error) {
		return h.handle(ctx, command)
	})
	if err != nil {
		return RepairResult{}, err
	}

	h.recorder.CascadeApplied("repair", int64(result.Fixed))
	return result, nil
}

func (h RepairConsistencyCommandHandler) handle(ctx context.Context, command RepairConsistencyCommand) (RepairResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RepairResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.ListAll(ctx, command.Tenant())
	if err != nil {
		return RepairResult{}, err
	}
	persons, err := uow.PersonRepository().List(ctx, command.Tenant())
	if err != nil {
		return RepairResult{}, err
	}

	report := services.NewConsistencyAuditor().Audit(orders, persons)
	if report.InconsistentCount() == 0 {
		return RepairResult{}, nil
	}

	ordersByID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		ordersByID[o.ID()] = o
	}
	personsByID := make(map[kernel.UUID]*person.Person, len(persons))
	for _, p := range persons {
		personsByID[p.ID()] = p
	}

	for _, m := range report.Inconsistent {
		if err = repairOne(ctx, orderRepo, ordersByID[m.OrderID], personsByID[m.PersonID]); err != nil {
			// the transaction is poisoned after a failed statement, so stop at the first one
			return RepairResult{Errors: []string{fmt.Sprintf("order %s: %v", m.OrderID, err)}}, nil
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RepairResult{}, err
	}

	return RepairResult{Fixed: report.InconsistentCount()}, nil
}

func repairOne(ctx context.Context, repo ports.OrderRepository, o *order.Order, p *person.Person) error {
	if err := o.SetCustomer(p.Contact()); err != nil {
		return err
	}
	id := p.ID()
	if err := o.LinkPerson(&id); err != nil {
		return err
	}
	return repo.Update(ctx, o)
}
