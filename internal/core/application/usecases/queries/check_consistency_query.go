package queries

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/guard"
)

var ErrCheckConsistencyQueryIsNotConstructed = errors.New(
	"CheckConsistencyQuery must be created via NewCheckConsistencyQuery constructor",
)

// CheckConsistencyQuery audits the person/order cross references of a tenant.
type CheckConsistencyQuery struct {
	tenant kernel.TenantID

	guard guard.ConstructorGuard
}

func NewCheckConsistencyQuery(tenant kernel.TenantID) (CheckConsistencyQuery, error) {
	if err := tenant.Validate(); err != nil {
		return CheckConsistencyQuery{}, err
	}
	return CheckConsistencyQuery{tenant: tenant, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckConsistencyQuery) Validate() error {
	return q.guard.Validate(ErrCheckConsistencyQueryIsNotConstructed)
}

type CheckConsistencyQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	auditor    services.ConsistencyAuditor
	recorder   ports.Recorder
}

// NewCheckConsistencyQueryHandler creates the handler. recorder may be nil.
func NewCheckConsistencyQueryHandler(uowFactory ports.UnitOfWorkFactory, recorder ports.Recorder) CheckConsistencyQueryHandler {
	return CheckConsistencyQueryHandler{
		uowFactory: uowFactory,
		auditor:    services.NewConsistencyAuditor(),
		recorder:   recorder,
	}
}

// Handle loads both sides and returns the audit report. Nothing is written.
func (h CheckConsistencyQueryHandler) Handle(ctx context.Context, query CheckConsistencyQuery) (services.Report, error) {
	if err := query.Validate(); err != nil {
		return services.Report{}, err
	}

	uow := h.uowFactory.Create()
	orders, err := uow.OrderRepository().ListAll(ctx, query.tenant)
	if err != nil {
		return services.Report{}, err
	}
	persons, err := uow.PersonRepository().List(ctx, query.tenant)
	if err != nil {
		return services.Report{}, err
	}

	report := h.auditor.Audit(orders, persons)
	if h.recorder != nil {
		h.recorder.ConsistencyChecked(report.OrphanedCount(), report.InconsistentCount(), report.DuplicateCount())
	}
	return report, nil
}
