package queries

import (
	"context"
	"errors"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrDashboardQueryIsNotConstructed = errors.New(
	"DashboardQuery must be created via NewDashboardQuery constructor",
)

// DashboardQuery computes the aggregate counters of a tenant. Month buckets
// are calendar months of now, in now's location.
type DashboardQuery struct {
	tenant kernel.TenantID
	now    time.Time

	guard guard.ConstructorGuard
}

func NewDashboardQuery(tenant kernel.TenantID, now time.Time) (DashboardQuery, error) {
	if err := tenant.Validate(); err != nil {
		return DashboardQuery{}, err
	}
	return DashboardQuery{tenant: tenant, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q DashboardQuery) Validate() error {
	return q.guard.Validate(ErrDashboardQueryIsNotConstructed)
}

// MonthTotals counts the orders dated in one calendar month.
type MonthTotals struct {
	Orders int64
	Amount decimal.Decimal
}

// Dashboard holds the workflow counters. Each order falls in exactly one of
// Pending, AwaitingArrival, ReadyForPickup and Delivered, going by the furthest
// stage set.
type Dashboard struct {
	TotalOrders     int64
	Pending         int64
	AwaitingArrival int64
	ReadyForPickup  int64
	Delivered       int64
	// NotNotified counts received, undelivered orders whose customer was not told.
	NotNotified int64
	TotalAmount decimal.Decimal
	Persons     int64
	ThisMonth   MonthTotals
	LastMonth   MonthTotals
}

type DashboardQueryHandler struct {
	db *gorm.DB
}

func NewDashboardQueryHandler(db *gorm.DB) DashboardQueryHandler {
	return DashboardQueryHandler{db: db}
}

func (h DashboardQueryHandler) Handle(ctx context.Context, query DashboardQuery) (Dashboard, error) {
	if err := query.Validate(); err != nil {
		return Dashboard{}, err
	}

	thisMonth := time.Date(query.now.Year(), query.now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var d Dashboard
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN ordered = FALSE AND received = FALSE AND delivered = FALSE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN ordered = TRUE AND received = FALSE AND delivered = FALSE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN received = TRUE AND delivered = FALSE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN delivered = TRUE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN received = TRUE AND delivered = FALSE AND notified = FALSE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(CASE WHEN date >= ? AND date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date >= ? AND date < ? THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date >= ? AND date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date >= ? AND date < ? THEN amount ELSE 0 END), 0)
		FROM orders
		WHERE selling_point = ?
	`,
		thisMonth, nextMonth,
		thisMonth, nextMonth,
		lastMonth, thisMonth,
		lastMonth, thisMonth,
		query.tenant.String(),
	).Row().Scan(
		&d.TotalOrders,
		&d.Pending,
		&d.AwaitingArrival,
		&d.ReadyForPickup,
		&d.Delivered,
		&d.NotNotified,
		&d.TotalAmount,
		&d.ThisMonth.Orders,
		&d.ThisMonth.Amount,
		&d.LastMonth.Orders,
		&d.LastMonth.Amount,
	)
	if err != nil {
		return Dashboard{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM persons WHERE selling_point = ?
	`, query.tenant.String()).Row().Scan(&d.Persons)
	if err != nil {
		return Dashboard{}, err
	}

	return d, nil
}
