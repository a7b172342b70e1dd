// Package queries contains the read side: paginated and searched order lists,
// person and catalog lists, contact lookup, the consistency audit and the
// dashboard. Handlers read straight from the database and return read models.
package queries

import (
	"errors"
	"fmt"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery asks for one page of orders, newest date first.
// Pages start at 1.
type ListOrdersQuery struct {
	tenant   kernel.TenantID
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. A zero page or page size takes the default.
func NewListOrdersQuery(tenant kernel.TenantID, page, pageSize int) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	var errList []error
	errList = append(errList, tenant.Validate())
	if page < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is below 1", page)))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page_size", pageSize, 1, MaxPageSize))
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		tenant:   tenant,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Tenant() kernel.TenantID {
	return q.tenant
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

func (q ListOrdersQuery) offset() int {
	return (q.page - 1) * q.pageSize
}

// OrderPage is one page of orders plus the tenant total.
type OrderPage struct {
	Items    []OrderView
	Total    int64
	Page     int
	PageSize int
}

// TotalPages rounds up; an empty list has zero pages.
func (p OrderPage) TotalPages() int {
	if p.PageSize == 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
