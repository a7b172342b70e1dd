package services

import (
	"slices"
	"strings"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

// Mismatch is an order whose cached customer name disagrees with its person.
type Mismatch struct {
	OrderID    kernel.UUID
	OrderName  string
	PersonID   kernel.UUID
	PersonName string
	Phone      string
}

// DuplicatePhone is a phone shared by more than one person.
type DuplicatePhone struct {
	Phone     string
	PersonIDs []kernel.UUID
}

// Report is the outcome of a read-only consistency audit.
type Report struct {
	Orphaned        []kernel.UUID
	Inconsistent    []Mismatch
	DuplicatePhones []DuplicatePhone
}

func (r Report) OrphanedCount() int {
	return len(r.Orphaned)
}

func (r Report) InconsistentCount() int {
	return len(r.Inconsistent)
}

func (r Report) DuplicateCount() int {
	return len(r.DuplicatePhones)
}

// IsClean reports whether no problem was found.
func (r Report) IsClean() bool {
	return r.OrphanedCount() == 0 && r.InconsistentCount() == 0 && r.DuplicateCount() == 0
}

// ConsistencyAuditor compares orders with the person records they should belong to.
//
// An order is:
//   - orphaned when no person matches it by link, phone or name
//   - inconsistent when the person it resolves to has a different name
//
// A person sharing both phone and name wins over one sharing only the phone,
// so a shared phone alone does not make an order inconsistent.
//
// Duplicate phones are counted over persons only. Repair fixes inconsistent
// orders; orphans and duplicates are reported and left alone.
type ConsistencyAuditor struct {
	resolver ContactResolver
}

func NewConsistencyAuditor() ConsistencyAuditor {
	return ConsistencyAuditor{resolver: NewContactResolver()}
}

// Audit inspects one tenant's orders and persons.
func (a ConsistencyAuditor) Audit(orders []*order.Order, persons []*person.Person) Report {
	var report Report

	byPhone := make(map[string][]*person.Person)
	for _, p := range persons {
		byPhone[p.Phone()] = append(byPhone[p.Phone()], p)
	}

	for _, o := range orders {
		owner, ok := a.resolver.CanonicalFor(o, persons)
		if !ok {
			report.Orphaned = append(report.Orphaned, o.ID())
			continue
		}
		if owner.Name() != o.Customer().Name() {
			report.Inconsistent = append(report.Inconsistent, Mismatch{
				OrderID:    o.ID(),
				OrderName:  o.Customer().Name(),
				PersonID:   owner.ID(),
				PersonName: owner.Name(),
				Phone:      owner.Phone(),
			})
		}
	}

	for phone, shared := range byPhone {
		if len(shared) < 2 {
			continue
		}
		ids := make([]kernel.UUID, 0, len(shared))
		for _, p := range shared {
			ids = append(ids, p.ID())
		}
		report.DuplicatePhones = append(report.DuplicatePhones, DuplicatePhone{Phone: phone, PersonIDs: ids})
	}
	slices.SortFunc(report.DuplicatePhones, func(x, y DuplicatePhone) int {
		return strings.Compare(x.Phone, y.Phone)
	})

	return report
}
