package cmd

import (
	"fmt"
	"io"
	"strings"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/services"

	"github.com/olekukonko/tablewriter"
)

// WriteAuditReport prints one row per problem followed by the totals.
func WriteAuditReport(w io.Writer, r services.Report) error {
	if r.IsClean() {
		_, err := fmt.Fprintln(w, "No problems found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Problem", "Order", "Person", "Detail")
	for _, id := range r.Orphaned {
		if err := table.Append("orphaned", id.String(), "", "no person matches the order"); err != nil {
			return err
		}
	}
	for _, m := range r.Inconsistent {
		detail := fmt.Sprintf("order says %q, person is %q", m.OrderName, m.PersonName)
		if err := table.Append("inconsistent", m.OrderID.String(), m.PersonID.String(), detail); err != nil {
			return err
		}
	}
	for _, d := range r.DuplicatePhones {
		ids := make([]string, len(d.PersonIDs))
		for i, id := range d.PersonIDs {
			ids[i] = id.String()
		}
		if err := table.Append("duplicate_phone", "", strings.Join(ids, " "), d.Phone); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "orphaned: %d, inconsistent: %d, duplicate phones: %d\n",
		r.OrphanedCount(), r.InconsistentCount(), r.DuplicateCount())
	return err
}

// WriteRepairResult prints the repaired count and every failure.
func WriteRepairResult(w io.Writer, r commands.RepairResult) error {
	if _, err := fmt.Fprintf(w, "repaired orders: %d\n", r.Fixed); err != nil {
		return err
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "error: %s\n", e); err != nil {
			return err
		}
	}
	return nil
}
