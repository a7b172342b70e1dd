package cmd

import (
	"bytes"
	"testing"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAuditReport(t *testing.T) {
	orphan := kernel.NewUUID()
	mismatch := services.Mismatch{
		OrderID:    kernel.NewUUID(),
		OrderName:  "Ana Garcia",
		PersonID:   kernel.NewUUID(),
		PersonName: "Ana García",
		Phone:      "600111222",
	}
	dupA, dupB := kernel.NewUUID(), kernel.NewUUID()
	report := services.Report{
		Orphaned:        []kernel.UUID{orphan},
		Inconsistent:    []services.Mismatch{mismatch},
		DuplicatePhones: []services.DuplicatePhone{{Phone: "611000000", PersonIDs: []kernel.UUID{dupA, dupB}}},
	}

	var out bytes.Buffer
	require.NoError(t, WriteAuditReport(&out, report))

	text := out.String()
	assert.Contains(t, text, orphan.String())
	assert.Contains(t, text, mismatch.OrderID.String())
	assert.Contains(t, text, "611000000")
	assert.Contains(t, text, "orphaned: 1, inconsistent: 1, duplicate phones: 1")
}

func TestWriteAuditReport_Clean(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteAuditReport(&out, services.Report{}))

	assert.Equal(t, "No problems found.\n", out.String())
}

func TestWriteRepairResult(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteRepairResult(&out, commands.RepairResult{Fixed: 2, Errors: []string{"order x: not found"}}))

	assert.Equal(t, "repaired orders: 2\nerror: order x: not found\n", out.String())
}
