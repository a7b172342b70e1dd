package main

import (
	"fmt"

	"encargos/cmd"
	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func runAudit(c *cobra.Command, _ []string) error {
	tenant, err := kernel.NewTenantID(tenantFlag)
	if err != nil {
		return err
	}
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	root, err := cmd.NewCompositionRoot(a.cfg, a.db, a.logger)
	if err != nil {
		return err
	}
	query, err := queries.NewCheckConsistencyQuery(tenant)
	if err != nil {
		return err
	}
	report, err := root.CreateCheckConsistencyQueryHandler().Handle(c.Context(), query)
	if err != nil {
		return fmt.Errorf("audit %s: %w", tenant, err)
	}
	return cmd.WriteAuditReport(c.OutOrStdout(), report)
}

func runRepair(c *cobra.Command, _ []string) error {
	tenant, err := kernel.NewTenantID(tenantFlag)
	if err != nil {
		return err
	}
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	root, err := cmd.NewCompositionRoot(a.cfg, a.db, a.logger)
	if err != nil {
		return err
	}
	command, err := commands.NewRepairConsistencyCommand(tenant)
	if err != nil {
		return err
	}
	result, err := root.CreateRepairConsistencyCommandHandler().Handle(c.Context(), command)
	if err != nil {
		return fmt.Errorf("repair %s: %w", tenant, err)
	}
	return cmd.WriteRepairResult(c.OutOrStdout(), result)
}
