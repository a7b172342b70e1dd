package http

import (
	"net/http"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

func (s *Server) checkConsistency(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}

	query, err := queries.NewCheckConsistencyQuery(tenant)
	if err != nil {
		return err
	}
	report, err := s.handlers.CheckConsistency.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportFromDomain(report))
}

func (s *Server) repairConsistency(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRepairConsistencyCommand(tenant)
	if err != nil {
		return err
	}
	result, err := s.handlers.RepairConsistency.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	errors := result.Errors
	if errors == nil {
		errors = []string{}
	}
	return c.JSON(http.StatusOK, RepairResponse{Fixed: result.Fixed, Errors: errors})
}

func (s *Server) dashboard(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}

	query, err := queries.NewDashboardQuery(tenant, s.now())
	if err != nil {
		return err
	}
	d, err := s.handlers.Dashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardFromQuery(d))
}
