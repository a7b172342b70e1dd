package http

import (
	"net/http"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/validation"

	"github.com/labstack/echo/v4"
)

type personRequest struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	PhoneNotifications bool   `json:"phone_notifications"`
	EmailNotifications bool   `json:"email_notifications"`
}

func (r personRequest) form() (validation.PersonaForm, error) {
	form := validation.PersonaForm{
		Name:               r.Name,
		Phone:              r.Phone,
		Email:              r.Email,
		PhoneNotifications: r.PhoneNotifications,
		EmailNotifications: r.EmailNotifications,
	}.Sanitize()
	return form, validation.ValidatePersonaForm(form).Err()
}

func (s *Server) listPersons(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListPersonsQuery(tenant)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListPersons.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]PersonResponse, len(views))
	for i, v := range views {
		resp[i] = personFromView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) lookupPerson(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	phone, err := queryParam[string](c, "phone")
	if err != nil {
		return err
	}
	name, err := queryParam[string](c, "name")
	if err != nil {
		return err
	}

	query, err := queries.NewFindPersonByContactQuery(tenant, phone, name)
	if err != nil {
		return err
	}
	found, err := s.handlers.FindPersonByContact.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, personFromDomain(found))
}

func (s *Server) createPerson(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	var req personRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	form, err := req.form()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreatePersonCommand(tenant, kernel.NewUUID(), form.Name, form.Phone, form.Email,
		person.Preferences{Phone: form.PhoneNotifications, Email: form.EmailNotifications})
	if err != nil {
		return err
	}
	created, err := s.handlers.CreatePerson.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, personFromDomain(created))
}

type UpdatePersonResponse struct {
	Person         PersonResponse `json:"person"`
	OrdersRenamed  int64          `json:"orders_renamed"`
	OrdersRephoned int64          `json:"orders_rephoned"`
}

func (s *Server) updatePerson(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req personRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	form, err := req.form()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePersonCommand(tenant, id, form.Name, form.Phone, form.Email,
		person.Preferences{Phone: form.PhoneNotifications, Email: form.EmailNotifications})
	if err != nil {
		return err
	}
	result, err := s.handlers.UpdatePerson.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UpdatePersonResponse{
		Person:         personFromDomain(result.Person),
		OrdersRenamed:  result.OrdersRenamed,
		OrdersRephoned: result.OrdersRephoned,
	})
}

func (s *Server) deletePerson(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeletePersonCommand(tenant, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeletePerson.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
