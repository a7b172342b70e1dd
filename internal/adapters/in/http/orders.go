package http

import (
	"net/http"
	"strings"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/validation"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	Date             string `json:"date"`
	Product          string `json:"product"`
	Lab              string `json:"lab"`
	Warehouse        string `json:"warehouse"`
	Customer         string `json:"customer"`
	Phone            string `json:"phone"`
	Amount           string `json:"amount"`
	Notes            string `json:"notes"`
	ConfirmDuplicate bool   `json:"confirm_duplicate"`
}

type orderDetailsRequest struct {
	Date      string `json:"date"`
	Product   string `json:"product"`
	Lab       string `json:"lab"`
	Warehouse string `json:"warehouse"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes"`
}

type orderContactRequest struct {
	Customer string `json:"customer"`
	Phone    string `json:"phone"`
}

type decisionRequest struct {
	Confirmed       bool `json:"confirmed"`
	IncludeOrdered  bool `json:"include_ordered"`
	IncludeReceived bool `json:"include_received"`
}

type changeStageRequest struct {
	Stage        string           `json:"stage" validate:"required,oneof=ordered received delivered"`
	Value        *bool            `json:"value" validate:"required"`
	Decision     *decisionRequest `json:"decision"`
	Notification string           `json:"notification" validate:"omitempty,oneof=whatsapp email decline"`
}

func (r createOrderRequest) form() validation.EncargoForm {
	return validation.EncargoForm{
		Date:      r.Date,
		Product:   r.Product,
		Lab:       r.Lab,
		Warehouse: r.Warehouse,
		Customer:  r.Customer,
		Phone:     r.Phone,
		Amount:    r.Amount,
		Notes:     r.Notes,
	}.Sanitize()
}

func (r orderDetailsRequest) form() validation.EncargoForm {
	return validation.EncargoForm{
		Date:      r.Date,
		Product:   r.Product,
		Lab:       r.Lab,
		Warehouse: r.Warehouse,
		Amount:    r.Amount,
		Notes:     r.Notes,
	}.Sanitize()
}

func (r orderContactRequest) form() validation.EncargoForm {
	return validation.EncargoForm{Customer: r.Customer, Phone: r.Phone}.Sanitize()
}

func (s *Server) listOrders(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	page, err := queryParam[int](c, "page")
	if err != nil {
		return err
	}
	pageSize, err := queryParam[int](c, "page_size")
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(tenant, page, pageSize)
	if err != nil {
		return err
	}
	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OrderPageResponse{
		Items:      ordersFromViews(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages(),
	})
}

func (s *Server) searchOrders(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	text, err := queryParam[string](c, "q")
	if err != nil {
		return err
	}

	query, err := queries.NewSearchOrdersQuery(tenant, text)
	if err != nil {
		return err
	}
	found, err := s.handlers.SearchOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersFromViews(found))
}

func (s *Server) getOrder(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(tenant, id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

func (s *Server) createOrder(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	form := req.form()
	if err = validation.ValidateEncargoForm(form, s.now()).Err(); err != nil {
		return err
	}
	details, err := form.Details(s.now())
	if err != nil {
		return err
	}
	customer, err := form.Contact()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(tenant, kernel.NewUUID(), details, customer, req.ConfirmDuplicate)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderFromDomain(created))
}

func (s *Server) updateOrderDetails(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderDetailsRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	form := req.form()
	if err = validation.ValidateEncargoDetails(form, s.now()).Err(); err != nil {
		return err
	}
	details, err := form.Details(s.now())
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(tenant, id, details)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateOrderDetails.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDomain(updated))
}

type OrderContactResponse struct {
	Order          OrderResponse   `json:"order"`
	Person         *PersonResponse `json:"person,omitempty"`
	PersonCreated  bool            `json:"person_created"`
	OrdersRenamed  int64           `json:"orders_renamed"`
	OrdersRephoned int64           `json:"orders_rephoned"`
}

func (s *Server) updateOrderContact(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderContactRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	form := req.form()
	if err = validation.ValidateEncargoContact(form).Err(); err != nil {
		return err
	}
	customer, err := form.Contact()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderContactCommand(tenant, id, customer.Name(), customer.Phone())
	if err != nil {
		return err
	}
	result, err := s.handlers.UpdateOrderContact.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := OrderContactResponse{
		Order:          orderFromDomain(result.Order),
		PersonCreated:  result.PersonCreated,
		OrdersRenamed:  result.OrdersRenamed,
		OrdersRephoned: result.OrdersRephoned,
	}
	if result.Person != nil {
		p := personFromDomain(result.Person)
		resp.Person = &p
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) changeOrderStage(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req changeStageRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	stage, err := order.ParseStage(req.Stage)
	if err != nil {
		return err
	}
	var decision *order.Decision
	if req.Decision != nil {
		d := order.Decision{
			Confirmed:       req.Decision.Confirmed,
			IncludeOrdered:  req.Decision.IncludeOrdered,
			IncludeReceived: req.Decision.IncludeReceived,
		}
		decision = &d
	}
	choice, err := notificationChoice(req.Notification)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStageCommand(tenant, id, stage, *req.Value, decision, choice)
	if err != nil {
		return err
	}
	outcome, err := s.handlers.ChangeOrderStage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stageOutcomeFromDomain(outcome))
}

func notificationChoice(s string) (commands.NotificationChoice, error) {
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "decline":
		return commands.DeclineNotification{}, nil
	}
	channel, err := person.ParseChannel(s)
	if err != nil {
		return nil, err
	}
	return commands.SendVia{Channel: channel}, nil
}

func (s *Server) deleteOrder(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(tenant, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
