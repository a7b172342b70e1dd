package http

import (
	"net/http"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/validation"

	"github.com/labstack/echo/v4"
)

type catalogItemRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r catalogItemRequest) name() (string, error) {
	name := validation.SanitizeInput(r.Name)
	if err := validation.ValidateText(name, "nombre", true, catalog.NameMaxLength); err != nil {
		return "", validation.Result{Errors: map[string]string{"name": messageOf(err)}}.Err()
	}
	return name, nil
}

func messageOf(err error) string {
	msgs, _ := validation.FieldMessages(err)
	for _, m := range msgs {
		return m
	}
	return msgFieldInvalid
}

func (s *Server) catalogRef(c echo.Context, withID bool) (commands.CatalogItemRef, error) {
	tenant, err := tenantOf(c)
	if err != nil {
		return commands.CatalogItemRef{}, err
	}
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		return commands.CatalogItemRef{}, err
	}
	id := kernel.NewUUID()
	if withID {
		if id, err = pathID(c); err != nil {
			return commands.CatalogItemRef{}, err
		}
	}
	return commands.CatalogItemRef{Tenant: tenant, Kind: kind, ID: id}, nil
}

func (s *Server) listCatalogItems(c echo.Context) error {
	tenant, err := tenantOf(c)
	if err != nil {
		return err
	}
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		return err
	}

	query, err := queries.NewListCatalogItemsQuery(tenant, kind)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListCatalogItems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]CatalogItemResponse, len(views))
	for i, v := range views {
		resp[i] = catalogItemFromView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createCatalogItem(c echo.Context) error {
	ref, err := s.catalogRef(c, false)
	if err != nil {
		return err
	}
	var req catalogItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	name, err := req.name()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCatalogItemCommand(ref, name)
	if err != nil {
		return err
	}
	item, err := s.handlers.CreateCatalogItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, catalogItemFromDomain(item))
}

type RenameCatalogItemResponse struct {
	Item          CatalogItemResponse `json:"item"`
	OrdersUpdated int64               `json:"orders_updated"`
}

func (s *Server) renameCatalogItem(c echo.Context) error {
	ref, err := s.catalogRef(c, true)
	if err != nil {
		return err
	}
	var req catalogItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	name, err := req.name()
	if err != nil {
		return err
	}

	cmd, err := commands.NewRenameCatalogItemCommand(ref, name)
	if err != nil {
		return err
	}
	result, err := s.handlers.RenameCatalogItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RenameCatalogItemResponse{
		Item:          catalogItemFromDomain(result.Item),
		OrdersUpdated: result.OrdersUpdated,
	})
}

func (s *Server) deleteCatalogItem(c echo.Context) error {
	ref, err := s.catalogRef(c, true)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteCatalogItemCommand(ref)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteCatalogItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
