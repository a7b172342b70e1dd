package commands

import (
	"errors"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"
)

var (
	ErrCreateCatalogItemCommandIsNotConstructed = errors.New(
		"CreateCatalogItemCommand must be created via NewCreateCatalogItemCommand constructor",
	)
	ErrRenameCatalogItemCommandIsNotConstructed = errors.New(
		"RenameCatalogItemCommand must be created via NewRenameCatalogItemCommand constructor",
	)
	ErrDeleteCatalogItemCommandIsNotConstructed = errors.New(
		"DeleteCatalogItemCommand must be created via NewDeleteCatalogItemCommand constructor",
	)
)

// CatalogItemRef addresses one catalog item.
type CatalogItemRef struct {
	Tenant kernel.TenantID
	Kind   catalog.Kind
	ID     kernel.UUID
}

func (r CatalogItemRef) validate() error {
	return errors.Join(r.Tenant.Validate(), r.Kind.Validate(), r.ID.Validate())
}

// CreateCatalogItemCommand adds a product, laboratory or warehouse.
type CreateCatalogItemCommand struct {
	ref  CatalogItemRef
	name string

	guard guard.ConstructorGuard
}

func NewCreateCatalogItemCommand(ref CatalogItemRef, name string) (CreateCatalogItemCommand, error) {
	if err := ref.validate(); err != nil {
		return CreateCatalogItemCommand{}, err
	}
	return CreateCatalogItemCommand{ref: ref, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateCatalogItemCommandIsNotConstructed)
}

func (c CreateCatalogItemCommand) Ref() CatalogItemRef {
	return c.ref
}

func (c CreateCatalogItemCommand) Name() string {
	return c.name
}

// RenameCatalogItemCommand renames an item and every order naming it.
type RenameCatalogItemCommand struct {
	ref  CatalogItemRef
	name string

	guard guard.ConstructorGuard
}

func NewRenameCatalogItemCommand(ref CatalogItemRef, name string) (RenameCatalogItemCommand, error) {
	if err := ref.validate(); err != nil {
		return RenameCatalogItemCommand{}, err
	}
	return RenameCatalogItemCommand{ref: ref, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c RenameCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrRenameCatalogItemCommandIsNotConstructed)
}

func (c RenameCatalogItemCommand) Ref() CatalogItemRef {
	return c.ref
}

func (c RenameCatalogItemCommand) Name() string {
	return c.name
}

// DeleteCatalogItemCommand removes an item. Orders keep the name they stored.
type DeleteCatalogItemCommand struct {
	ref CatalogItemRef

	guard guard.ConstructorGuard
}

func NewDeleteCatalogItemCommand(ref CatalogItemRef) (DeleteCatalogItemCommand, error) {
	if err := ref.validate(); err != nil {
		return DeleteCatalogItemCommand{}, err
	}
	return DeleteCatalogItemCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogItemCommandIsNotConstructed)
}

func (c DeleteCatalogItemCommand) Ref() CatalogItemRef {
	return c.ref
}
