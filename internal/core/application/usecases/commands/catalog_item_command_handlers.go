package commands

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/retry"
)

// ensureNameIsFree fails with a ConflictError when another item of the kind has name.
func ensureNameIsFree(
	ctx context.Context,
	repo ports.CatalogRepository,
	tenant kernel.TenantID,
	kind catalog.Kind,
	name string,
	exclude *kernel.UUID,
) error {
	existing, err := repo.FindByName(ctx, tenant, kind, name)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if exclude != nil && existing.ID().IsEqual(*exclude) {
		return nil
	}
	return errs.NewConflictErrorWithCause("another "+kind.String(), existing.Name(), ErrNameTaken)
}

type CreateCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	retrier    *retry.Retrier
}

func NewCreateCatalogItemCommandHandler(
	uowFactory CatalogUoWFactory,
	retrier *retry.Retrier,
) CreateCatalogItemCommandHandler {
	return CreateCatalogItemCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle adds the item. Names are unique per kind, ignoring case.
func (h CreateCatalogItemCommandHandler) Handle(
	ctx context.Context,
	command CreateCatalogItemCommand,
) (*catalog.Item, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ref := command.Ref()
	item, err := catalog.NewItem(ref.ID, ref.Tenant, ref.Kind, command.Name())
	if err != nil {
		return nil, err
	}

	return retry.DoValue(ctx, h.retrier, func(ctx context.Context) (*catalog.Item, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		items := uow.CatalogRepository()

		if err := ensureNameIsFree(ctx, items, ref.Tenant, ref.Kind, item.Name(), nil); err != nil {
			return nil, err
		}

		if err := items.Add(ctx, item); err != nil {
			return nil, err
		}

		if err := uow.Commit(ctx); err != nil {
			return nil, err
		}

		return item, nil
	})
}

// RenameCatalogItemResult is the renamed item and the number of orders rewritten.
type RenameCatalogItemResult struct {
	Item          *catalog.Item
	OrdersUpdated int64
}

// RenameCatalogItemCommandHandler renames an item and the orders storing its
// old name in one transaction.
type RenameCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	recorder   ports.Recorder
	retrier    *retry.Retrier
}

func NewRenameCatalogItemCommandHandler(
	uowFactory CatalogUoWFactory,
	recorder ports.Recorder,
	retrier *retry.Retrier,
) RenameCatalogItemCommandHandler {
	return RenameCatalogItemCommandHandler{uowFactory: uowFactory, recorder: recorderOrNop(recorder), retrier: retrier}
}

func (h RenameCatalogItemCommandHandler) Handle(
	ctx context.Context,
	command RenameCatalogItemCommand,
) (RenameCatalogItemResult, error) {
	if err := command.Validate(); err != nil {
		return RenameCatalogItemResult{}, err
	}

	result, err := retry.DoValue(ctx, h.retrier, func(ctx context.Context) (RenameCatalogItemResult, error) {
		ref := command.Ref()

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return RenameCatalogItemResult{}, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		items := uow.CatalogRepository()

		item, err := items.Get(ctx, ref.Tenant, ref.Kind, ref.ID)
		if err != nil {
			return RenameCatalogItemResult{}, err
		}

		oldName := item.Name()
		if err = item.Rename(command.Name()); err != nil {
			return RenameCatalogItemResult{}, err
		}
		if err = ensureNameIsFree(ctx, items, ref.Tenant, ref.Kind, item.Name(), &ref.ID); err != nil {
			return RenameCatalogItemResult{}, err
		}

		if err = items.Update(ctx, item); err != nil {
			return RenameCatalogItemResult{}, err
		}

		updated, err := uow.OrderRepository().RenameCatalogReference(ctx, ref.Tenant, ref.Kind, oldName, item.Name())
		if err != nil {
			return RenameCatalogItemResult{}, err
		}

		if err = uow.Commit(ctx); err != nil {
			return RenameCatalogItemResult{}, err
		}

		return RenameCatalogItemResult{Item: item, OrdersUpdated: updated}, nil
	})
	if err != nil {
		return RenameCatalogItemResult{}, err
	}

	h.recorder.CascadeApplied(command.Ref().Kind.String(), result.OrdersUpdated)
	return result, nil
}

type DeleteCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	retrier    *retry.Retrier
}

func NewDeleteCatalogItemCommandHandler(
	uowFactory CatalogUoWFactory,
	retrier *retry.Retrier,
) DeleteCatalogItemCommandHandler {
	return DeleteCatalogItemCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h DeleteCatalogItemCommandHandler) Handle(ctx context.Context, command DeleteCatalogItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, func(ctx context.Context) error {
		ref := command.Ref()

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := uow.CatalogRepository().Delete(ctx, ref.Tenant, ref.Kind, ref.ID); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
