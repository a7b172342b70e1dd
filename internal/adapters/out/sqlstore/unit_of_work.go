// Package sqlstore provides the GORM implementation of the persistence
// gateway: connection setup, schema migration and the Unit of Work that binds
// the order, person and catalog repositories to one transaction.
//
// Key Features:
//   - One transaction spanning orders, persons and catalog items, so a cascade
//     either lands on every row or on none
//   - Every repository method takes the selling point and scopes its SQL to it
//   - Postgres and MySQL dialects behind the same repositories
//   - Repositories outside a begun unit of work run on the pool, for reads
//
// Usage Patterns:
//
// Single Aggregate Write:
//
//	factory := sqlstore.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Cascading Person Edit:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// The person and its orders change together.
//	if _, err := uow.OrderRepository().RenameCustomer(ctx, tenant, personID, "Ana", "Ana García"); err != nil {
//	    return err
//	}
//	if err := uow.PersonRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Read Without a Transaction:
//
//	orders, err := factory.Create().OrderRepository().ListAll(ctx, tenant)
//
// Error Handling:
//   - Begin errors are returned as is and leave nothing open
//   - Rollback after Commit returns gorm.ErrInvalidTransaction and is safe to ignore,
//     so a deferred Rollback is the usual pattern
//   - Missing rows surface as errs.ObjectNotFoundError
package sqlstore

import (
	"context"

	"encargos/internal/adapters/out/sqlstore/catalogrepo"
	"encargos/internal/adapters/out/sqlstore/orderrepo"
	"encargos/internal/adapters/out/sqlstore/personrepo"
	"encargos/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory wraps an open connection, usually from Open.
//
// Example:
//
//	db, err := sqlstore.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	factory := sqlstore.NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. A second call while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) PersonRepository() ports.PersonRepository {
	return personrepo.NewGormPersonRepository(uow.conn())
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
