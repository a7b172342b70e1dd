// Package sqltypes holds column types shared by the sqlstore repositories.
package sqltypes

import (
	"encargos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// UUID stores a google/uuid value as a native uuid column on Postgres and as
// char(36) on MySQL. Scan and Value come from the embedded uuid.UUID.
type UUID struct {
	uuid.UUID
}

// GormDBDataType picks the column type per dialect.
func (UUID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "char(36)"
	}
	return "uuid"
}

// FromKernel converts a domain identifier.
func FromKernel(id kernel.UUID) UUID {
	return UUID{UUID: id.Bytes()}
}

// FromKernelPtr converts an optional domain identifier.
func FromKernelPtr(id *kernel.UUID) *UUID {
	if id == nil {
		return nil
	}
	v := FromKernel(*id)
	return &v
}

// Kernel converts back to a domain identifier.
func (u UUID) Kernel() (kernel.UUID, error) {
	return kernel.UUIDFromBytes(u.UUID[:])
}

// KernelPtr converts an optional column back to a domain identifier.
func KernelPtr(u *UUID) (*kernel.UUID, error) {
	if u == nil {
		return nil, nil
	}
	id, err := u.Kernel()
	if err != nil {
		return nil, err
	}
	return &id, nil
}
