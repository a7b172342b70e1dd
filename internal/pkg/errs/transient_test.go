package errs_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"encargos/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "bad connection", err: fmt.Errorf("query: %w", driver.ErrBadConn), want: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "connection exception class", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "connection refused message", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "gateway status", err: errors.New("smtp relay answered status 503"), want: true},
		{name: "validation", err: errs.NewValueIsInvalidError("phone"), want: false},
		{name: "conflict", err: errs.NewConflictError("person", "1"), want: false},
		{name: "not found", err: errs.NewObjectNotFoundError("order", "1"), want: false},
		{name: "referenced", err: errs.NewObjectIsReferencedError("person", "1", 2), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.IsTransient(tt.err))
		})
	}
}
