package queries_test

import (
	"testing"

	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	tenant := kernel.MustTenantID("centro")

	t.Run("defaults", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(tenant, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, query.Page())
		assert.Equal(t, queries.DefaultPageSize, query.PageSize())
		require.NoError(t, query.Validate())
	})

	t.Run("page size above the cap", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(tenant, 1, queries.MaxPageSize+1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("negative page", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(tenant, -1, 10)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(kernel.TenantID{}, 1, 10)
		require.ErrorIs(t, err, kernel.ErrTenantIDIsNotConstructed)
	})
}

func TestOrderPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, queries.OrderPage{Total: 0, PageSize: 20}.TotalPages())
	assert.Equal(t, 1, queries.OrderPage{Total: 20, PageSize: 20}.TotalPages())
	assert.Equal(t, 2, queries.OrderPage{Total: 21, PageSize: 20}.TotalPages())
}

func TestNewSearchOrdersQuery_RequiresText(t *testing.T) {
	_, err := queries.NewSearchOrdersQuery(kernel.MustTenantID("centro"), "   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewFindPersonByContactQuery_RequiresPhoneOrName(t *testing.T) {
	_, err := queries.NewFindPersonByContactQuery(kernel.MustTenantID("centro"), " ", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewListCatalogItemsQuery_RejectsUnknownKind(t *testing.T) {
	_, err := queries.NewListCatalogItemsQuery(kernel.MustTenantID("centro"), catalog.UnknownKind)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.SearchOrdersQuery{}.Validate(), queries.ErrSearchOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListPersonsQuery{}.Validate(), queries.ErrListPersonsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListCatalogItemsQuery{}.Validate(), queries.ErrListCatalogItemsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.FindPersonByContactQuery{}.Validate(), queries.ErrFindPersonByContactQueryIsNotConstructed)
	assert.ErrorIs(t, queries.CheckConsistencyQuery{}.Validate(), queries.ErrCheckConsistencyQueryIsNotConstructed)
	assert.ErrorIs(t, queries.DashboardQuery{}.Validate(), queries.ErrDashboardQueryIsNotConstructed)
}
