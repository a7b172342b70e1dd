package queries

import (
	"errors"
	"strings"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery matches a case-insensitive substring against the customer
// name and phone, product, lab and notes. Results are not paginated.
type SearchOrdersQuery struct {
	tenant kernel.TenantID
	text   string

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(tenant kernel.TenantID, text string) (SearchOrdersQuery, error) {
	text = strings.TrimSpace(text)
	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("q")
	}
	if err := errors.Join(tenant.Validate(), textErr); err != nil {
		return SearchOrdersQuery{}, err
	}

	return SearchOrdersQuery{tenant: tenant, text: text, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Tenant() kernel.TenantID {
	return q.tenant
}

func (q SearchOrdersQuery) Text() string {
	return q.text
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// pattern is the LIKE argument: lower-cased, wildcards escaped, wrapped in %.
func (q SearchOrdersQuery) pattern() string {
	return "%" + likeEscaper.Replace(strings.ToLower(q.text)) + "%"
}
