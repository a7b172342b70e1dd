package http

import (
	"reflect"
	"strings"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// requestValidator adapts validator/v10 to echo.Validator. Field names in
// errors are the json names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// pathID parses the :id parameter.
func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("id", c.Param("id"), err)
	}
	return id, nil
}

// queryParam reads an optional form-style query parameter. An absent
// parameter yields the zero value of T.
func queryParam[T any](c echo.Context, name string) (T, error) {
	var (
		zero T
		dest *T
	)
	// Optional parameters bind through a pointer to pointer.
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &dest); err != nil {
		return zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if dest == nil {
		return zero, nil
	}
	return *dest, nil
}
