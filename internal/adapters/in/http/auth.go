package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

const accountKey = "account"

// Account is one static login. Every account works for exactly one selling point.
type Account struct {
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	SellingPoint string `koanf:"selling_point"`
	DisplayName  string `koanf:"display_name"`
}

// Accounts is the flat list of logins loaded from configuration.
type Accounts []Account

// Validate rejects empty credentials, invalid selling points and repeated usernames.
func (a Accounts) Validate() error {
	if len(a) == 0 {
		return errors.New("at least one account is required")
	}
	seen := make(map[string]struct{}, len(a))
	for i, acc := range a {
		if acc.Username == "" || acc.Password == "" {
			return fmt.Errorf("account %d: username and password are required", i)
		}
		if _, err := kernel.NewTenantID(acc.SellingPoint); err != nil {
			return fmt.Errorf("account %s: %w", acc.Username, err)
		}
		if _, dup := seen[acc.Username]; dup {
			return fmt.Errorf("account %s is listed twice", acc.Username)
		}
		seen[acc.Username] = struct{}{}
	}
	return nil
}

// Authenticate compares in constant time so a wrong password takes as long as
// an unknown user.
func (a Accounts) Authenticate(username, password string) (Account, bool) {
	var found Account
	ok := 0
	for _, acc := range a {
		userMatch := subtle.ConstantTimeCompare([]byte(acc.Username), []byte(username))
		passMatch := subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password))
		if userMatch&passMatch == 1 {
			found = acc
			ok = 1
		}
	}
	return found, ok == 1
}

// Tenant is the selling point of the account. Accounts are validated at
// startup, so the error is not expected.
func (a Account) Tenant() (kernel.TenantID, error) {
	return kernel.NewTenantID(a.SellingPoint)
}

// Session is what a successful login returns.
type Session struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	SellingPoint string `json:"selling_point"`
}

func newSession(acc Account) Session {
	return Session{
		Username:     acc.Username,
		DisplayName:  acc.DisplayName,
		SellingPoint: acc.SellingPoint,
	}
}

// basicAuthValidator is used with echo's BasicAuth middleware.
func basicAuthValidator(accounts Accounts) func(username, password string, c echo.Context) (bool, error) {
	return func(username, password string, c echo.Context) (bool, error) {
		acc, ok := accounts.Authenticate(username, password)
		if !ok {
			return false, nil
		}
		c.Set(accountKey, acc)
		req := c.Request()
		c.SetRequest(req.WithContext(logging.WithTenant(req.Context(), acc.SellingPoint)))
		return true, nil
	}
}

func currentAccount(c echo.Context) (Account, bool) {
	acc, ok := c.Get(accountKey).(Account)
	return acc, ok
}

// tenantOf returns the selling point of the authenticated account.
func tenantOf(c echo.Context) (kernel.TenantID, error) {
	acc, ok := currentAccount(c)
	if !ok {
		return kernel.TenantID{}, echo.NewHTTPError(http.StatusUnauthorized)
	}
	return acc.Tenant()
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// login checks the credentials in the body and returns the session. There is
// no server-side session: later calls send the same credentials as Basic auth.
func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acc, ok := s.accounts.Authenticate(req.Username, req.Password)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
	}
	return c.JSON(http.StatusOK, newSession(acc))
}

func (s *Server) currentSession(c echo.Context) error {
	acc, ok := currentAccount(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, newSession(acc))
}
