package http

import (
	"errors"
	"fmt"
	"net/http"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/validation"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/logging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// User facing messages. Technical detail goes to the log only.
const (
	msgInvalid             = "Revisa los datos introducidos"
	msgNotFound            = "No se ha encontrado el registro"
	msgConflict            = "La operación entra en conflicto con otro registro"
	msgPhoneTaken          = "Ese teléfono ya pertenece a otra persona"
	msgNameTaken           = "Ya existe un elemento con ese nombre"
	msgPotentialDuplicate  = "Ya existe un encargo parecido para este cliente hoy. Confirma si quieres crearlo igualmente"
	msgReferenced          = "No se puede borrar porque hay %d encargos que lo usan"
	msgNotificationFailed  = "No se ha podido enviar el aviso. Puedes reintentar o continuar sin avisar"
	msgUnavailable         = "El servicio no está disponible en este momento. Inténtalo de nuevo en unos minutos"
	msgUnexpected          = "Ha ocurrido un error inesperado"
	msgBadCredentials      = "Usuario o contraseña incorrectos"
	msgUnauthorized        = "Tienes que iniciar sesión"
	msgTooManyRequests     = "Demasiados intentos. Espera un momento"
	msgMalformed           = "La petición no es válida"
	msgRouteNotFound       = "Recurso no encontrado"
	msgFieldRequired       = "Este campo es obligatorio"
	msgFieldInvalid        = "Este campo no es válido"
	codeInvalid            = "invalid"
	codeNotFound           = "not_found"
	codeConflict           = "conflict"
	codePotentialDuplicate = "potential_duplicate"
	codeReferenced         = "referenced"
	codeNotificationFailed = "notification_failed"
	codeUnavailable        = "unavailable"
	codeInternal           = "internal"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Count   int64             `json:"count,omitempty"`
}

// mapError translates an error into a status and a Spanish, non-technical body.
func mapError(err error) (int, ErrorResponse) {
	var (
		httpErr     *echo.HTTPError
		referenced  *errs.ObjectIsReferencedError
		conflict    *errs.ConflictError
		validateErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &httpErr):
		return mapHTTPError(httpErr)

	case errors.As(err, &validateErr):
		return http.StatusBadRequest, ErrorResponse{
			Code:    codeInvalid,
			Message: msgInvalid,
			Fields:  validatorMessages(validateErr),
		}

	case commands.IsPotentialDuplicate(err):
		return http.StatusConflict, ErrorResponse{Code: codePotentialDuplicate, Message: msgPotentialDuplicate}

	case errors.As(err, &referenced):
		return http.StatusConflict, ErrorResponse{
			Code:    codeReferenced,
			Message: fmt.Sprintf(msgReferenced, referenced.Count),
			Count:   referenced.Count,
		}

	case errors.As(err, &conflict):
		msg := msgConflict
		switch {
		case errors.Is(conflict.Cause, commands.ErrPhoneTaken):
			msg = msgPhoneTaken
		case errors.Is(conflict.Cause, commands.ErrNameTaken):
			msg = msgNameTaken
		}
		return http.StatusConflict, ErrorResponse{Code: codeConflict, Message: msg}

	case errors.Is(err, errs.ErrNotificationFailed):
		return http.StatusBadGateway, ErrorResponse{Code: codeNotificationFailed, Message: msgNotificationFailed}

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{Code: codeNotFound, Message: msgNotFound}

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		fields, _ := validation.FieldMessages(err)
		return http.StatusBadRequest, ErrorResponse{Code: codeInvalid, Message: msgInvalid, Fields: fields}

	case errs.IsTransient(err):
		return http.StatusServiceUnavailable, ErrorResponse{Code: codeUnavailable, Message: msgUnavailable}
	}

	return http.StatusInternalServerError, ErrorResponse{Code: codeInternal, Message: msgUnexpected}
}

func mapHTTPError(he *echo.HTTPError) (int, ErrorResponse) {
	msg, _ := he.Message.(string)
	switch he.Code {
	case http.StatusUnauthorized:
		if msg == "" || msg == http.StatusText(http.StatusUnauthorized) {
			msg = msgUnauthorized
		}
		return he.Code, ErrorResponse{Code: "unauthorized", Message: msg}
	case http.StatusTooManyRequests:
		return he.Code, ErrorResponse{Code: "too_many_requests", Message: msgTooManyRequests}
	case http.StatusNotFound:
		return he.Code, ErrorResponse{Code: codeNotFound, Message: msgRouteNotFound}
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return he.Code, ErrorResponse{Code: codeInvalid, Message: msgMalformed}
	}
	if he.Code >= http.StatusInternalServerError {
		return he.Code, ErrorResponse{Code: codeInternal, Message: msgUnexpected}
	}
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	return he.Code, ErrorResponse{Code: "error", Message: msg}
}

func validatorMessages(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			fields[fe.Field()] = msgFieldRequired
		} else {
			fields[fe.Field()] = msgFieldInvalid
		}
	}
	return fields
}

// errorHandler replaces echo's default handler. Server errors are logged with
// full detail; client errors at debug level.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		log := logging.For(c.Request().Context(), logger).With(
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
		if status >= http.StatusInternalServerError {
			log.Error("request failed")
		} else {
			log.Debug("request rejected", zap.String("code", body.Code))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn("failed to write error response", zap.NamedError("write_error", writeErr))
		}
	}
}
