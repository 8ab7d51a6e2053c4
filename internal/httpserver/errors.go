package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders/internal/db"
	"github.com/Skotchmaster/orders/internal/models"
	"github.com/Skotchmaster/orders/internal/repo"
)

type errorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// statusFor is the only place where error kinds become status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDataValidation):
		return http.StatusBadRequest
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and turns it into an HTTPError carrying a
// client-safe message.
func fail(l *slog.Logger, event string, err error) error {
	code := statusFor(err)
	switch code {
	case http.StatusBadRequest:
		l.Warn(event, "status", code, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	case http.StatusNotFound:
		l.Warn(event, "status", code, "reason", "not found", "error", err)
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	case http.StatusServiceUnavailable:
		l.Error(event, "status", code, "reason", "database unavailable", "error", err)
		return echo.NewHTTPError(code, db.ErrDatabaseConnection.Error()).SetInternal(err)
	default:
		l.Error(event, "status", code, "reason", "internal error", "error", err)
		return echo.NewHTTPError(code, "internal error").SetInternal(err)
	}
}

// HTTPErrorHandler renders every error as {status_code, error, message}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = echo.NewHTTPError(statusFor(err), http.StatusText(statusFor(err))).SetInternal(err)
	}

	msg, ok := he.Message.(string)
	if !ok {
		msg = fmt.Sprint(he.Message)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = c.JSON(he.Code, errorResponse{
			StatusCode: he.Code,
			Error:      http.StatusText(he.Code),
			Message:    msg,
		})
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}

// decodePayload reads the request body as a single generic JSON value.
// Shape checks are left to the entity; a body that is not exactly one JSON
// value fails here.
func decodePayload(c echo.Context, entity string) (any, error) {
	var payload any
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &models.ValidationError{Entity: entity, Kind: models.WrongShape}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &models.ValidationError{Entity: entity, Kind: models.WrongShape}
	}
	return payload, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, &models.ValidationError{Entity: "path", Kind: models.InvalidAttribute, Field: name}
	}
	return uint(id), nil
}
