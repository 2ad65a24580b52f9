package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/census_dashboard/internal/dashboard"
	"github.com/locvowork/census_dashboard/pkg/source"
	"github.com/locvowork/census_dashboard/pkg/tabular"
)

type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// StatusCode maps domain errors to HTTP status codes.
func StatusCode(err error) int {
	var statusErr *source.StatusError
	switch {
	case errors.Is(err, dashboard.ErrUnknownDashboard),
		errors.Is(err, tabular.ErrUnknownColumn):
		return http.StatusNotFound
	case errors.Is(err, tabular.ErrEmptyDataset):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func ResponseSuccess(c echo.Context, code int, msg string, data interface{}) error {
	return c.JSON(code, GenericResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func ResponseError(c echo.Context, code int, msg string, err error) error {
	resp := GenericResponse{
		Success: false,
		Message: msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.JSON(code, resp)
}
