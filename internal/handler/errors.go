package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meetsync/reservation-service/internal/service"
)

// toHTTPError maps service sentinels onto HTTP status codes.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrInvalidRecurrence):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
