package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meetsync/reservation-service/internal/dto"
	"github.com/meetsync/reservation-service/internal/models"
	"github.com/meetsync/reservation-service/internal/service"
)

type RoomHandler struct {
	svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	rooms := e.Group("/api/v1/rooms")
	rooms.GET("", h.ListRooms)
	rooms.GET("/:id", h.GetRoom)
	rooms.POST("", h.CreateRoom)
	rooms.PUT("/:id", h.UpdateRoom)
	rooms.POST("/:id/deactivate", h.DeactivateRoom)
	rooms.POST("/:id/activate", h.ActivateRoom)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	var (
		rooms []models.Room
		err   error
	)
	if c.QueryParam("all") == "true" {
		rooms, err = h.svc.FindAll(c.Request().Context())
	} else {
		rooms, err = h.svc.FindAllActive(c.Request().Context())
	}
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = dto.ToRoomResponse(&rooms[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	room, err := h.svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	room := &models.Room{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
		Active:      true,
	}
	if err := h.svc.Save(c.Request().Context(), room); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	room, err := h.svc.FindByID(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}

	room.Name = req.Name
	room.Location = req.Location
	room.Capacity = req.Capacity
	room.Description = req.Description
	if err := h.svc.Save(ctx, room); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) DeactivateRoom(c echo.Context) error {
	return h.setActive(c, h.svc.Deactivate)
}

func (h *RoomHandler) ActivateRoom(c echo.Context) error {
	return h.setActive(c, h.svc.Activate)
}

func (h *RoomHandler) setActive(c echo.Context, op func(ctx context.Context, id uint) error) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	if err := op(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
