package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meetsync/reservation-service/internal/dto"
	"github.com/meetsync/reservation-service/internal/service"
)

type ReservationHandler struct {
	svc     service.ReservationService
	roomSvc service.RoomService
}

func NewReservationHandler(svc service.ReservationService, roomSvc service.RoomService) *ReservationHandler {
	return &ReservationHandler{svc: svc, roomSvc: roomSvc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	reservations := e.Group("/api/v1/reservations")
	reservations.POST("", h.CreateReservation)
	reservations.GET("", h.ListReservations)
	reservations.GET("/:id", h.GetReservation)
	reservations.PUT("/:id", h.UpdateReservation)
	reservations.DELETE("/:id", h.CancelReservation)
	reservations.DELETE("/groups/:groupId", h.CancelGroup)

	e.GET("/api/v1/calendar", h.GetWeeklyCalendar)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == 0 || req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id and user_id are required")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	in := service.ReservationInput{
		Title:       req.Title,
		Description: req.Description,
		Attendees:   req.Attendees,
		Start:       req.StartTime,
		End:         req.EndTime,
	}
	ctx := c.Request().Context()

	if req.Recurring {
		weeks := req.RecurWeeks
		if weeks <= 0 {
			weeks = 1
		}
		result, err := h.svc.CreateRecurring(ctx, req.RoomID, req.UserID, in, req.RecurType, weeks)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, dto.ToRecurringResponse(result))
	}

	reservation, err := h.svc.Create(ctx, req.RoomID, req.UserID, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be RFC3339")
	}

	reservations, err := h.svc.FindActiveInRange(c.Request().Context(), start, end)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	reservation, err := h.svc.Update(c.Request().Context(), id, service.ReservationInput{
		Title:       req.Title,
		Description: req.Description,
		Attendees:   req.Attendees,
		Start:       req.StartTime,
		End:         req.EndTime,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) CancelGroup(c echo.Context) error {
	groupID := c.Param("groupId")
	if groupID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "group id is required")
	}

	if err := h.svc.CancelGroup(c.Request().Context(), groupID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) GetWeeklyCalendar(c echo.Context) error {
	weekStart := mondayOf(time.Now())
	if w := c.QueryParam("week"); w != "" {
		parsed, err := time.Parse(service.CalendarDateLayout, w)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "week must be formatted YYYY-MM-DD")
		}
		weekStart = mondayOf(parsed)
	}

	ctx := c.Request().Context()
	calendar, err := h.svc.BuildWeeklyCalendar(ctx, weekStart)
	if err != nil {
		return toHTTPError(err)
	}
	rooms, err := h.roomSvc.FindAllActive(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.CalendarResponse{
		WeekStart: weekStart.Format(service.CalendarDateLayout),
		Days:      make([]string, 0, 5),
		Rooms:     make([]dto.RoomResponse, len(rooms)),
		Calendar:  make(map[uint]map[string][]dto.ReservationResponse, len(calendar)),
	}
	for i := 0; i < 5; i++ {
		resp.Days = append(resp.Days, weekStart.AddDate(0, 0, i).Format(service.CalendarDateLayout))
	}
	for i := range rooms {
		resp.Rooms[i] = dto.ToRoomResponse(&rooms[i])
	}
	for roomID, days := range calendar {
		buckets := make(map[string][]dto.ReservationResponse, len(days))
		for day, reservations := range days {
			buckets[day] = dto.ToReservationResponses(reservations)
		}
		resp.Calendar[roomID] = buckets
	}

	return c.JSON(http.StatusOK, resp)
}

// mondayOf normalizes any date to the Monday of its week.
func mondayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
