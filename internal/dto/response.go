package dto

import (
	"time"

	"github.com/meetsync/reservation-service/internal/models"
	"github.com/meetsync/reservation-service/internal/service"
)

type ReservationResponse struct {
	ID               uint      `json:"id"`
	RoomID           uint      `json:"room_id"`
	RoomName         string    `json:"room_name,omitempty"`
	UserID           uint      `json:"user_id"`
	UserName         string    `json:"user_name,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Attendees        string    `json:"attendees,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Recurring        bool      `json:"recurring"`
	RecurringGroupID string    `json:"recurring_group_id,omitempty"`
	Cancelled        bool      `json:"cancelled"`
	CreatedAt        time.Time `json:"created_at"`
}

type RecurringReservationResponse struct {
	Created      []ReservationResponse `json:"created"`
	SkippedDates []string              `json:"skipped_dates"`
}

type RoomResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team,omitempty"`
}

type CalendarResponse struct {
	WeekStart string                                    `json:"week_start"`
	Days      []string                                  `json:"days"`
	Rooms     []RoomResponse                            `json:"rooms"`
	Calendar  map[uint]map[string][]ReservationResponse `json:"calendar"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:               r.ID,
		RoomID:           r.RoomID,
		UserID:           r.UserID,
		Title:            r.Title,
		Description:      r.Description,
		Attendees:        r.Attendees,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Recurring:        r.Recurring,
		RecurringGroupID: r.RecurringGroupID,
		Cancelled:        r.Cancelled,
		CreatedAt:        r.CreatedAt,
	}
	if r.Room != nil {
		resp.RoomName = r.Room.Name
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	return resp
}

func ToReservationResponses(reservations []models.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = ToReservationResponse(&reservations[i])
	}
	return resp
}

func ToRecurringResponse(result *service.RecurringResult) RecurringReservationResponse {
	resp := RecurringReservationResponse{
		Created:      ToReservationResponses(result.Created),
		SkippedDates: make([]string, len(result.SkippedDates)),
	}
	for i, d := range result.SkippedDates {
		resp.SkippedDates[i] = d.Format(service.CalendarDateLayout)
	}
	return resp
}

func ToRoomResponse(room *models.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Location:    room.Location,
		Capacity:    room.Capacity,
		Description: room.Description,
		Active:      room.Active,
	}
}

func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Team:  user.Team,
	}
}
