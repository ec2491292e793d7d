package dto

import "time"

type CreateReservationRequest struct {
	RoomID      uint      `json:"room_id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Attendees   string    `json:"attendees"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Recurring   bool      `json:"recurring"`
	RecurType   string    `json:"recur_type"`
	RecurWeeks  int       `json:"recur_weeks"`
}

type UpdateReservationRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Attendees   string    `json:"attendees"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type RoomRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}
