package models

import "time"

// Reservation books a room for the half-open interval [StartTime, EndTime).
// Cancellation is a soft delete: cancelled rows are kept for history and
// excluded from conflict checks and calendar views.
type Reservation struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RoomID           uint      `gorm:"not null;index:idx_reservation_room_time,priority:1" json:"room_id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Description      string    `gorm:"size:500" json:"description,omitempty"`
	StartTime        time.Time `gorm:"not null;index:idx_reservation_room_time,priority:2" json:"start_time"`
	EndTime          time.Time `gorm:"not null;index:idx_reservation_room_time,priority:3" json:"end_time"`
	Attendees        string    `gorm:"size:1000" json:"attendees,omitempty"`
	Recurring        bool      `gorm:"not null;default:false" json:"recurring"`
	RecurringGroupID string    `gorm:"size:36;index" json:"recurring_group_id,omitempty"`
	Cancelled        bool      `gorm:"not null;default:false" json:"cancelled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
