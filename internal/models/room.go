package models

import "time"

// Room is a bookable meeting room. Inactive rooms are hidden from the
// booking form and the calendar, but their existing reservations stay valid.
type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Location    string    `gorm:"size:200" json:"location"`
	Capacity    int       `json:"capacity"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
