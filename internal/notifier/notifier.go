// Package notifier delivers booking notifications to an external chat
// channel. Delivery is best-effort: the booking flow never depends on it.
package notifier

import "context"

// Notice carries the display fields of a newly created reservation.
type Notice struct {
	RoomName  string
	Title     string
	TimeRange string
	UserName  string
	Attendees string
}

// Notifier sends a reservation notice to a delivery channel.
type Notifier interface {
	SendReservationCard(ctx context.Context, notice Notice) error
}
