package service

import (
	"context"
	"time"

	"github.com/meetsync/reservation-service/internal/models"
)

// CalendarDateLayout keys the day buckets of a weekly calendar.
const CalendarDateLayout = "2006-01-02"

// WeeklyCalendar maps room id to five weekday buckets ("2006-01-02" keys) of
// active reservations. Every active room is present even with an empty week.
type WeeklyCalendar map[uint]map[string][]models.Reservation

// BuildWeeklyCalendar projects the Monday-to-Friday week starting at
// weekStart. Callers normalize weekStart to a Monday. The projection is a
// plain read with no locking; it tolerates in-flight creates.
func (s *reservationService) BuildWeeklyCalendar(ctx context.Context, weekStart time.Time) (WeeklyCalendar, error) {
	year, month, day := weekStart.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, weekStart.Location())
	end := start.AddDate(0, 0, 5)

	rooms, err := s.roomRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.resvRepo.FindActiveInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	calendar := make(WeeklyCalendar, len(rooms))
	for _, room := range rooms {
		days := make(map[string][]models.Reservation, 5)
		for i := 0; i < 5; i++ {
			days[start.AddDate(0, 0, i).Format(CalendarDateLayout)] = []models.Reservation{}
		}
		calendar[room.ID] = days
	}

	for _, reservation := range reservations {
		days, ok := calendar[reservation.RoomID]
		if !ok {
			// Reservation in a deactivated room; not shown.
			continue
		}
		key := reservation.StartTime.Format(CalendarDateLayout)
		if _, ok := days[key]; ok {
			days[key] = append(days[key], reservation)
		}
	}

	return calendar, nil
}
