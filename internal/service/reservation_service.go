package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/meetsync/reservation-service/internal/models"
	"github.com/meetsync/reservation-service/internal/notifier"
	"github.com/meetsync/reservation-service/internal/recurrence"
	"github.com/meetsync/reservation-service/internal/repository"
	"github.com/meetsync/reservation-service/pkg/rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidWindow       = errors.New("invalid reservation window")
	ErrInvalidRecurrence   = errors.New("invalid recurrence type")
	ErrRoomNotFound        = errors.New("room not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrConflict            = errors.New("time slot already reserved")
)

// mapNotFound turns a missing row into the domain sentinel; any other storage
// failure propagates unchanged.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// ReservationInput carries the user-editable fields of a reservation.
type ReservationInput struct {
	Title       string
	Description string
	Attendees   string
	Start       time.Time
	End         time.Time
}

// RecurringResult reports a best-effort series creation: dates that
// conflicted with existing bookings are skipped, not fatal.
type RecurringResult struct {
	Created      []models.Reservation
	SkippedDates []time.Time
}

type ReservationService interface {
	Create(ctx context.Context, roomID, userID uint, in ReservationInput) (*models.Reservation, error)
	CreateRecurring(ctx context.Context, roomID, userID uint, in ReservationInput, recurType string, weeks int) (*RecurringResult, error)
	Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error)
	Cancel(ctx context.Context, id uint) error
	CancelGroup(ctx context.Context, groupID string) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindActiveInRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error)
	BuildWeeklyCalendar(ctx context.Context, weekStart time.Time) (WeeklyCalendar, error)
}

type reservationService struct {
	resvRepo  repository.ReservationRepository
	roomRepo  repository.RoomRepository
	userRepo  repository.UserRepository
	notifier  notifier.Notifier
	publisher *rabbitmq.Publisher
	log       *zap.Logger
}

func NewReservationService(
	resvRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	n notifier.Notifier,
	publisher *rabbitmq.Publisher,
	log *zap.Logger,
) ReservationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &reservationService{
		resvRepo:  resvRepo,
		roomRepo:  roomRepo,
		userRepo:  userRepo,
		notifier:  n,
		publisher: publisher,
		log:       log,
	}
}

func (s *reservationService) Create(ctx context.Context, roomID, userID uint, in ReservationInput) (*models.Reservation, error) {
	if err := validateWindow(in.Start, in.End); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, mapNotFound(err, ErrRoomNotFound)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	reservation := &models.Reservation{
		RoomID:      roomID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Attendees:   in.Attendees,
		StartTime:   in.Start,
		EndTime:     in.End,
	}

	if err := s.createExclusive(ctx, reservation); err != nil {
		return nil, err
	}

	reservation.Room = room
	reservation.User = user
	s.dispatchNotification(reservation, room, user)
	s.publishEvent(rabbitmq.RoutingKeyReservationCreated, reservation)
	return reservation, nil
}

// CreateRecurring books a series one occurrence at a time. Each date is
// acquired, checked and committed independently, so a conflict on one date
// never aborts the rest of the series; conflicting dates come back in
// SkippedDates. A series with every date skipped still succeeds.
func (s *reservationService) CreateRecurring(ctx context.Context, roomID, userID uint, in ReservationInput, recurType string, weeks int) (*RecurringResult, error) {
	if err := validateWindow(in.Start, in.End); err != nil {
		return nil, err
	}
	kind, err := recurrence.ParseKind(recurType)
	if err != nil {
		return nil, ErrInvalidRecurrence
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, mapNotFound(err, ErrRoomNotFound)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	dates, err := recurrence.Expand(in.Start, kind, weeks)
	if err != nil {
		return nil, ErrInvalidRecurrence
	}
	groupID := uuid.NewString()

	result := &RecurringResult{}
	for _, date := range dates {
		reservation := &models.Reservation{
			RoomID:           roomID,
			UserID:           userID,
			Title:            in.Title,
			Description:      in.Description,
			Attendees:        in.Attendees,
			StartTime:        combineDateTime(date, in.Start),
			EndTime:          combineDateTime(date, in.End),
			Recurring:        true,
			RecurringGroupID: groupID,
		}

		switch err := s.createExclusive(ctx, reservation); {
		case err == nil:
			result.Created = append(result.Created, *reservation)
		case errors.Is(err, ErrConflict):
			result.SkippedDates = append(result.SkippedDates, date)
		default:
			return nil, err
		}
	}

	if len(result.Created) > 0 {
		first := &result.Created[0]
		first.Room = room
		first.User = user
		s.dispatchNotification(first, room, user)
		s.publishEvent(rabbitmq.RoutingKeyReservationCreated, first)
	}
	if len(result.SkippedDates) > 0 {
		s.log.Info("recurring reservation dates skipped due to conflicts",
			zap.String("group_id", groupID),
			zap.Int("skipped", len(result.SkippedDates)))
	}
	return result, nil
}

// createExclusive runs the check-then-insert sequence for one occurrence in a
// single transaction. The room row is locked first, so two requests for the
// same room can never both observe a conflict-free window; different rooms do
// not contend.
func (s *reservationService) createExclusive(ctx context.Context, reservation *models.Reservation) error {
	return s.resvRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.roomRepo.FindByIDForUpdate(ctx, tx, reservation.RoomID); err != nil {
			return mapNotFound(err, ErrRoomNotFound)
		}
		overlap, err := s.resvRepo.ExistsOverlap(ctx, tx, reservation.RoomID, reservation.StartTime, reservation.EndTime)
		if err != nil {
			return err
		}
		if overlap {
			return ErrConflict
		}
		return s.resvRepo.Create(ctx, tx, reservation)
	})
}

func (s *reservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	if err := validateWindow(in.Start, in.End); err != nil {
		return nil, err
	}

	reservation, err := s.resvRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrReservationNotFound)
	}

	reservation.Title = in.Title
	reservation.Description = in.Description
	reservation.Attendees = in.Attendees
	reservation.StartTime = in.Start
	reservation.EndTime = in.End

	err = s.resvRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.roomRepo.FindByIDForUpdate(ctx, tx, reservation.RoomID); err != nil {
			return mapNotFound(err, ErrRoomNotFound)
		}
		overlap, err := s.resvRepo.ExistsOverlapExcluding(ctx, tx, reservation.RoomID, in.Start, in.End, id)
		if err != nil {
			return err
		}
		if overlap {
			return ErrConflict
		}
		return s.resvRepo.UpdateDetails(ctx, tx, reservation)
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Cancel soft-deletes a reservation. Cancelling an already-cancelled
// reservation is a no-op success; cancellation is never undone.
func (s *reservationService) Cancel(ctx context.Context, id uint) error {
	reservation, err := s.resvRepo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err, ErrReservationNotFound)
	}
	if reservation.Cancelled {
		return nil
	}
	if err := s.resvRepo.SetCancelled(ctx, id); err != nil {
		return err
	}
	reservation.Cancelled = true
	s.publishEvent(rabbitmq.RoutingKeyReservationCancelled, reservation)
	return nil
}

// CancelGroup cancels every member of a recurring group that has not started
// yet. Past occurrences stay active; a group with no future members is a
// no-op.
func (s *reservationService) CancelGroup(ctx context.Context, groupID string) error {
	cancelled, err := s.resvRepo.CancelFutureByGroup(ctx, groupID, time.Now())
	if err != nil {
		return err
	}
	if cancelled > 0 {
		s.log.Info("recurring reservation group cancelled",
			zap.String("group_id", groupID),
			zap.Int64("cancelled", cancelled))
		s.publishEvent(rabbitmq.RoutingKeyReservationCancelled, map[string]any{
			"recurring_group_id": groupID,
			"cancelled_count":    cancelled,
		})
	}
	return nil
}

func (s *reservationService) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.resvRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrReservationNotFound)
	}
	return reservation, nil
}

func (s *reservationService) FindActiveInRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error) {
	return s.resvRepo.FindActiveInRange(ctx, start, end)
}

// dispatchNotification hands the card off on a fresh goroutine so delivery
// can never block or fail the booking operation.
func (s *reservationService) dispatchNotification(reservation *models.Reservation, room *models.Room, user *models.User) {
	if s.notifier == nil {
		return
	}
	notice := notifier.Notice{
		RoomName:  room.Name,
		Title:     reservation.Title,
		TimeRange: formatTimeRange(reservation.StartTime, reservation.EndTime),
		UserName:  user.Name,
		Attendees: reservation.Attendees,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.SendReservationCard(ctx, notice); err != nil {
			s.log.Warn("reservation notification failed",
				zap.Uint("reservation_id", reservation.ID),
				zap.Error(err))
		}
	}()
}

func (s *reservationService) publishEvent(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.log.Warn("reservation event publish failed",
			zap.String("routing_key", routingKey),
			zap.Error(err))
	}
}
