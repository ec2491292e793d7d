package repository

import (
	"context"
	"time"

	"github.com/meetsync/reservation-service/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	ExistsOverlap(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) (bool, error)
	ExistsOverlapExcluding(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) (bool, error)
	UpdateDetails(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	SetCancelled(ctx context.Context, id uint) error
	FindActiveInRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error)
	FindFutureByGroup(ctx context.Context, groupID string, from time.Time) ([]models.Reservation, error)
	CancelFutureByGroup(ctx context.Context, groupID string, from time.Time) (int64, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("User").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ExistsOverlap reports whether any active reservation in the room overlaps
// [start, end). Half-open semantics: touching intervals do not overlap.
func (r *reservationRepository) ExistsOverlap(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("room_id = ? AND cancelled = ? AND start_time < ? AND end_time > ?", roomID, false, end, start).
		Count(&count).Error
	return count > 0, err
}

// ExistsOverlapExcluding is ExistsOverlap minus one reservation, so an update
// does not conflict with the row being updated.
func (r *reservationRepository) ExistsOverlapExcluding(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("room_id = ? AND cancelled = ? AND id <> ? AND start_time < ? AND end_time > ?",
			roomID, false, excludeID, end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *reservationRepository) UpdateDetails(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]any{
			"title":       reservation.Title,
			"description": reservation.Description,
			"start_time":  reservation.StartTime,
			"end_time":    reservation.EndTime,
			"attendees":   reservation.Attendees,
		}).Error
}

func (r *reservationRepository) SetCancelled(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("cancelled", true).Error
}

func (r *reservationRepository) FindActiveInRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("User").
		Where("cancelled = ? AND start_time < ? AND end_time > ?", false, end, start).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindFutureByGroup(ctx context.Context, groupID string, from time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("recurring_group_id = ? AND cancelled = ? AND start_time >= ?", groupID, false, from).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// CancelFutureByGroup soft-deletes every not-yet-started member of a recurring
// group. Past occurrences are left untouched.
func (r *reservationRepository) CancelFutureByGroup(ctx context.Context, groupID string, from time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("recurring_group_id = ? AND cancelled = ? AND start_time >= ?", groupID, false, from).
		Update("cancelled", true)
	return res.RowsAffected, res.Error
}
