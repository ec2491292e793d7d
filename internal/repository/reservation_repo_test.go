package repository

import (
	"context"
	"testing"
	"time"

	"github.com/meetsync/reservation-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.User{}, &models.Reservation{}))
	return db
}

func seedReservation(t *testing.T, db *gorm.DB, roomID uint, start, end time.Time, cancelled bool) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		RoomID:    roomID,
		UserID:    1,
		Title:     "seed",
		StartTime: start,
		EndTime:   end,
		Cancelled: cancelled,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func ts(day, hour, min int) time.Time {
	return time.Date(2024, time.January, day, hour, min, 0, 0, time.UTC)
}

func TestExistsOverlap_HalfOpenBoundaries(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	seedReservation(t, db, 1, ts(1, 10, 0), ts(1, 11, 0), false)

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical window", ts(1, 10, 0), ts(1, 11, 0), true},
		{"contained", ts(1, 10, 15), ts(1, 10, 45), true},
		{"straddles start", ts(1, 9, 30), ts(1, 10, 30), true},
		{"straddles end", ts(1, 10, 59), ts(1, 11, 1), true},
		{"touches end", ts(1, 11, 0), ts(1, 12, 0), false},
		{"touches start", ts(1, 9, 0), ts(1, 10, 0), false},
		{"fully before", ts(1, 8, 0), ts(1, 9, 0), false},
		{"fully after", ts(1, 12, 0), ts(1, 13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ExistsOverlap(context.Background(), repo.GetDB(), 1, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExistsOverlap_IgnoresOtherRoomsAndCancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	seedReservation(t, db, 1, ts(1, 10, 0), ts(1, 11, 0), true)
	seedReservation(t, db, 2, ts(1, 10, 0), ts(1, 11, 0), false)

	got, err := repo.ExistsOverlap(context.Background(), repo.GetDB(), 1, ts(1, 10, 0), ts(1, 11, 0))
	require.NoError(t, err)
	assert.False(t, got, "cancelled rows and other rooms never conflict")
}

func TestExistsOverlapExcluding(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	own := seedReservation(t, db, 1, ts(1, 10, 0), ts(1, 11, 0), false)

	got, err := repo.ExistsOverlapExcluding(context.Background(), repo.GetDB(), 1, ts(1, 10, 0), ts(1, 11, 0), own.ID)
	require.NoError(t, err)
	assert.False(t, got, "a reservation does not conflict with itself")

	other := seedReservation(t, db, 1, ts(1, 12, 0), ts(1, 13, 0), false)
	got, err = repo.ExistsOverlapExcluding(context.Background(), repo.GetDB(), 1, ts(1, 12, 30), ts(1, 13, 30), own.ID)
	require.NoError(t, err)
	assert.True(t, got, "other reservations still conflict")
	_ = other
}

func TestFindActiveInRange_AscendingByStart(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	late := seedReservation(t, db, 1, ts(2, 15, 0), ts(2, 16, 0), false)
	early := seedReservation(t, db, 2, ts(1, 9, 0), ts(1, 10, 0), false)
	seedReservation(t, db, 1, ts(1, 11, 0), ts(1, 12, 0), true)
	seedReservation(t, db, 1, ts(9, 9, 0), ts(9, 10, 0), false) // outside range

	found, err := repo.FindActiveInRange(context.Background(), ts(1, 0, 0), ts(6, 0, 0))
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, early.ID, found[0].ID)
	assert.Equal(t, late.ID, found[1].ID)
}

func TestFindActiveInRange_IncludesIntervalStraddlingRangeEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	straddling := seedReservation(t, db, 1, ts(1, 23, 0), ts(2, 1, 0), false)

	found, err := repo.FindActiveInRange(context.Background(), ts(2, 0, 0), ts(3, 0, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, straddling.ID, found[0].ID)
}

func TestFindFutureByGroup(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)

	group := "g1"
	mk := func(start time.Time, cancelled bool) *models.Reservation {
		r := seedReservation(t, db, 1, start, start.Add(time.Hour), cancelled)
		require.NoError(t, db.Model(r).Updates(map[string]any{
			"recurring": true, "recurring_group_id": group,
		}).Error)
		return r
	}
	mk(ts(1, 9, 0), false) // before cutoff
	second := mk(ts(8, 9, 0), false)
	mk(ts(15, 9, 0), true) // cancelled, excluded
	third := mk(ts(22, 9, 0), false)

	found, err := repo.FindFutureByGroup(context.Background(), group, ts(5, 0, 0))
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, second.ID, found[0].ID)
	assert.Equal(t, third.ID, found[1].ID)
}

func TestCancelFutureByGroup(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)

	group := "g2"
	mk := func(start time.Time) *models.Reservation {
		r := seedReservation(t, db, 1, start, start.Add(time.Hour), false)
		require.NoError(t, db.Model(r).Updates(map[string]any{
			"recurring": true, "recurring_group_id": group,
		}).Error)
		return r
	}
	past := mk(ts(1, 9, 0))
	fut1 := mk(ts(8, 9, 0))
	fut2 := mk(ts(15, 9, 0))

	n, err := repo.CancelFutureByGroup(context.Background(), group, ts(5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Fresh dest struct per fetch: a populated primary key would leak into
	// the WHERE clause of the next First.
	fetch := func(id uint) models.Reservation {
		var stored models.Reservation
		require.NoError(t, db.First(&stored, id).Error)
		return stored
	}
	assert.False(t, fetch(past.ID).Cancelled)
	assert.True(t, fetch(fut1.ID).Cancelled)
	assert.True(t, fetch(fut2.ID).Cancelled)

	n, err = repo.CancelFutureByGroup(context.Background(), group, ts(5, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, n, "already-cancelled rows are not re-counted")
}

func TestSetCancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewReservationRepository(db)
	r := seedReservation(t, db, 1, ts(1, 10, 0), ts(1, 11, 0), false)

	require.NoError(t, repo.SetCancelled(context.Background(), r.ID))

	var stored models.Reservation
	require.NoError(t, db.First(&stored, r.ID).Error)
	assert.True(t, stored.Cancelled)
}
