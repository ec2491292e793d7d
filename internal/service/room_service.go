package service

import (
	"context"
	"fmt"

	"github.com/meetsync/reservation-service/internal/models"
	"github.com/meetsync/reservation-service/internal/repository"
	"go.uber.org/zap"
)

type RoomService interface {
	FindAllActive(ctx context.Context) ([]models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	Save(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) error
	SeedDefaults(ctx context.Context) error
}

type roomService struct {
	roomRepo repository.RoomRepository
	log      *zap.Logger
}

func NewRoomService(roomRepo repository.RoomRepository, log *zap.Logger) RoomService {
	if log == nil {
		log = zap.NewNop()
	}
	return &roomService{roomRepo: roomRepo, log: log}
}

// SeedDefaults creates a starter room on first boot so the calendar is never
// empty. Does nothing once any room exists.
func (s *roomService) SeedDefaults(ctx context.Context) error {
	count, err := s.roomRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		return nil
	}
	s.log.Info("seeding default room")
	return s.roomRepo.Save(ctx, &models.Room{
		Name:        "Room A",
		Location:    "Headquarters",
		Capacity:    10,
		Description: "Default meeting room",
		Active:      true,
	})
}

func (s *roomService) FindAllActive(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.FindAllActive(ctx)
}

func (s *roomService) FindAll(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.FindAll(ctx)
}

func (s *roomService) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrRoomNotFound)
	}
	return room, nil
}

func (s *roomService) Save(ctx context.Context, room *models.Room) error {
	return s.roomRepo.Save(ctx, room)
}

func (s *roomService) Deactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false)
}

func (s *roomService) Activate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true)
}

func (s *roomService) setActive(ctx context.Context, id uint, active bool) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err, ErrRoomNotFound)
	}
	room.Active = active
	return s.roomRepo.Save(ctx, room)
}
