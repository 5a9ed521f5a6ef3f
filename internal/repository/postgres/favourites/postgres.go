package favourites

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
)

const uniqueViolation = "23505"

type AnnouncementStore struct {
	db *gorm.DB
}

func NewAnnouncementStore(db *gorm.DB) *AnnouncementStore {
	return &AnnouncementStore{db: db}
}

func (s *AnnouncementStore) TargetExists(ctx context.Context, targetID int64) (bool, error) {
	return exists(ctx, s.db, &announcementsdomain.Announcement{}, targetID)
}

func (s *AnnouncementStore) Add(ctx context.Context, clientID, targetID int64) error {
	err := s.db.WithContext(ctx).Create(&favouritesdomain.ClientAnnouncementFavourite{
		ClientID:       clientID,
		AnnouncementID: targetID,
	}).Error
	return translateDuplicate(err)
}

func (s *AnnouncementStore) Remove(ctx context.Context, clientID, targetID int64) (bool, error) {
	result := s.db.WithContext(ctx).Delete(
		&favouritesdomain.ClientAnnouncementFavourite{},
		"client_id = ? AND announcement_id = ?", clientID, targetID,
	)
	return result.RowsAffected > 0, result.Error
}

func (s *AnnouncementStore) List(ctx context.Context, clientID int64) ([]announcementsdomain.Announcement, error) {
	var items []announcementsdomain.Announcement
	if err := s.db.WithContext(ctx).
		Joins("JOIN client_announcement_favourites ON client_announcement_favourites.announcement_id = announcements.id").
		Where("client_announcement_favourites.client_id = ?", clientID).
		Order("client_announcement_favourites.id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type HouseStore struct {
	db *gorm.DB
}

func NewHouseStore(db *gorm.DB) *HouseStore {
	return &HouseStore{db: db}
}

func (s *HouseStore) TargetExists(ctx context.Context, targetID int64) (bool, error) {
	return exists(ctx, s.db, &housesdomain.House{}, targetID)
}

func (s *HouseStore) Add(ctx context.Context, clientID, targetID int64) error {
	err := s.db.WithContext(ctx).Create(&favouritesdomain.ClientHouseFavourite{
		ClientID: clientID,
		HouseID:  targetID,
	}).Error
	return translateDuplicate(err)
}

func (s *HouseStore) Remove(ctx context.Context, clientID, targetID int64) (bool, error) {
	result := s.db.WithContext(ctx).Delete(
		&favouritesdomain.ClientHouseFavourite{},
		"client_id = ? AND house_id = ?", clientID, targetID,
	)
	return result.RowsAffected > 0, result.Error
}

func (s *HouseStore) List(ctx context.Context, clientID int64) ([]housesdomain.House, error) {
	var items []housesdomain.House
	if err := s.db.WithContext(ctx).
		Joins("JOIN client_house_favourites ON client_house_favourites.house_id = houses.id").
		Where("client_house_favourites.client_id = ?", clientID).
		Order("client_house_favourites.id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func exists(ctx context.Context, db *gorm.DB, model any, id int64) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return favouritesdomain.ErrAlreadyFavourite
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return favouritesdomain.ErrAlreadyFavourite
	}
	return err
}
