package announcements

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	announcementsdomain "swipe-go/internal/domain/announcements"
	housesdomain "swipe-go/internal/domain/houses"
	"swipe-go/internal/repository/postgres/cascade"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(announcementsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context, scope announcementsdomain.Scope, filter announcementsdomain.ListFilter) ([]announcementsdomain.Announcement, int64, error) {
	query := applyScope(r.db.WithContext(ctx).Model(&announcementsdomain.Announcement{}), scope)

	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.AdvertiserID != nil {
		query = query.Where("advertiser_id = ?", *filter.AdvertiserID)
	}
	if filter.FlatID != nil {
		query = query.Where("flat_id = ?", *filter.FlatID)
	}
	if filter.FlatHouseStatus != nil {
		query = query.Where(
			"flat_id IN (SELECT flats.id FROM flats JOIN houses ON houses.id = flats.house_id WHERE houses.status = ?)",
			*filter.FlatHouseStatus,
		)
	}
	if filter.FlatIsEmpty != nil {
		if *filter.FlatIsEmpty {
			query = query.Where("flat_id IS NULL")
		} else {
			query = query.Where("flat_id IS NOT NULL")
		}
	}
	if filter.ModerStatus != nil {
		query = query.Where("moder_status = ?", *filter.ModerStatus)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Order == announcementsdomain.OldestFirst {
		query = query.Order("publication_date asc, id asc")
	} else {
		query = query.Order("publication_date desc, id desc")
	}
	if filter.Page.Limit > 0 {
		query = query.Limit(filter.Page.Limit)
	}
	if filter.Page.Offset > 0 {
		query = query.Offset(filter.Page.Offset)
	}

	var result []announcementsdomain.Announcement
	if err := query.Find(&result).Error; err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// applyScope keeps public announcements and widens the set with the
// developer's houses and the advertiser's own rows.
func applyScope(query *gorm.DB, scope announcementsdomain.Scope) *gorm.DB {
	if scope.Unrestricted {
		return query
	}

	conditions := []string{"(moder_status = ? AND available_status = ?)"}
	args := []any{announcementsdomain.ModerationApproved, announcementsdomain.Available}
	if scope.DeveloperID != nil {
		conditions = append(conditions,
			"flat_id IN (SELECT flats.id FROM flats JOIN developer_houses ON developer_houses.house_id = flats.house_id WHERE developer_houses.developer_id = ?)")
		args = append(args, *scope.DeveloperID)
	}
	if scope.AdvertiserID != nil {
		conditions = append(conditions, "advertiser_id = ?")
		args = append(args, *scope.AdvertiserID)
	}
	return query.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*announcementsdomain.Announcement, error) {
	var announcement announcementsdomain.Announcement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&announcement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, announcementsdomain.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *PostgresRepository) Create(ctx context.Context, announcement *announcementsdomain.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *PostgresRepository) Save(ctx context.Context, announcement *announcementsdomain.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&announcementsdomain.Announcement{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, announcementsdomain.ErrAnnouncementNotFound
	}
	return cascade.DeleteAnnouncements(db, []int64{id})
}

func (r *PostgresRepository) FlatExists(ctx context.Context, flatID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&housesdomain.Flat{}).Where("id = ?", flatID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetPromotion(ctx context.Context, announcementID int64) (*announcementsdomain.Promotion, error) {
	var promotion announcementsdomain.Promotion
	if err := r.db.WithContext(ctx).Where("announcement_id = ?", announcementID).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, announcementsdomain.ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *PostgresRepository) CreatePromotion(ctx context.Context, promotion *announcementsdomain.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *PostgresRepository) SavePromotion(ctx context.Context, promotion *announcementsdomain.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

func (r *PostgresRepository) ListImages(ctx context.Context, announcementID int64) ([]announcementsdomain.AnnouncementImage, error) {
	var images []announcementsdomain.AnnouncementImage
	if err := r.db.WithContext(ctx).Where("announcement_id = ?", announcementID).Order("id asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PostgresRepository) GetImage(ctx context.Context, announcementID, imageID int64) (*announcementsdomain.AnnouncementImage, error) {
	var image announcementsdomain.AnnouncementImage
	if err := r.db.WithContext(ctx).
		Where("announcement_id = ? AND id = ?", announcementID, imageID).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, announcementsdomain.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *PostgresRepository) CreateImage(ctx context.Context, image *announcementsdomain.AnnouncementImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *PostgresRepository) DeleteImage(ctx context.Context, imageID int64) error {
	return r.db.WithContext(ctx).Delete(&announcementsdomain.AnnouncementImage{}, "id = ?", imageID).Error
}
