package houses

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	"swipe-go/internal/repository/postgres/cascade"
)

const linkedHousesQuery = "SELECT house_id FROM developer_houses WHERE developer_id = ?"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(housesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListHouses(ctx context.Context, scope housesdomain.HouseScope, filter housesdomain.HouseFilter) ([]housesdomain.House, int64, error) {
	query := r.db.WithContext(ctx).Model(&housesdomain.House{})
	if !scope.Unrestricted {
		if scope.DeveloperID != nil {
			query = query.Where("id IN (?)", gorm.Expr(linkedHousesQuery, *scope.DeveloperID))
		}
		if scope.WithAnnouncements {
			query = query.Where("id IN (SELECT flats.house_id FROM flats JOIN announcements ON announcements.flat_id = flats.id)")
		}
		if scope.DeveloperID == nil && !scope.WithAnnouncements {
			query = query.Where("1 = 0")
		}
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.GeohashPrefix != "" {
		query = query.Where("geohash LIKE ?", filter.GeohashPrefix+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []housesdomain.House
	if err := paginate(query.Order("id asc"), filter.Page).Find(&result).Error; err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *PostgresRepository) GetHouse(ctx context.Context, houseID int64) (*housesdomain.House, error) {
	var house housesdomain.House
	if err := r.db.WithContext(ctx).Where("id = ?", houseID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housesdomain.ErrHouseNotFound
		}
		return nil, err
	}
	return &house, nil
}

func (r *PostgresRepository) CreateHouse(ctx context.Context, house *housesdomain.House) error {
	return r.db.WithContext(ctx).Create(house).Error
}

func (r *PostgresRepository) SaveHouse(ctx context.Context, house *housesdomain.House) error {
	return r.db.WithContext(ctx).Save(house).Error
}

func (r *PostgresRepository) DeleteHouse(ctx context.Context, houseID int64) ([]string, error) {
	db := r.db.WithContext(ctx)

	var flatIDs []int64
	if err := db.Model(&housesdomain.Flat{}).Where("house_id = ?", houseID).Pluck("id", &flatIDs).Error; err != nil {
		return nil, err
	}
	announcementIDs, err := cascade.AnnouncementIDsForFlats(db, flatIDs)
	if err != nil {
		return nil, err
	}
	keys, err := cascade.DeleteAnnouncements(db, announcementIDs)
	if err != nil {
		return nil, err
	}

	var imageKeys []string
	if err := db.Model(&housesdomain.HouseImage{}).Where("house_id = ?", houseID).Pluck("image", &imageKeys).Error; err != nil {
		return nil, err
	}
	keys = append(keys, imageKeys...)

	dependents := []any{
		&housesdomain.Flat{},
		&housesdomain.HouseNews{},
		&housesdomain.HouseImage{},
		&housesdomain.DeveloperHouse{},
		&favouritesdomain.ClientHouseFavourite{},
	}
	for _, model := range dependents {
		if err := db.Where("house_id = ?", houseID).Delete(model).Error; err != nil {
			return nil, err
		}
	}

	result := db.Delete(&housesdomain.House{}, "id = ?", houseID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, housesdomain.ErrHouseNotFound
	}
	return keys, nil
}

func (r *PostgresRepository) LinkDeveloper(ctx context.Context, developerID, houseID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&housesdomain.DeveloperHouse{DeveloperID: developerID, HouseID: houseID}).Error
}

func (r *PostgresRepository) IsLinked(ctx context.Context, developerID, houseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&housesdomain.DeveloperHouse{}).
		Where("developer_id = ? AND house_id = ?", developerID, houseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListHouseImages(ctx context.Context, houseID int64) ([]housesdomain.HouseImage, error) {
	var images []housesdomain.HouseImage
	if err := r.db.WithContext(ctx).Where("house_id = ?", houseID).Order("id asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PostgresRepository) GetHouseImage(ctx context.Context, houseID, imageID int64) (*housesdomain.HouseImage, error) {
	var image housesdomain.HouseImage
	if err := r.db.WithContext(ctx).
		Where("house_id = ? AND id = ?", houseID, imageID).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housesdomain.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *PostgresRepository) CreateHouseImage(ctx context.Context, image *housesdomain.HouseImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *PostgresRepository) DeleteHouseImage(ctx context.Context, imageID int64) error {
	return r.db.WithContext(ctx).Delete(&housesdomain.HouseImage{}, "id = ?", imageID).Error
}

func (r *PostgresRepository) ListFlats(ctx context.Context, scope housesdomain.FlatScope, filter housesdomain.FlatFilter) ([]housesdomain.Flat, int64, error) {
	query := r.db.WithContext(ctx).Model(&housesdomain.Flat{})
	if !scope.Unrestricted {
		if scope.DeveloperID == nil {
			query = query.Where("1 = 0")
		} else {
			query = query.Where("house_id IN (?)", gorm.Expr(linkedHousesQuery, *scope.DeveloperID))
		}
	}
	if filter.HouseID != nil {
		query = query.Where("house_id = ?", *filter.HouseID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flats []housesdomain.Flat
	if err := paginate(query.Order("id asc"), filter.Page).Find(&flats).Error; err != nil {
		return nil, 0, err
	}
	return flats, total, nil
}

func (r *PostgresRepository) GetFlat(ctx context.Context, flatID int64) (*housesdomain.Flat, error) {
	var flat housesdomain.Flat
	if err := r.db.WithContext(ctx).Where("id = ?", flatID).First(&flat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housesdomain.ErrFlatNotFound
		}
		return nil, err
	}
	return &flat, nil
}

func (r *PostgresRepository) CreateFlat(ctx context.Context, flat *housesdomain.Flat) error {
	return r.db.WithContext(ctx).Create(flat).Error
}

func (r *PostgresRepository) SaveFlat(ctx context.Context, flat *housesdomain.Flat) error {
	return r.db.WithContext(ctx).Save(flat).Error
}

func (r *PostgresRepository) DeleteFlat(ctx context.Context, flatID int64) ([]string, error) {
	db := r.db.WithContext(ctx)

	announcementIDs, err := cascade.AnnouncementIDsForFlats(db, []int64{flatID})
	if err != nil {
		return nil, err
	}
	keys, err := cascade.DeleteAnnouncements(db, announcementIDs)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&housesdomain.Flat{}, "id = ?", flatID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, housesdomain.ErrFlatNotFound
	}
	return keys, nil
}

func (r *PostgresRepository) ListNews(ctx context.Context, scope housesdomain.NewsScope, filter housesdomain.NewsFilter) ([]housesdomain.HouseNews, int64, error) {
	query := r.db.WithContext(ctx).Model(&housesdomain.HouseNews{})
	if !scope.Unrestricted {
		if scope.DeveloperID == nil {
			query = query.Where("1 = 0")
		} else {
			query = query.Where("house_id IN (?)", gorm.Expr(linkedHousesQuery, *scope.DeveloperID))
		}
	}
	if filter.HouseID != nil {
		query = query.Where("house_id = ?", *filter.HouseID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []housesdomain.HouseNews
	if err := paginate(query.Order("publication_date desc, id desc"), filter.Page).Find(&news).Error; err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

func (r *PostgresRepository) GetNews(ctx context.Context, newsID int64) (*housesdomain.HouseNews, error) {
	var news housesdomain.HouseNews
	if err := r.db.WithContext(ctx).Where("id = ?", newsID).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housesdomain.ErrNewsNotFound
		}
		return nil, err
	}
	return &news, nil
}

func (r *PostgresRepository) CreateNews(ctx context.Context, news *housesdomain.HouseNews) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *PostgresRepository) SaveNews(ctx context.Context, news *housesdomain.HouseNews) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *PostgresRepository) DeleteNews(ctx context.Context, newsID int64) error {
	result := r.db.WithContext(ctx).Delete(&housesdomain.HouseNews{}, "id = ?", newsID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return housesdomain.ErrNewsNotFound
	}
	return nil
}

func paginate(query *gorm.DB, page housesdomain.Page) *gorm.DB {
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	return query
}
