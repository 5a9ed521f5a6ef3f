package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"
	identitydomain "swipe-go/internal/domain/identity"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(identitydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID int64) (*identitydomain.User, error) {
	var user identitydomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*identitydomain.User, error) {
	var user identitydomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *identitydomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, userID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&identitydomain.User{}).
		Where("id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identitydomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) IsEmailTaken(ctx context.Context, email string, exceptUserID int64) (bool, error) {
	return r.exists(ctx, &identitydomain.User{}, "email = ? AND id <> ?", email, exceptUserID)
}

func (r *PostgresRepository) IsPhoneTaken(ctx context.Context, phone string, exceptUserID int64) (bool, error) {
	return r.exists(ctx, &identitydomain.User{}, "phone_number = ? AND id <> ?", phone, exceptUserID)
}

func (r *PostgresRepository) GetProfileIDs(ctx context.Context, userID int64) (identitydomain.ProfileIDs, error) {
	var ids identitydomain.ProfileIDs
	var err error
	if ids.ClientID, err = r.profileID(ctx, &identitydomain.Client{}, userID); err != nil {
		return ids, err
	}
	if ids.DeveloperID, err = r.profileID(ctx, &identitydomain.Developer{}, userID); err != nil {
		return ids, err
	}
	if ids.NotaryID, err = r.profileID(ctx, &identitydomain.Notary{}, userID); err != nil {
		return ids, err
	}
	return ids, nil
}

func (r *PostgresRepository) CreateClient(ctx context.Context, client *identitydomain.Client) error {
	return r.db.WithContext(ctx).Omit("User", "Agent").Create(client).Error
}

func (r *PostgresRepository) GetClient(ctx context.Context, clientID int64) (*identitydomain.Client, error) {
	var client identitydomain.Client
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Agent").
		Where("id = ?", clientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *PostgresRepository) ListClients(ctx context.Context, page identitydomain.Page) ([]identitydomain.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&identitydomain.Client{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []identitydomain.Client
	if err := paginate(query, page).
		Preload("User").
		Preload("Agent").
		Order("id asc").
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *PostgresRepository) UpdateClient(ctx context.Context, clientID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&identitydomain.Client{}).
		Where("id = ?", clientID).
		Updates(fields).Error
}

func (r *PostgresRepository) CreateDeveloper(ctx context.Context, developer *identitydomain.Developer) error {
	return r.db.WithContext(ctx).Omit("User").Create(developer).Error
}

func (r *PostgresRepository) GetDeveloper(ctx context.Context, developerID int64) (*identitydomain.Developer, error) {
	var developer identitydomain.Developer
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", developerID).First(&developer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrDeveloperNotFound
		}
		return nil, err
	}
	return &developer, nil
}

func (r *PostgresRepository) ListDevelopers(ctx context.Context, page identitydomain.Page) ([]identitydomain.Developer, int64, error) {
	query := r.db.WithContext(ctx).Model(&identitydomain.Developer{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var developers []identitydomain.Developer
	if err := paginate(query, page).Preload("User").Order("id asc").Find(&developers).Error; err != nil {
		return nil, 0, err
	}
	return developers, total, nil
}

func (r *PostgresRepository) DeleteDeveloper(ctx context.Context, developerID int64) error {
	result := r.db.WithContext(ctx).Delete(&identitydomain.Developer{}, "id = ?", developerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identitydomain.ErrDeveloperNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateNotary(ctx context.Context, notary *identitydomain.Notary) error {
	return r.db.WithContext(ctx).Omit("User").Create(notary).Error
}

func (r *PostgresRepository) GetNotary(ctx context.Context, notaryID int64) (*identitydomain.Notary, error) {
	var notary identitydomain.Notary
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", notaryID).First(&notary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrNotaryNotFound
		}
		return nil, err
	}
	return &notary, nil
}

func (r *PostgresRepository) ListNotaries(ctx context.Context, page identitydomain.Page) ([]identitydomain.Notary, int64, error) {
	query := r.db.WithContext(ctx).Model(&identitydomain.Notary{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notaries []identitydomain.Notary
	if err := paginate(query, page).Preload("User").Order("id asc").Find(&notaries).Error; err != nil {
		return nil, 0, err
	}
	return notaries, total, nil
}

func (r *PostgresRepository) DeleteNotary(ctx context.Context, notaryID int64) error {
	result := r.db.WithContext(ctx).Delete(&identitydomain.Notary{}, "id = ?", notaryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identitydomain.ErrNotaryNotFound
	}
	return nil
}

func (r *PostgresRepository) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) profileID(ctx context.Context, model any, userID int64) (*int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Limit(1).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

func paginate(query *gorm.DB, page identitydomain.Page) *gorm.DB {
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	return query
}
