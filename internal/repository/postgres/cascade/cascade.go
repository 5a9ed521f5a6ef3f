// Package cascade removes announcement rows together with everything that
// hangs off them. Callers run it inside their own transaction.
package cascade

import (
	"gorm.io/gorm"
	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
)

// DeleteAnnouncements deletes the announcements with their images,
// promotions and favourites. It returns the media keys of the removed images.
func DeleteAnnouncements(tx *gorm.DB, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var keys []string
	if err := tx.Model(&announcementsdomain.AnnouncementImage{}).
		Where("announcement_id IN ?", ids).
		Pluck("image", &keys).Error; err != nil {
		return nil, err
	}

	dependents := []any{
		&announcementsdomain.AnnouncementImage{},
		&announcementsdomain.Promotion{},
		&favouritesdomain.ClientAnnouncementFavourite{},
	}
	for _, model := range dependents {
		if err := tx.Where("announcement_id IN ?", ids).Delete(model).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Where("id IN ?", ids).Delete(&announcementsdomain.Announcement{}).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// AnnouncementIDsForFlats lists announcements placed on the given flats.
func AnnouncementIDsForFlats(tx *gorm.DB, flatIDs []int64) ([]int64, error) {
	if len(flatIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := tx.Model(&announcementsdomain.Announcement{}).
		Where("flat_id IN ?", flatIDs).
		Pluck("id", &ids).Error
	return ids, err
}
