package db

import (
	"gorm.io/gorm"
	"swipe-go/internal/domain/announcements"
	"swipe-go/internal/domain/favourites"
	"swipe-go/internal/domain/houses"
	"swipe-go/internal/domain/identity"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&identity.User{},
		&identity.Client{},
		&identity.Agent{},
		&identity.Developer{},
		&identity.Notary{},
		&houses.House{},
		&houses.DeveloperHouse{},
		&houses.HouseNews{},
		&houses.HouseImage{},
		&houses.Flat{},
		&announcements.Announcement{},
		&announcements.AnnouncementImage{},
		&announcements.Promotion{},
		&favourites.ClientAnnouncementFavourite{},
		&favourites.ClientHouseFavourite{},
	}
}

// AutoMigrate builds the schema from the models. Used for throwaway
// databases; production schemas come from migrations/.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
