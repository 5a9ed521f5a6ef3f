package favourites

import "time"

type ClientAnnouncementFavourite struct {
	ID             int64     `gorm:"primaryKey"`
	ClientID       int64     `gorm:"not null;uniqueIndex:idx_client_announcement_favourites_pair"`
	AnnouncementID int64     `gorm:"not null;uniqueIndex:idx_client_announcement_favourites_pair;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ClientAnnouncementFavourite) TableName() string { return "client_announcement_favourites" }

type ClientHouseFavourite struct {
	ID        int64     `gorm:"primaryKey"`
	ClientID  int64     `gorm:"not null;uniqueIndex:idx_client_house_favourites_pair"`
	HouseID   int64     `gorm:"not null;uniqueIndex:idx_client_house_favourites_pair;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ClientHouseFavourite) TableName() string { return "client_house_favourites" }
