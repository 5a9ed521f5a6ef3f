package handler

import (
	"time"

	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
	"swipe-go/pkg/logger"
)

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

type Handlers struct {
	Identity               *identitydomain.Service
	Houses                 *housesdomain.Service
	Announcements          *announcementsdomain.Service
	AnnouncementFavourites *favouritesdomain.Registry[announcementsdomain.Announcement]
	HouseFavourites        *favouritesdomain.Registry[housesdomain.House]
	Tokens                 TokenIssuer
	Media                  *media.Library
	DB                     Pinger
	log                    logger.Logger
}

type Deps struct {
	Identity               *identitydomain.Service
	Houses                 *housesdomain.Service
	Announcements          *announcementsdomain.Service
	AnnouncementFavourites *favouritesdomain.Registry[announcementsdomain.Announcement]
	HouseFavourites        *favouritesdomain.Registry[housesdomain.House]
	Tokens                 TokenIssuer
	Media                  *media.Library
	DB                     Pinger
}

func New(deps Deps, log logger.Logger) *Handlers {
	return &Handlers{
		Identity:               deps.Identity,
		Houses:                 deps.Houses,
		Announcements:          deps.Announcements,
		AnnouncementFavourites: deps.AnnouncementFavourites,
		HouseFavourites:        deps.HouseFavourites,
		Tokens:                 deps.Tokens,
		Media:                  deps.Media,
		DB:                     deps.DB,
		log:                    log,
	}
}
