package announcements

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	List(ctx context.Context, scope Scope, filter ListFilter) ([]Announcement, int64, error)
	Get(ctx context.Context, id int64) (*Announcement, error)
	Create(ctx context.Context, announcement *Announcement) error
	Save(ctx context.Context, announcement *Announcement) error
	// Delete removes the announcement with its promotion, images and
	// favourites, returning the media keys of the removed images.
	Delete(ctx context.Context, id int64) ([]string, error)
	FlatExists(ctx context.Context, flatID int64) (bool, error)

	GetPromotion(ctx context.Context, announcementID int64) (*Promotion, error)
	CreatePromotion(ctx context.Context, promotion *Promotion) error
	SavePromotion(ctx context.Context, promotion *Promotion) error

	ListImages(ctx context.Context, announcementID int64) ([]AnnouncementImage, error)
	GetImage(ctx context.Context, announcementID, imageID int64) (*AnnouncementImage, error)
	CreateImage(ctx context.Context, image *AnnouncementImage) error
	DeleteImage(ctx context.Context, imageID int64) error
}
