package houses

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListHouses(ctx context.Context, scope HouseScope, filter HouseFilter) ([]House, int64, error)
	GetHouse(ctx context.Context, houseID int64) (*House, error)
	CreateHouse(ctx context.Context, house *House) error
	SaveHouse(ctx context.Context, house *House) error
	// DeleteHouse removes the house with its flats, news, images, links and
	// every announcement on its flats. It returns the media keys that were
	// attached to the removed rows.
	DeleteHouse(ctx context.Context, houseID int64) ([]string, error)

	LinkDeveloper(ctx context.Context, developerID, houseID int64) error
	IsLinked(ctx context.Context, developerID, houseID int64) (bool, error)

	ListHouseImages(ctx context.Context, houseID int64) ([]HouseImage, error)
	GetHouseImage(ctx context.Context, houseID, imageID int64) (*HouseImage, error)
	CreateHouseImage(ctx context.Context, image *HouseImage) error
	DeleteHouseImage(ctx context.Context, imageID int64) error

	ListFlats(ctx context.Context, scope FlatScope, filter FlatFilter) ([]Flat, int64, error)
	GetFlat(ctx context.Context, flatID int64) (*Flat, error)
	CreateFlat(ctx context.Context, flat *Flat) error
	SaveFlat(ctx context.Context, flat *Flat) error
	// DeleteFlat removes the flat and its announcements, returning the
	// media keys of the removed announcement images.
	DeleteFlat(ctx context.Context, flatID int64) ([]string, error)

	ListNews(ctx context.Context, scope NewsScope, filter NewsFilter) ([]HouseNews, int64, error)
	GetNews(ctx context.Context, newsID int64) (*HouseNews, error)
	CreateNews(ctx context.Context, news *HouseNews) error
	SaveNews(ctx context.Context, news *HouseNews) error
	DeleteNews(ctx context.Context, newsID int64) error
}
