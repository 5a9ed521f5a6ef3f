package houses

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
)

const imageCollection = "houses"

type Service struct {
	repo  Repository
	media *media.Library
	now   func() time.Time
}

func NewService(repo Repository, library *media.Library) *Service {
	return &Service{repo: repo, media: library, now: time.Now}
}

func (s *Service) ListHouses(ctx context.Context, actor identity.Principal, filter HouseFilter) ([]House, int64, error) {
	filter.GeohashPrefix = strings.ToLower(strings.TrimSpace(filter.GeohashPrefix))
	return s.repo.ListHouses(ctx, HouseScopeFor(actor), filter)
}

func (s *Service) GetHouse(ctx context.Context, actor identity.Principal, houseID int64) (*House, error) {
	return managedHouse(ctx, s.repo, actor, houseID)
}

// CreateHouse stores a new house. A creator with a developer profile is
// linked to it in the same transaction.
func (s *Service) CreateHouse(ctx context.Context, actor identity.Principal, input HouseInput) (*House, error) {
	if !actor.CanManageListings() {
		return nil, ErrForbidden
	}
	if err := requireHouseFields(input); err != nil {
		return nil, err
	}

	var house House
	mergeHouse(&house, input)
	if err := validateHouse(house, actor, true); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateHouse(ctx, &house); err != nil {
			return err
		}
		if actor.IsDeveloper() {
			return tx.LinkDeveloper(ctx, *actor.DeveloperID, house.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &house, nil
}

// UpdateHouse applies a full (PUT) or partial (PATCH) update.
func (s *Service) UpdateHouse(ctx context.Context, actor identity.Principal, houseID int64, input HouseInput, partial bool) (*House, error) {
	house, err := managedHouse(ctx, s.repo, actor, houseID)
	if err != nil {
		return nil, err
	}
	if !partial {
		if err := requireHouseFields(input); err != nil {
			return nil, err
		}
	}

	mergeHouse(house, input)
	if err := validateHouse(*house, actor, !partial); err != nil {
		return nil, err
	}

	var result *House
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.SaveHouse(ctx, house); err != nil {
			return err
		}
		flats, _, err := tx.ListFlats(ctx, FlatScope{Unrestricted: true}, FlatFilter{HouseID: &house.ID})
		if err != nil {
			return err
		}
		for _, flat := range flats {
			if err := validateFlat(flat, *house); err != nil {
				return err
			}
		}
		result = house
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) DeleteHouse(ctx context.Context, actor identity.Principal, houseID int64) error {
	var removed []string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		house, err := managedHouse(ctx, tx, actor, houseID)
		if err != nil {
			return err
		}
		removed, err = tx.DeleteHouse(ctx, house.ID)
		return err
	})
	if err != nil {
		return err
	}
	s.media.AfterDelete(ctx, removed...)
	return nil
}

func (s *Service) ListHousePhotos(ctx context.Context, actor identity.Principal, houseID int64) ([]HouseImage, error) {
	if _, err := visibleHouse(ctx, s.repo, actor, houseID); err != nil {
		return nil, err
	}
	return s.repo.ListHouseImages(ctx, houseID)
}

func (s *Service) AddHousePhoto(ctx context.Context, actor identity.Principal, houseID int64, content io.Reader) (*HouseImage, error) {
	house, err := managedHouse(ctx, s.repo, actor, houseID)
	if err != nil {
		return nil, err
	}

	key, err := s.media.SaveImage(ctx, imageCollection, house.ID, content)
	if err != nil {
		return nil, err
	}

	image := HouseImage{HouseID: house.ID, Image: key}
	if err := s.repo.CreateHouseImage(ctx, &image); err != nil {
		s.media.AfterDelete(ctx, key)
		return nil, err
	}
	return &image, nil
}

func (s *Service) RemoveHousePhoto(ctx context.Context, actor identity.Principal, houseID, imageID int64) error {
	house, err := managedHouse(ctx, s.repo, actor, houseID)
	if err != nil {
		return err
	}
	image, err := s.repo.GetHouseImage(ctx, house.ID, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteHouseImage(ctx, image.ID); err != nil {
		return err
	}
	s.media.AfterDelete(ctx, image.Image)
	return nil
}

func (s *Service) ListFlats(ctx context.Context, actor identity.Principal, filter FlatFilter) ([]Flat, int64, error) {
	scope, err := FlatScopeFor(actor)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListFlats(ctx, scope, filter)
}

func (s *Service) GetFlat(ctx context.Context, actor identity.Principal, flatID int64) (*Flat, error) {
	return managedFlat(ctx, s.repo, actor, flatID)
}

// CreateFlat is open to every authenticated actor. The confirmed status is
// set for developers, may be chosen by admins and is cleared for everyone
// else.
func (s *Service) CreateFlat(ctx context.Context, actor identity.Principal, input FlatInput) (*Flat, error) {
	if err := requireFlatFields(input); err != nil {
		return nil, err
	}

	var flat Flat
	mergeFlat(&flat, input)
	switch {
	case actor.IsDeveloper():
		flat.Status = true
	case actor.IsAdmin() && input.Status != nil:
		flat.Status = *input.Status
	default:
		flat.Status = false
	}

	house, err := s.repo.GetHouse(ctx, flat.HouseID)
	if err != nil {
		if errors.Is(err, ErrHouseNotFound) {
			return nil, houseDoesNotExist(flat.HouseID)
		}
		return nil, err
	}
	if err := validateFlat(flat, *house); err != nil {
		return nil, err
	}

	if err := s.repo.CreateFlat(ctx, &flat); err != nil {
		return nil, err
	}
	return &flat, nil
}

// UpdateFlat re-checks the house bounds against the merged record, also on
// partial updates.
func (s *Service) UpdateFlat(ctx context.Context, actor identity.Principal, flatID int64, input FlatInput, partial bool) (*Flat, error) {
	if !partial {
		if err := requireFlatFields(input); err != nil {
			return nil, err
		}
	}

	var result *Flat
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		flat, err := managedFlat(ctx, tx, actor, flatID)
		if err != nil {
			return err
		}

		mergeFlat(flat, input)
		if input.Status != nil {
			flat.Status = *input.Status
		}

		house, err := s.targetHouse(ctx, tx, actor, flat.HouseID)
		if err != nil {
			return err
		}
		if err := validateFlat(*flat, *house); err != nil {
			return err
		}
		if err := tx.SaveFlat(ctx, flat); err != nil {
			return err
		}
		result = flat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) DeleteFlat(ctx context.Context, actor identity.Principal, flatID int64) error {
	var removed []string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		flat, err := managedFlat(ctx, tx, actor, flatID)
		if err != nil {
			return err
		}
		removed, err = tx.DeleteFlat(ctx, flat.ID)
		return err
	})
	if err != nil {
		return err
	}
	s.media.AfterDelete(ctx, removed...)
	return nil
}

func (s *Service) ListNews(ctx context.Context, actor identity.Principal, filter NewsFilter) ([]HouseNews, int64, error) {
	scope, err := NewsScopeFor(actor, filter.HouseID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListNews(ctx, scope, filter)
}

func (s *Service) GetNews(ctx context.Context, actor identity.Principal, newsID int64) (*HouseNews, error) {
	return managedNews(ctx, s.repo, actor, newsID)
}

func (s *Service) CreateNews(ctx context.Context, actor identity.Principal, input NewsInput) (*HouseNews, error) {
	if !actor.CanManageListings() {
		return nil, ErrForbidden
	}
	if input.HouseID == nil {
		return nil, houseRequired()
	}

	house, err := s.targetHouse(ctx, s.repo, actor, *input.HouseID)
	if err != nil {
		return nil, err
	}

	news := HouseNews{HouseID: house.ID, PublicationDate: s.now().UTC()}
	setString(&news.Header, input.Header)
	setString(&news.Body, input.Body)
	if err := validateNews(news); err != nil {
		return nil, err
	}
	if err := s.repo.CreateNews(ctx, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *Service) UpdateNews(ctx context.Context, actor identity.Principal, newsID int64, input NewsInput, partial bool) (*HouseNews, error) {
	if !partial && (input.HouseID == nil || input.Header == nil || input.Body == nil) {
		return nil, newsFieldsRequired(input)
	}

	var result *HouseNews
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		news, err := managedNews(ctx, tx, actor, newsID)
		if err != nil {
			return err
		}
		if input.HouseID != nil && *input.HouseID != news.HouseID {
			house, err := s.targetHouse(ctx, tx, actor, *input.HouseID)
			if err != nil {
				return err
			}
			news.HouseID = house.ID
		}
		setString(&news.Header, input.Header)
		setString(&news.Body, input.Body)
		if err := validateNews(*news); err != nil {
			return err
		}
		if err := tx.SaveNews(ctx, news); err != nil {
			return err
		}
		result = news
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) DeleteNews(ctx context.Context, actor identity.Principal, newsID int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		news, err := managedNews(ctx, tx, actor, newsID)
		if err != nil {
			return err
		}
		return tx.DeleteNews(ctx, news.ID)
	})
}

// targetHouse resolves the house a flat or news item points to. For
// developers an unlinked house reads as a missing one.
func (s *Service) targetHouse(ctx context.Context, repo Repository, actor identity.Principal, houseID int64) (*House, error) {
	house, err := managedHouse(ctx, repo, actor, houseID)
	if errors.Is(err, ErrHouseNotFound) {
		return nil, houseDoesNotExist(houseID)
	}
	return house, err
}
