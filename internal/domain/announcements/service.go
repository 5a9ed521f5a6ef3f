package announcements

import (
	"context"
	"io"
	"time"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
	"swipe-go/internal/domain/validation"
	"swipe-go/pkg/logger"
)

const imageCollection = "announcements"

type Service struct {
	repo      Repository
	media     *media.Library
	publisher Publisher
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, library *media.Library, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		media:     library,
		publisher: noopPublisher{},
		log:       log,
		now:       time.Now,
	}
}

// WithPublisher sets the moderation event publisher. Nil restores the no-op.
func (s *Service) WithPublisher(publisher Publisher) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	s.publisher = publisher
	return s
}

// List returns the actor's list scope, newest publication first.
func (s *Service) List(ctx context.Context, actor identity.Principal, filter ListFilter) ([]Announcement, int64, error) {
	filter.IDs = nil
	filter.AdvertiserID = nil
	filter.ModerStatus = nil
	filter.Order = NewestFirst
	return s.repo.List(ctx, ScopeFor(actor), filter)
}

// ListUnmoderated is the admin moderation queue, oldest pending first.
func (s *Service) ListUnmoderated(ctx context.Context, actor identity.Principal, page Page) ([]Announcement, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	pending := ModerationPending
	return s.repo.List(ctx, Scope{Unrestricted: true}, ListFilter{
		ModerStatus: &pending,
		Order:       OldestFirst,
		Page:        page,
	})
}

// ListMine returns the actor's own announcements in every status.
func (s *Service) ListMine(ctx context.Context, actor identity.Principal, page Page) ([]Announcement, int64, error) {
	if actor.ClientID == nil {
		return nil, 0, ErrNoClientProfile
	}
	return s.repo.List(ctx, Scope{Unrestricted: true}, ListFilter{
		AdvertiserID: actor.ClientID,
		Order:        NewestFirst,
		Page:         page,
	})
}

func (s *Service) Get(ctx context.Context, actor identity.Principal, id int64) (*Announcement, error) {
	return visibleAnnouncement(ctx, s.repo, actor, id)
}

// Create stores a pending, available announcement together with its
// promotion.
func (s *Service) Create(ctx context.Context, actor identity.Principal, input Input) (*Announcement, error) {
	if actor.ClientID == nil {
		return nil, ErrNoClientProfile
	}
	if err := requireFields(input); err != nil {
		return nil, err
	}

	announcement := Announcement{
		AdvertiserID:    *actor.ClientID,
		PublicationDate: s.now().UTC(),
		ModerStatus:     ModerationPending,
		AvailableStatus: Available,
	}
	merge(&announcement, input)
	if err := validate(announcement); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkFlat(ctx, tx, announcement.FlatID); err != nil {
			return err
		}
		if err := tx.Create(ctx, &announcement); err != nil {
			return err
		}
		promotion := Promotion{AnnouncementID: announcement.ID, Phrase: "0", Color: "0"}
		return tx.CreatePromotion(ctx, &promotion)
	})
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Update applies a full or partial update by the advertiser or an admin.
// Status fields go through the moderation rules.
func (s *Service) Update(ctx context.Context, actor identity.Principal, id int64, input Input, partial bool) (*Announcement, error) {
	if !partial {
		if err := requireFields(input); err != nil {
			return nil, err
		}
	}

	var (
		result   *Announcement
		previous string
		moved    bool
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		announcement, err := ownedAnnouncement(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		previous = announcement.ModerStatus

		merge(announcement, input)
		if err := validate(*announcement); err != nil {
			return err
		}
		if input.FlatID != nil {
			if err := checkFlat(ctx, tx, announcement.FlatID); err != nil {
				return err
			}
		}

		moved, err = ApplyTransition(announcement, actor, Transition{
			ModerStatus:     input.ModerStatus,
			AvailableStatus: input.AvailableStatus,
		})
		if err != nil {
			return err
		}

		if err := tx.Save(ctx, announcement); err != nil {
			return err
		}
		result = announcement
		return nil
	})
	if err != nil {
		return nil, err
	}

	if moved {
		s.publishModerated(ctx, actor, previous, result)
	}
	return result, nil
}

// Moderate changes only the moderation and availability statuses. It
// reports whether either of them moved.
func (s *Service) Moderate(ctx context.Context, actor identity.Principal, id int64, transition Transition) (*Announcement, bool, error) {
	if !actor.IsAdmin() {
		return nil, false, ErrForbidden
	}

	var (
		result   *Announcement
		previous string
		moved    bool
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		announcement, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		previous = announcement.ModerStatus

		moved, err = ApplyTransition(announcement, actor, transition)
		if err != nil {
			return err
		}
		if moved {
			if err := tx.Save(ctx, announcement); err != nil {
				return err
			}
		}
		result = announcement
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if moved {
		s.publishModerated(ctx, actor, previous, result)
	}
	return result, moved, nil
}

func (s *Service) Delete(ctx context.Context, actor identity.Principal, id int64) error {
	var removed []string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		announcement, err := ownedAnnouncement(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		removed, err = tx.Delete(ctx, announcement.ID)
		return err
	})
	if err != nil {
		return err
	}
	s.media.AfterDelete(ctx, removed...)
	return nil
}

// ToTheTop moves the publication date to now. Moderation is untouched.
func (s *Service) ToTheTop(ctx context.Context, actor identity.Principal, id int64) (*Announcement, error) {
	var result *Announcement
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		announcement, err := advertisedAnnouncement(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		announcement.PublicationDate = s.now().UTC()
		if err := tx.Save(ctx, announcement); err != nil {
			return err
		}
		result = announcement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) GetPromotion(ctx context.Context, actor identity.Principal, announcementID int64) (*Promotion, error) {
	announcement, err := visibleAnnouncement(ctx, s.repo, actor, announcementID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetPromotion(ctx, announcement.ID)
}

func (s *Service) UpdatePromotion(ctx context.Context, actor identity.Principal, announcementID int64, input PromotionInput, partial bool) (*Promotion, error) {
	if !partial && (input.Phrase == nil || input.Color == nil || input.IsTurbo == nil || input.IsBig == nil) {
		return nil, promotionFieldsRequired(input)
	}

	var result *Promotion
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		announcement, err := ownedAnnouncement(ctx, tx, actor, announcementID)
		if err != nil {
			return err
		}
		promotion, err := tx.GetPromotion(ctx, announcement.ID)
		if err != nil {
			return err
		}

		setString(&promotion.Phrase, input.Phrase)
		setString(&promotion.Color, input.Color)
		if input.IsTurbo != nil {
			promotion.IsTurbo = *input.IsTurbo
		}
		if input.IsBig != nil {
			promotion.IsBig = *input.IsBig
		}
		if err := validatePromotion(*promotion); err != nil {
			return err
		}
		if err := tx.SavePromotion(ctx, promotion); err != nil {
			return err
		}
		result = promotion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) ListPhotos(ctx context.Context, actor identity.Principal, announcementID int64) ([]AnnouncementImage, error) {
	announcement, err := visibleAnnouncement(ctx, s.repo, actor, announcementID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, announcement.ID)
}

func (s *Service) AddPhoto(ctx context.Context, actor identity.Principal, announcementID int64, content io.Reader) (*AnnouncementImage, error) {
	announcement, err := ownedAnnouncement(ctx, s.repo, actor, announcementID)
	if err != nil {
		return nil, err
	}

	key, err := s.media.SaveImage(ctx, imageCollection, announcement.ID, content)
	if err != nil {
		return nil, err
	}

	image := AnnouncementImage{AnnouncementID: announcement.ID, Image: key}
	if err := s.repo.CreateImage(ctx, &image); err != nil {
		s.media.AfterDelete(ctx, key)
		return nil, err
	}
	return &image, nil
}

func (s *Service) RemovePhoto(ctx context.Context, actor identity.Principal, announcementID, imageID int64) error {
	announcement, err := ownedAnnouncement(ctx, s.repo, actor, announcementID)
	if err != nil {
		return err
	}
	image, err := s.repo.GetImage(ctx, announcement.ID, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, image.ID); err != nil {
		return err
	}
	s.media.AfterDelete(ctx, image.Image)
	return nil
}

func (s *Service) publishModerated(ctx context.Context, actor identity.Principal, previous string, a *Announcement) {
	event := ModeratedEvent{
		AnnouncementID:  a.ID,
		AdvertiserID:    a.AdvertiserID,
		PreviousStatus:  previous,
		ModerStatus:     a.ModerStatus,
		AvailableStatus: a.AvailableStatus,
		ModeratorID:     actor.UserID,
		OccurredAt:      s.now().UTC(),
	}
	if err := s.publisher.PublishModerated(ctx, event); err != nil {
		s.log.InternalError("announcements.moderate: publish event failed", err, "announcement_id", a.ID)
	}
}

func checkFlat(ctx context.Context, repo Repository, flatID *int64) error {
	if flatID == nil {
		return nil
	}
	exists, err := repo.FlatExists(ctx, *flatID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.New("flat", "Invalid pk - object does not exist.")
	}
	return nil
}

func promotionFieldsRequired(in PromotionInput) error {
	var v validation.Error
	if in.Phrase == nil {
		v.Add("phrase", "This field is required.")
	}
	if in.Color == nil {
		v.Add("color", "This field is required.")
	}
	if in.IsTurbo == nil {
		v.Add("is_turbo", "This field is required.")
	}
	if in.IsBig == nil {
		v.Add("is_big", "This field is required.")
	}
	return v.Err()
}
