package announcements

import (
	"context"

	"swipe-go/internal/domain/identity"
)

// ownedAnnouncement loads an announcement for a mutation by its advertiser
// or an admin. A record owned by someone else is reported as missing.
func ownedAnnouncement(ctx context.Context, repo Repository, actor identity.Principal, id int64) (*Announcement, error) {
	announcement, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || actor.OwnsClient(announcement.AdvertiserID) {
		return announcement, nil
	}
	return nil, ErrAnnouncementNotFound
}

// visibleAnnouncement loads an announcement the actor may read: anything in
// the list scope plus the actor's own records.
func visibleAnnouncement(ctx context.Context, repo Repository, actor identity.Principal, id int64) (*Announcement, error) {
	announcement, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || actor.OwnsClient(announcement.AdvertiserID) || announcement.IsPublic() {
		return announcement, nil
	}

	items, _, err := repo.List(ctx, DetailScopeFor(actor), ListFilter{IDs: []int64{announcement.ID}, Page: Page{Limit: 1}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrAnnouncementNotFound
	}
	return announcement, nil
}

// advertisedAnnouncement is the to-the-top check: a missing record is not
// found, a foreign one is forbidden.
func advertisedAnnouncement(ctx context.Context, repo Repository, actor identity.Principal, id int64) (*Announcement, error) {
	announcement, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || actor.OwnsClient(announcement.AdvertiserID) {
		return announcement, nil
	}
	return nil, ErrNotAdvertiser
}
