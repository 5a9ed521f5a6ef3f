package houses

import "swipe-go/internal/domain/identity"

// HouseScope is the base set of houses an actor may list.
type HouseScope struct {
	Unrestricted bool
	// DeveloperID limits the set to houses linked to this developer.
	DeveloperID *int64
	// WithAnnouncements limits the set to houses with at least one flat
	// carrying at least one announcement.
	WithAnnouncements bool
}

func HouseScopeFor(p identity.Principal) HouseScope {
	switch {
	case p.IsAdmin():
		return HouseScope{Unrestricted: true}
	case p.IsDeveloper():
		return HouseScope{DeveloperID: p.DeveloperID}
	default:
		return HouseScope{WithAnnouncements: true}
	}
}

type FlatScope struct {
	Unrestricted bool
	DeveloperID  *int64
}

// FlatScopeFor returns ErrForbidden for actors that are neither admins nor
// developers.
func FlatScopeFor(p identity.Principal) (FlatScope, error) {
	switch {
	case p.IsAdmin():
		return FlatScope{Unrestricted: true}, nil
	case p.IsDeveloper():
		return FlatScope{DeveloperID: p.DeveloperID}, nil
	default:
		return FlatScope{}, ErrForbidden
	}
}

type NewsScope struct {
	Unrestricted bool
	DeveloperID  *int64
}

// NewsScopeFor opens news of a single house to every authenticated actor.
// Listing across houses needs a developer or admin.
func NewsScopeFor(p identity.Principal, houseID *int64) (NewsScope, error) {
	switch {
	case houseID != nil, p.IsAdmin():
		return NewsScope{Unrestricted: true}, nil
	case p.IsDeveloper():
		return NewsScope{DeveloperID: p.DeveloperID}, nil
	default:
		return NewsScope{}, ErrForbidden
	}
}
