package announcements

import "swipe-go/internal/domain/identity"

// Scope is the base set of announcements an actor may read. Unless
// unrestricted, public announcements are always included.
type Scope struct {
	Unrestricted bool
	// DeveloperID adds announcements on flats of houses linked to the
	// developer.
	DeveloperID *int64
	// AdvertiserID adds the actor's own announcements.
	AdvertiserID *int64
}

// ScopeFor returns the list scope.
func ScopeFor(p identity.Principal) Scope {
	switch {
	case p.IsAdmin():
		return Scope{Unrestricted: true}
	case p.IsDeveloper():
		return Scope{DeveloperID: p.DeveloperID}
	default:
		return Scope{}
	}
}

// DetailScopeFor widens the list scope with the actor's own announcements.
func DetailScopeFor(p identity.Principal) Scope {
	scope := ScopeFor(p)
	if !scope.Unrestricted {
		scope.AdvertiserID = p.ClientID
	}
	return scope
}
