package identity

type RoleKind string

const (
	RoleAnonymous RoleKind = "anonymous"
	RoleClient    RoleKind = "client"
	RoleNotary    RoleKind = "notary"
	RoleDeveloper RoleKind = "developer"
	RoleAdmin     RoleKind = "admin"
)

// Principal is the resolved identity of a request. It is built once per
// request and carries every profile the user owns, so callers never probe
// relations again.
type Principal struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	ClientID    *int64 `json:"client_id,omitempty"`
	DeveloperID *int64 `json:"developer_id,omitempty"`
	NotaryID    *int64 `json:"notary_id,omitempty"`
}

func Anonymous() Principal {
	return Principal{}
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != 0
}

func (p Principal) IsAdmin() bool {
	return p.IsStaff || p.IsSuperuser
}

func (p Principal) IsDeveloper() bool {
	return p.DeveloperID != nil
}

func (p Principal) IsNotary() bool {
	return p.NotaryID != nil
}

func (p Principal) IsClient() bool {
	return p.ClientID != nil
}

// Kind returns the primary role. Admin wins over every profile, then
// developer, notary and client.
func (p Principal) Kind() RoleKind {
	switch {
	case !p.IsAuthenticated():
		return RoleAnonymous
	case p.IsAdmin():
		return RoleAdmin
	case p.IsDeveloper():
		return RoleDeveloper
	case p.IsNotary():
		return RoleNotary
	case p.IsClient():
		return RoleClient
	default:
		return RoleAnonymous
	}
}

// CanManageListings reports whether the principal may manage houses and flats.
func (p Principal) CanManageListings() bool {
	return p.IsAdmin() || p.IsDeveloper()
}

func (p Principal) OwnsClient(clientID int64) bool {
	return p.ClientID != nil && *p.ClientID == clientID
}

func (p Principal) IsDeveloperProfile(developerID int64) bool {
	return p.DeveloperID != nil && *p.DeveloperID == developerID
}
