package identity

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestPrincipalKindPriority(t *testing.T) {
	cases := []struct {
		name      string
		principal Principal
		want      RoleKind
	}{
		{"anonymous", Anonymous(), RoleAnonymous},
		{"client", Principal{UserID: 1, ClientID: int64Ptr(1)}, RoleClient},
		{"notary over client", Principal{UserID: 1, ClientID: int64Ptr(1), NotaryID: int64Ptr(2)}, RoleNotary},
		{"developer over notary", Principal{UserID: 1, NotaryID: int64Ptr(2), DeveloperID: int64Ptr(3)}, RoleDeveloper},
		{"staff over developer", Principal{UserID: 1, IsStaff: true, DeveloperID: int64Ptr(3)}, RoleAdmin},
		{"superuser", Principal{UserID: 1, IsSuperuser: true}, RoleAdmin},
		{"no profile", Principal{UserID: 1}, RoleAnonymous},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.principal.Kind(); got != tc.want {
				t.Fatalf("Kind() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPrincipalOwnership(t *testing.T) {
	p := Principal{UserID: 1, ClientID: int64Ptr(7), DeveloperID: int64Ptr(9)}
	if !p.OwnsClient(7) || p.OwnsClient(8) {
		t.Fatalf("unexpected client ownership")
	}
	if !p.IsDeveloperProfile(9) || p.IsDeveloperProfile(7) {
		t.Fatalf("unexpected developer ownership")
	}
	if !p.CanManageListings() {
		t.Fatalf("developer should manage listings")
	}
	if (Principal{UserID: 2, ClientID: int64Ptr(1)}).CanManageListings() {
		t.Fatalf("client should not manage listings")
	}
}
