package houses

import (
	"errors"
	"testing"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/validation"
)

func validHouse() House {
	return House{
		Name:               "Sunrise",
		Description:        "Near the sea",
		Status:             StatusNewBuild,
		Type:               "3",
		Class:              "1",
		BuildingTechnology: "1",
		Territory:          "1",
		SeaDistance:        100,
		CommunalPayments:   "1",
		CeilingHeight:      2.7,
		HasGas:             "1",
		HeatingType:        "1",
		Sewerage:           "1",
		WaterSupply:        "1",
		Housings:           2,
		Sections:           3,
		Floors:             9,
		Coords:             "46.48,30.72",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr.Fields
}

func TestValidateHouseStatusRules(t *testing.T) {
	developerID := int64(1)
	developer := identity.Principal{UserID: 1, DeveloperID: &developerID}
	admin := identity.Principal{UserID: 2, IsStaff: true}

	house := validHouse()
	if err := validateHouse(house, admin, true); err != nil {
		t.Fatalf("admin may add new builds: %v", err)
	}

	house.Status = StatusFlats
	house.Type = "1"
	fields := fieldErrors(t, validateHouse(house, admin, true))
	if fields[validation.NonField] != msgOnlyDevelopers {
		t.Fatalf("unexpected fields %v", fields)
	}
	if err := validateHouse(house, developer, true); err != nil {
		t.Fatalf("developer may add apartment buildings: %v", err)
	}

	house.Type = "3"
	fields = fieldErrors(t, validateHouse(house, developer, true))
	if fields[validation.NonField] != msgTypeForStatus {
		t.Fatalf("unexpected fields %v", fields)
	}

	if err := validateHouse(house, developer, false); err != nil {
		t.Fatalf("partial updates skip status rules: %v", err)
	}
}

func TestValidateHouseFieldBounds(t *testing.T) {
	house := validHouse()
	house.Floors = 0
	house.Class = "9"
	fields := fieldErrors(t, validateHouse(house, identity.Principal{IsStaff: true, UserID: 1}, true))
	if fields["floors"] == "" || fields["class"] == "" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestValidateFlatBounds(t *testing.T) {
	house := validHouse()
	cases := []struct {
		name  string
		flat  Flat
		field string
	}{
		{"housing", Flat{Housing: 3, Section: 1, Floor: 1, Number: 1}, "housing"},
		{"section", Flat{Housing: 1, Section: 4, Floor: 1, Number: 1}, "section"},
		{"floor", Flat{Housing: 1, Section: 1, Floor: 10, Number: 1}, "floor"},
		{"minimum", Flat{Housing: 0, Section: 1, Floor: 1, Number: 1}, "housing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := fieldErrors(t, validateFlat(tc.flat, house))
			if fields[tc.field] == "" {
				t.Fatalf("expected %s error, got %v", tc.field, fields)
			}
		})
	}

	ok := Flat{Housing: 2, Section: 3, Floor: 9, Number: 120}
	if err := validateFlat(ok, house); err != nil {
		t.Fatalf("flat at the bounds must pass: %v", err)
	}
}

func TestScopes(t *testing.T) {
	developerID := int64(4)
	developer := identity.Principal{UserID: 1, DeveloperID: &developerID}
	clientID := int64(5)
	client := identity.Principal{UserID: 2, ClientID: &clientID}
	admin := identity.Principal{UserID: 3, IsSuperuser: true, DeveloperID: &developerID}

	if scope := HouseScopeFor(admin); !scope.Unrestricted {
		t.Fatalf("admin scope must be unrestricted")
	}
	if scope := HouseScopeFor(developer); scope.DeveloperID == nil || *scope.DeveloperID != developerID {
		t.Fatalf("developer scope must be limited to linked houses")
	}
	if scope := HouseScopeFor(client); !scope.WithAnnouncements {
		t.Fatalf("client scope must require announcements")
	}

	if _, err := FlatScopeFor(client); !errors.Is(err, ErrForbidden) {
		t.Fatalf("clients may not list flats, got %v", err)
	}

	houseID := int64(1)
	if _, err := NewsScopeFor(client, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("clients need a house filter, got %v", err)
	}
	if scope, err := NewsScopeFor(client, &houseID); err != nil || !scope.Unrestricted {
		t.Fatalf("news of one house is open, got %v %v", scope, err)
	}
}

func TestGeohashFromCoords(t *testing.T) {
	if got := GeohashFromCoords("46.4825, 30.7233"); len(got) != geohashPrecision || got[:3] != "u8m" {
		t.Fatalf("unexpected geohash %q", got)
	}
	for _, invalid := range []string{"", "abc", "91,10", "1,2,3"} {
		if got := GeohashFromCoords(invalid); got != "" {
			t.Fatalf("expected empty geohash for %q, got %q", invalid, got)
		}
	}
}
