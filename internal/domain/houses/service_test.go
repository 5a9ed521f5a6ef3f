package houses

import (
	"context"
	"errors"
	"testing"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
	"swipe-go/pkg/logger"
)

type link struct {
	developerID int64
	houseID     int64
}

type fakeHouseRepo struct {
	nextID int64
	houses map[int64]*House
	flats  map[int64]*Flat
	news   map[int64]*HouseNews
	links  map[link]bool
}

func newFakeHouseRepo() *fakeHouseRepo {
	return &fakeHouseRepo{
		houses: make(map[int64]*House),
		flats:  make(map[int64]*Flat),
		news:   make(map[int64]*HouseNews),
		links:  make(map[link]bool),
	}
}

func (r *fakeHouseRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeHouseRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeHouseRepo) ListHouses(ctx context.Context, scope HouseScope, filter HouseFilter) ([]House, int64, error) {
	result := make([]House, 0)
	for _, h := range r.houses {
		if scope.DeveloperID != nil && !r.links[link{*scope.DeveloperID, h.ID}] {
			continue
		}
		result = append(result, *h)
	}
	return result, int64(len(result)), nil
}

func (r *fakeHouseRepo) GetHouse(ctx context.Context, houseID int64) (*House, error) {
	h, ok := r.houses[houseID]
	if !ok {
		return nil, ErrHouseNotFound
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHouseRepo) CreateHouse(ctx context.Context, house *House) error {
	house.ID = r.id()
	copied := *house
	r.houses[house.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) SaveHouse(ctx context.Context, house *House) error {
	copied := *house
	r.houses[house.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) DeleteHouse(ctx context.Context, houseID int64) ([]string, error) {
	delete(r.houses, houseID)
	return nil, nil
}

func (r *fakeHouseRepo) LinkDeveloper(ctx context.Context, developerID, houseID int64) error {
	r.links[link{developerID, houseID}] = true
	return nil
}

func (r *fakeHouseRepo) IsLinked(ctx context.Context, developerID, houseID int64) (bool, error) {
	return r.links[link{developerID, houseID}], nil
}

func (r *fakeHouseRepo) ListHouseImages(ctx context.Context, houseID int64) ([]HouseImage, error) {
	return nil, nil
}

func (r *fakeHouseRepo) GetHouseImage(ctx context.Context, houseID, imageID int64) (*HouseImage, error) {
	return nil, ErrImageNotFound
}

func (r *fakeHouseRepo) CreateHouseImage(ctx context.Context, image *HouseImage) error {
	return nil
}

func (r *fakeHouseRepo) DeleteHouseImage(ctx context.Context, imageID int64) error {
	return nil
}

func (r *fakeHouseRepo) ListFlats(ctx context.Context, scope FlatScope, filter FlatFilter) ([]Flat, int64, error) {
	result := make([]Flat, 0)
	for _, f := range r.flats {
		if filter.HouseID != nil && f.HouseID != *filter.HouseID {
			continue
		}
		if scope.DeveloperID != nil && !r.links[link{*scope.DeveloperID, f.HouseID}] {
			continue
		}
		result = append(result, *f)
	}
	return result, int64(len(result)), nil
}

func (r *fakeHouseRepo) GetFlat(ctx context.Context, flatID int64) (*Flat, error) {
	f, ok := r.flats[flatID]
	if !ok {
		return nil, ErrFlatNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeHouseRepo) CreateFlat(ctx context.Context, flat *Flat) error {
	flat.ID = r.id()
	copied := *flat
	r.flats[flat.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) SaveFlat(ctx context.Context, flat *Flat) error {
	copied := *flat
	r.flats[flat.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) DeleteFlat(ctx context.Context, flatID int64) ([]string, error) {
	delete(r.flats, flatID)
	return nil, nil
}

func (r *fakeHouseRepo) ListNews(ctx context.Context, scope NewsScope, filter NewsFilter) ([]HouseNews, int64, error) {
	result := make([]HouseNews, 0)
	for _, n := range r.news {
		if filter.HouseID != nil && n.HouseID != *filter.HouseID {
			continue
		}
		if scope.DeveloperID != nil && !r.links[link{*scope.DeveloperID, n.HouseID}] {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (r *fakeHouseRepo) GetNews(ctx context.Context, newsID int64) (*HouseNews, error) {
	n, ok := r.news[newsID]
	if !ok {
		return nil, ErrNewsNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeHouseRepo) CreateNews(ctx context.Context, news *HouseNews) error {
	news.ID = r.id()
	copied := *news
	r.news[news.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) SaveNews(ctx context.Context, news *HouseNews) error {
	copied := *news
	r.news[news.ID] = &copied
	return nil
}

func (r *fakeHouseRepo) DeleteNews(ctx context.Context, newsID int64) error {
	delete(r.news, newsID)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newTestService(repo Repository) *Service {
	return NewService(repo, media.NewLibrary(nil, logger.Discard()))
}

func developerPrincipal(userID, developerID int64) identity.Principal {
	return identity.Principal{UserID: userID, DeveloperID: &developerID}
}

func houseInput(status, houseType string) HouseInput {
	h := validHouse()
	return HouseInput{
		Name:               &h.Name,
		Description:        &h.Description,
		Status:             &status,
		Type:               &houseType,
		Class:              &h.Class,
		BuildingTechnology: &h.BuildingTechnology,
		Territory:          &h.Territory,
		SeaDistance:        &h.SeaDistance,
		CommunalPayments:   &h.CommunalPayments,
		CeilingHeight:      &h.CeilingHeight,
		HasGas:             &h.HasGas,
		HeatingType:        &h.HeatingType,
		Sewerage:           &h.Sewerage,
		WaterSupply:        &h.WaterSupply,
		Registration:       &h.Registration,
		CalculationType:    &h.CalculationType,
		Purpose:            &h.Purpose,
		ContractSum:        &h.ContractSum,
		Housings:           &h.Housings,
		Sections:           &h.Sections,
		Floors:             &h.Floors,
		Coords:             &h.Coords,
	}
}

func flatInput(houseID int64, status bool) FlatInput {
	return FlatInput{
		HouseID:          &houseID,
		Housing:          ptr(1),
		Section:          ptr(1),
		Floor:            ptr(2),
		Number:           ptr(7),
		Status:           &status,
		SquareMeterPrice: ptr(1100.0),
	}
}

// seedListing stores a house linked to ownerID with one flat and one news item.
func seedListing(t *testing.T, repo *fakeHouseRepo, ownerID int64) (House, Flat, HouseNews) {
	t.Helper()
	ctx := context.Background()

	house := validHouse()
	if err := repo.CreateHouse(ctx, &house); err != nil {
		t.Fatalf("seed house: %v", err)
	}
	if err := repo.LinkDeveloper(ctx, ownerID, house.ID); err != nil {
		t.Fatalf("seed link: %v", err)
	}
	flat := Flat{HouseID: house.ID, Housing: 1, Section: 1, Floor: 1, Number: 1, Status: true}
	if err := repo.CreateFlat(ctx, &flat); err != nil {
		t.Fatalf("seed flat: %v", err)
	}
	news := HouseNews{HouseID: house.ID, Header: "Foundation poured", Body: "Works are on schedule"}
	if err := repo.CreateNews(ctx, &news); err != nil {
		t.Fatalf("seed news: %v", err)
	}
	return house, flat, news
}

func TestCreateHouseLinksDeveloperCreatorOnly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHouseRepo()
	service := newTestService(repo)

	developer := developerPrincipal(1, 10)
	own, err := service.CreateHouse(ctx, developer, houseInput(StatusFlats, "1"))
	if err != nil {
		t.Fatalf("developer create: %v", err)
	}
	if !repo.links[link{10, own.ID}] {
		t.Fatalf("developer house must be linked to its creator")
	}

	admin := identity.Principal{UserID: 2, IsStaff: true}
	adminHouse, err := service.CreateHouse(ctx, admin, houseInput(StatusNewBuild, "3"))
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	for l := range repo.links {
		if l.houseID == adminHouse.ID {
			t.Fatalf("admin house must not be linked, got %+v", l)
		}
	}

	client := identity.Principal{UserID: 3, ClientID: ptr(int64(30))}
	if _, err := service.CreateHouse(ctx, client, houseInput(StatusNewBuild, "3")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client create: expected ErrForbidden, got %v", err)
	}
}

func TestForeignDeveloperFlatAndNewsLookMissing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHouseRepo()
	service := newTestService(repo)

	owner := developerPrincipal(1, 10)
	stranger := developerPrincipal(2, 20)
	house, flat, news := seedListing(t, repo, 10)

	if _, err := service.GetFlat(ctx, stranger, flat.ID); !errors.Is(err, ErrFlatNotFound) {
		t.Fatalf("get flat: expected ErrFlatNotFound, got %v", err)
	}
	if _, err := service.UpdateFlat(ctx, stranger, flat.ID, FlatInput{Number: ptr(99)}, true); !errors.Is(err, ErrFlatNotFound) {
		t.Fatalf("update flat: expected ErrFlatNotFound, got %v", err)
	}
	if err := service.DeleteFlat(ctx, stranger, flat.ID); !errors.Is(err, ErrFlatNotFound) {
		t.Fatalf("delete flat: expected ErrFlatNotFound, got %v", err)
	}
	if _, err := service.GetNews(ctx, stranger, news.ID); !errors.Is(err, ErrNewsNotFound) {
		t.Fatalf("get news: expected ErrNewsNotFound, got %v", err)
	}
	if _, err := service.UpdateNews(ctx, stranger, news.ID, NewsInput{Header: ptr("Taken")}, true); !errors.Is(err, ErrNewsNotFound) {
		t.Fatalf("update news: expected ErrNewsNotFound, got %v", err)
	}
	if err := service.DeleteNews(ctx, stranger, news.ID); !errors.Is(err, ErrNewsNotFound) {
		t.Fatalf("delete news: expected ErrNewsNotFound, got %v", err)
	}
	if _, err := service.CreateNews(ctx, stranger, NewsInput{HouseID: &house.ID, Header: ptr("x"), Body: ptr("y")}); err == nil {
		t.Fatalf("news on a foreign house must be rejected")
	}
	if err := service.DeleteHouse(ctx, stranger, house.ID); !errors.Is(err, ErrHouseNotFound) {
		t.Fatalf("delete house: expected ErrHouseNotFound, got %v", err)
	}

	if repo.flats[flat.ID].Number != 1 || repo.news[news.ID].Header != "Foundation poured" {
		t.Fatalf("foreign mutations must leave records untouched")
	}

	client := identity.Principal{UserID: 3, ClientID: ptr(int64(30))}
	if _, err := service.UpdateFlat(ctx, client, flat.ID, FlatInput{Number: ptr(99)}, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client update flat: expected ErrForbidden, got %v", err)
	}
	if _, err := service.UpdateFlat(ctx, stranger, 404, FlatInput{Number: ptr(99)}, true); !errors.Is(err, ErrFlatNotFound) {
		t.Fatalf("missing flat: expected ErrFlatNotFound, got %v", err)
	}

	updated, err := service.UpdateFlat(ctx, owner, flat.ID, FlatInput{Number: ptr(99)}, true)
	if err != nil || updated.Number != 99 {
		t.Fatalf("owner update flat: %+v %v", updated, err)
	}
	if _, err := service.UpdateNews(ctx, owner, news.ID, NewsInput{Header: ptr("Roof finished")}, true); err != nil {
		t.Fatalf("owner update news: %v", err)
	}
	admin := identity.Principal{UserID: 4, IsSuperuser: true}
	if err := service.DeleteNews(ctx, admin, news.ID); err != nil {
		t.Fatalf("admin delete news: %v", err)
	}
	if err := service.DeleteFlat(ctx, owner, flat.ID); err != nil {
		t.Fatalf("owner delete flat: %v", err)
	}
}

func TestCreateFlatStatusDependsOnRole(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHouseRepo()
	service := newTestService(repo)
	house, _, _ := seedListing(t, repo, 10)

	cases := []struct {
		name   string
		actor  identity.Principal
		status bool
		want   bool
	}{
		{"developer is always confirmed", developerPrincipal(1, 10), false, true},
		{"admin may confirm", identity.Principal{UserID: 2, IsStaff: true}, true, true},
		{"admin may leave unconfirmed", identity.Principal{UserID: 2, IsStaff: true}, false, false},
		{"client is never confirmed", identity.Principal{UserID: 3, ClientID: ptr(int64(30))}, true, false},
	}
	for _, tc := range cases {
		flat, err := service.CreateFlat(ctx, tc.actor, flatInput(house.ID, tc.status))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if flat.Status != tc.want {
			t.Fatalf("%s: status=%v", tc.name, flat.Status)
		}
	}

	if _, err := service.CreateFlat(ctx, developerPrincipal(1, 10), flatInput(404, true)); err == nil {
		t.Fatalf("flat on a missing house must be rejected")
	}
}

func TestListNewsScopes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHouseRepo()
	service := newTestService(repo)
	first, _, _ := seedListing(t, repo, 10)
	seedListing(t, repo, 20)

	client := identity.Principal{UserID: 3, ClientID: ptr(int64(30))}
	if _, _, err := service.ListNews(ctx, client, NewsFilter{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client without house filter: expected ErrForbidden, got %v", err)
	}
	items, total, err := service.ListNews(ctx, client, NewsFilter{HouseID: &first.ID})
	if err != nil || total != 1 || items[0].HouseID != first.ID {
		t.Fatalf("client with house filter: %v %d %v", items, total, err)
	}

	items, total, err = service.ListNews(ctx, developerPrincipal(2, 20), NewsFilter{})
	if err != nil || total != 1 || items[0].HouseID == first.ID {
		t.Fatalf("developer sees only linked houses: %v %d %v", items, total, err)
	}

	_, total, err = service.ListNews(ctx, identity.Principal{UserID: 4, IsStaff: true}, NewsFilter{})
	if err != nil || total != 2 {
		t.Fatalf("admin sees every house: %d %v", total, err)
	}
}
