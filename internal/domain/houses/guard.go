package houses

import (
	"context"

	"swipe-go/internal/domain/identity"
)

// managedHouse loads a house for a developer or admin mutation. The lookup
// runs without an ownership filter first; a house that exists but is not
// linked to the developer is reported exactly like a missing one.
func managedHouse(ctx context.Context, repo Repository, actor identity.Principal, houseID int64) (*House, error) {
	if !actor.CanManageListings() {
		return nil, ErrForbidden
	}

	house, err := repo.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return house, nil
	}

	linked, err := repo.IsLinked(ctx, *actor.DeveloperID, house.ID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrHouseNotFound
	}
	return house, nil
}

func managedFlat(ctx context.Context, repo Repository, actor identity.Principal, flatID int64) (*Flat, error) {
	if !actor.CanManageListings() {
		return nil, ErrForbidden
	}

	flat, err := repo.GetFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return flat, nil
	}

	linked, err := repo.IsLinked(ctx, *actor.DeveloperID, flat.HouseID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrFlatNotFound
	}
	return flat, nil
}

func managedNews(ctx context.Context, repo Repository, actor identity.Principal, newsID int64) (*HouseNews, error) {
	if !actor.CanManageListings() {
		return nil, ErrForbidden
	}

	news, err := repo.GetNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return news, nil
	}

	linked, err := repo.IsLinked(ctx, *actor.DeveloperID, news.HouseID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrNewsNotFound
	}
	return news, nil
}

// visibleHouse checks a house against the actor's list scope.
func visibleHouse(ctx context.Context, repo Repository, actor identity.Principal, houseID int64) (*House, error) {
	house, err := repo.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	items, _, err := repo.ListHouses(ctx, HouseScopeFor(actor), HouseFilter{IDs: []int64{house.ID}, Page: Page{Limit: 1}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrHouseNotFound
	}
	return house, nil
}
