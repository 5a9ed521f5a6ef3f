package houses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	"swipe-go/internal/testutil/sqlitedb"
)

func seedHouse(t *testing.T, repo *PostgresRepository, name, hash string) housesdomain.House {
	t.Helper()
	house := housesdomain.House{
		Name: name, Status: housesdomain.StatusNewBuild, Type: "1", Class: "1",
		Housings: 2, Sections: 2, Floors: 10, Coords: "46.48,30.72", Geohash: hash,
	}
	require.NoError(t, repo.CreateHouse(context.Background(), &house))
	return house
}

func TestListHousesScopes(t *testing.T) {
	ctx := context.Background()
	conn := sqlitedb.Open(t)
	repo := NewPostgres(conn)

	linked := seedHouse(t, repo, "Linked", "u8mb7juh0")
	withAnnouncement := seedHouse(t, repo, "Busy", "u8mc00000")
	seedHouse(t, repo, "Empty", "u9000000")

	require.NoError(t, repo.LinkDeveloper(ctx, 7, linked.ID))
	require.NoError(t, repo.LinkDeveloper(ctx, 7, linked.ID), "linking twice is a no-op")

	flat := housesdomain.Flat{HouseID: withAnnouncement.ID, Housing: 1, Section: 1, Floor: 1, Number: 1}
	require.NoError(t, repo.CreateFlat(ctx, &flat))
	require.NoError(t, conn.Create(&announcementsdomain.Announcement{
		Address: "a", FlatID: &flat.ID, AdvertiserID: 1,
		ModerStatus: announcementsdomain.ModerationPending, AvailableStatus: announcementsdomain.Available,
	}).Error)

	all, total, err := repo.ListHouses(ctx, housesdomain.HouseScope{Unrestricted: true}, housesdomain.HouseFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	developerID := int64(7)
	mine, _, err := repo.ListHouses(ctx, housesdomain.HouseScope{DeveloperID: &developerID}, housesdomain.HouseFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, linked.ID, mine[0].ID)

	public, _, err := repo.ListHouses(ctx, housesdomain.HouseScope{WithAnnouncements: true}, housesdomain.HouseFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, withAnnouncement.ID, public[0].ID)

	nearby, _, err := repo.ListHouses(ctx, housesdomain.HouseScope{Unrestricted: true}, housesdomain.HouseFilter{GeohashPrefix: "u8m"})
	require.NoError(t, err)
	assert.Len(t, nearby, 2)

	paged, total, err := repo.ListHouses(ctx, housesdomain.HouseScope{Unrestricted: true}, housesdomain.HouseFilter{Page: housesdomain.Page{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, paged, 1)
	assert.Equal(t, withAnnouncement.ID, paged[0].ID)
}

func TestFlatScopeFollowsDeveloperLinks(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(sqlitedb.Open(t))

	mine := seedHouse(t, repo, "Mine", "")
	other := seedHouse(t, repo, "Other", "")
	require.NoError(t, repo.LinkDeveloper(ctx, 1, mine.ID))

	for _, houseID := range []int64{mine.ID, other.ID} {
		flat := housesdomain.Flat{HouseID: houseID, Housing: 1, Section: 1, Floor: 1, Number: 1}
		require.NoError(t, repo.CreateFlat(ctx, &flat))
	}

	developerID := int64(1)
	flats, total, err := repo.ListFlats(ctx, housesdomain.FlatScope{DeveloperID: &developerID}, housesdomain.FlatFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, flats, 1)
	assert.Equal(t, mine.ID, flats[0].HouseID)

	linked, err := repo.IsLinked(ctx, 1, other.ID)
	require.NoError(t, err)
	assert.False(t, linked)
}

func TestDeleteHouseCascades(t *testing.T) {
	ctx := context.Background()
	conn := sqlitedb.Open(t)
	repo := NewPostgres(conn)

	house := seedHouse(t, repo, "Doomed", "")
	require.NoError(t, repo.LinkDeveloper(ctx, 1, house.ID))
	require.NoError(t, repo.CreateHouseImage(ctx, &housesdomain.HouseImage{HouseID: house.ID, Image: "houses/1/a.jpg"}))
	require.NoError(t, repo.CreateNews(ctx, &housesdomain.HouseNews{HouseID: house.ID, Header: "h", Body: "b"}))

	flat := housesdomain.Flat{HouseID: house.ID, Housing: 1, Section: 1, Floor: 1, Number: 1}
	require.NoError(t, repo.CreateFlat(ctx, &flat))
	announcement := announcementsdomain.Announcement{Address: "a", FlatID: &flat.ID, AdvertiserID: 1, ModerStatus: "1", AvailableStatus: "1"}
	require.NoError(t, conn.Create(&announcement).Error)
	require.NoError(t, conn.Create(&announcementsdomain.AnnouncementImage{AnnouncementID: announcement.ID, Image: "announcements/1/b.jpg"}).Error)
	require.NoError(t, conn.Create(&announcementsdomain.Promotion{AnnouncementID: announcement.ID, Phrase: "0", Color: "0"}).Error)
	require.NoError(t, conn.Create(&favouritesdomain.ClientHouseFavourite{ClientID: 1, HouseID: house.ID}).Error)
	require.NoError(t, conn.Create(&favouritesdomain.ClientAnnouncementFavourite{ClientID: 1, AnnouncementID: announcement.ID}).Error)

	var keys []string
	err := repo.Transaction(ctx, func(tx housesdomain.Repository) error {
		var err error
		keys, err = tx.DeleteHouse(ctx, house.ID)
		return err
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"houses/1/a.jpg", "announcements/1/b.jpg"}, keys)

	for _, model := range []any{
		&housesdomain.House{}, &housesdomain.Flat{}, &housesdomain.HouseNews{}, &housesdomain.HouseImage{},
		&housesdomain.DeveloperHouse{}, &announcementsdomain.Announcement{}, &announcementsdomain.AnnouncementImage{},
		&announcementsdomain.Promotion{}, &favouritesdomain.ClientHouseFavourite{}, &favouritesdomain.ClientAnnouncementFavourite{},
	} {
		var count int64
		require.NoError(t, conn.Model(model).Count(&count).Error)
		assert.Zerof(t, count, "%T rows left behind", model)
	}

	_, err = repo.DeleteHouse(ctx, house.ID)
	assert.ErrorIs(t, err, housesdomain.ErrHouseNotFound)
}

func TestNewsOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(sqlitedb.Open(t))
	house := seedHouse(t, repo, "News", "")

	first := housesdomain.HouseNews{HouseID: house.ID, Header: "first", Body: "b"}
	require.NoError(t, repo.CreateNews(ctx, &first))
	second := housesdomain.HouseNews{HouseID: house.ID, Header: "second", Body: "b", PublicationDate: first.PublicationDate.AddDate(0, 0, 1)}
	require.NoError(t, repo.CreateNews(ctx, &second))

	news, _, err := repo.ListNews(ctx, housesdomain.NewsScope{Unrestricted: true}, housesdomain.NewsFilter{HouseID: &house.ID})
	require.NoError(t, err)
	require.Len(t, news, 2)
	assert.Equal(t, "second", news[0].Header)

	_, _, err = repo.ListNews(ctx, housesdomain.NewsScope{}, housesdomain.NewsFilter{})
	require.NoError(t, err)
}
