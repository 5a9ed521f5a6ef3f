package favourites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	"swipe-go/internal/domain/identity"
	"swipe-go/internal/testutil/sqlitedb"
)

func TestAnnouncementFavourites(t *testing.T) {
	ctx := context.Background()
	conn := sqlitedb.Open(t)
	registry := favouritesdomain.NewRegistry[announcementsdomain.Announcement](NewAnnouncementStore(conn))

	rejected := announcementsdomain.Announcement{Address: "a", AdvertiserID: 9, ModerStatus: announcementsdomain.ModerationRejected, AvailableStatus: announcementsdomain.Unavailable}
	require.NoError(t, conn.Create(&rejected).Error)

	clientID := int64(3)
	actor := identity.Principal{UserID: 1, ClientID: &clientID}

	require.NoError(t, registry.Add(ctx, actor, rejected.ID))
	assert.ErrorIs(t, registry.Add(ctx, actor, rejected.ID), favouritesdomain.ErrAlreadyFavourite)
	assert.ErrorIs(t, registry.Add(ctx, actor, rejected.ID+100), favouritesdomain.ErrTargetNotFound)

	items, err := registry.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, items, 1, "favourites ignore moderation")
	assert.Equal(t, rejected.ID, items[0].ID)

	require.NoError(t, registry.Remove(ctx, actor, rejected.ID))
	assert.ErrorIs(t, registry.Remove(ctx, actor, rejected.ID), favouritesdomain.ErrFavouriteNotFound)

	items, err = registry.List(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHouseFavouritesArePerClient(t *testing.T) {
	ctx := context.Background()
	conn := sqlitedb.Open(t)
	registry := favouritesdomain.NewRegistry[housesdomain.House](NewHouseStore(conn))

	house := housesdomain.House{Name: "Sea view"}
	require.NoError(t, conn.Create(&house).Error)

	first, second := int64(1), int64(2)
	require.NoError(t, registry.Add(ctx, identity.Principal{UserID: 1, ClientID: &first}, house.ID))

	items, err := registry.List(ctx, identity.Principal{UserID: 2, ClientID: &second})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = registry.List(ctx, identity.Principal{UserID: 1, ClientID: &first})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sea view", items[0].Name)
}
