// internal/storage/store_test.go
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

// forEachStore runs fn against a fresh SQLStore and a fresh MemoryStore.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{MetadataDbDir: t.TempDir(), MetadataDbFile: "test.db"}
		s, err := ConnectDB(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s)
	})

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func mustUser(t *testing.T, s Store, username string) *domain.User {
	t.Helper()
	u := &domain.User{Name: username, Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	_, err := s.CreateUser(context.Background(), u)
	require.NoError(t, err)
	return u
}

func mustCollection(t *testing.T, s Store, userID int64, name string) *domain.Collection {
	t.Helper()
	c := &domain.Collection{UserID: userID, Name: name, Type: "figures"}
	_, err := s.CreateCollection(context.Background(), c)
	require.NoError(t, err)
	return c
}

func TestUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u := mustUser(t, s, "alice")
		assert.Positive(t, u.ID)

		byLogin, err := s.FindUserByLogin(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byLogin.ID)

		byLogin, err = s.FindUserByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "hash", byLogin.PasswordHash)

		_, err = s.FindUserByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = s.CreateUser(ctx, &domain.User{Name: "x", Username: "other", Email: "alice@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, ErrEmailExists)
		_, err = s.CreateUser(ctx, &domain.User{Name: "x", Username: "alice", Email: "new@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, ErrUsernameExists)
		assert.ErrorIs(t, err, domain.ErrConflict)

		bob := mustUser(t, s, "bob")
		bob.Email = "alice@example.com"
		assert.ErrorIs(t, s.UpdateUser(ctx, bob), ErrEmailExists)

		u.Name = "Alice A."
		u.DateOfBirth = "1990-01-02"
		require.NoError(t, s.UpdateUser(ctx, u))
		got, err := s.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice A.", got.Name)
		assert.Equal(t, "1990-01-02", got.DateOfBirth)

		assert.ErrorIs(t, s.UpdateUser(ctx, &domain.User{ID: 999, Username: "z", Email: "z@example.com"}), ErrUserNotFound)
	})
}

func TestCollectionsOrderingAndOwner(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		bob := mustUser(t, s, "bob")

		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, name := range []string{"Minis", "Coins", "Stamps"} {
			c := &domain.Collection{UserID: alice.ID, Name: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
			_, err := s.CreateCollection(ctx, c)
			require.NoError(t, err)
		}
		mustCollection(t, s, bob.ID, "Bob's")

		list, err := s.ListCollections(ctx, alice.ID, domain.ListOptions{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"Stamps", "Coins", "Minis"}, []string{list[0].Name, list[1].Name, list[2].Name})

		list, err = s.ListCollections(ctx, alice.ID, domain.ListOptions{SortBy: "name", SortOrder: "asc", Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Minis", list[0].Name)
		assert.Equal(t, "Stamps", list[1].Name)

		owner, err := s.CollectionOwner(ctx, list[0].ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, owner.OwnerID)

		_, err = s.CollectionOwner(ctx, 12345)
		assert.ErrorIs(t, err, ErrCollectionNotFound)

		empty, err := s.ListCollections(ctx, 777, domain.ListOptions{})
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestItemRoundTripAndDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		c := mustCollection(t, s, alice.ID, "Minis")

		in := &domain.Item{
			CollectionID: c.ID, Name: "Figure A", Importance: 7, Weight: floatp(0.25), Price: floatp(19.99),
			AcquisitionDate: "2024-03-01", Rating: intp(4), Description: "painted", Image: "uploads/a.png",
		}
		_, err := s.CreateItem(ctx, in)
		require.NoError(t, err)

		got, err := s.FindItem(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		unrated := &domain.Item{CollectionID: c.ID, Name: "Figure B", Importance: 0}
		_, err = s.CreateItem(ctx, unrated)
		require.NoError(t, err)
		got, err = s.FindItem(ctx, unrated.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Rating)
		assert.Nil(t, got.Weight)

		list, err := s.ListItems(ctx, c.ID, domain.ListOptions{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, in.ID, list[0].ID)

		list, err = s.ListItems(ctx, c.ID, domain.ListOptions{SortBy: "rating", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, unrated.ID, list[0].ID, "NULL ratings sort first")

		owner, err := s.ItemOwner(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Ownership{OwnerID: alice.ID, CollectionID: c.ID}, owner)

		in.Rating = nil
		in.Name = "Figure A2"
		require.NoError(t, s.UpdateItem(ctx, in))
		got, err = s.FindItem(ctx, in.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Rating)
		assert.Equal(t, "Figure A2", got.Name)

		require.NoError(t, s.DeleteItem(ctx, in.ID))
		assert.ErrorIs(t, s.DeleteItem(ctx, in.ID), ErrItemNotFound)
		assert.ErrorIs(t, s.DeleteItem(ctx, in.ID), domain.ErrNotFound)
		_, err = s.FindItem(ctx, in.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
		_, err = s.ItemOwner(ctx, in.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestEventsOrderedByDate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		c := mustCollection(t, s, alice.ID, "Cons")

		for _, d := range []string{"2025-09-01", "2024-01-15", "2025-02-10"} {
			_, err := s.CreateEvent(ctx, &domain.Event{CollectionID: c.ID, Name: "Con " + d, Date: d})
			require.NoError(t, err)
		}

		list, err := s.ListEvents(ctx, c.ID, domain.ListOptions{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "2024-01-15", list[0].Date)
		assert.Equal(t, "2025-02-10", list[1].Date)
		assert.Equal(t, "2025-09-01", list[2].Date)

		ev := list[0]
		ev.Rating = intp(5)
		require.NoError(t, s.UpdateEvent(ctx, &ev))
		got, err := s.FindEvent(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, *got.Rating)

		owner, err := s.EventOwner(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, owner.OwnerID)

		assert.ErrorIs(t, s.DeleteEvent(ctx, 9999), ErrEventNotFound)
	})
}

func TestDeleteCollectionCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		c := mustCollection(t, s, alice.ID, "Minis")
		keep := mustCollection(t, s, alice.ID, "Keep")

		it := &domain.Item{CollectionID: c.ID, Name: "Figure", Importance: 3}
		_, err := s.CreateItem(ctx, it)
		require.NoError(t, err)
		ev := &domain.Event{CollectionID: c.ID, Name: "Con", Date: "2024-01-01"}
		_, err = s.CreateEvent(ctx, ev)
		require.NoError(t, err)
		kept := &domain.Item{CollectionID: keep.ID, Name: "Other", Importance: 1}
		_, err = s.CreateItem(ctx, kept)
		require.NoError(t, err)

		require.NoError(t, s.DeleteCollection(ctx, c.ID))
		assert.ErrorIs(t, s.DeleteCollection(ctx, c.ID), ErrCollectionNotFound)

		_, err = s.FindItem(ctx, it.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
		_, err = s.FindEvent(ctx, ev.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
		_, err = s.FindItem(ctx, kept.ID)
		assert.NoError(t, err)
	})
}

func TestChildOfMissingCollection(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.CreateItem(context.Background(), &domain.Item{CollectionID: 42, Name: "Orphan", Importance: 1})
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}
