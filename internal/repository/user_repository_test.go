package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")

	found, ok, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", found.Name)

	_, ok, err = repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	found, ok, err = repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, alice.ID, found.ID)

	users, err := repo.FindByIDs(ctx, []uuid.UUID{alice.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	users, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestPendingRequestSet(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	added, err := repo.AddPendingRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddPendingRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, added, "second add is a no-op")

	_, err = repo.AddPendingRequest(ctx, carol.ID, bob.ID)
	require.NoError(t, err)

	requesters, err := repo.ListPendingRequesters(ctx, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{alice.ID, carol.ID}, requesters)

	pending, err := repo.HasPendingRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	removed, err := repo.RemovePendingRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.RemovePendingRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.AddPendingRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, repo.ClearRequestsInvolving(ctx, carol.ID))

	requesters, err = repo.ListPendingRequesters(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, requesters)
	requesters, err = repo.ListPendingRequesters(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob.ID}, requesters, "unrelated requests survive")
}

func TestPartnerWrites(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	require.NoError(t, repo.SetPartner(ctx, alice.ID, &bob.ID))
	require.NoError(t, repo.SetPartner(ctx, bob.ID, &alice.ID))

	partnered, err := repo.ListPartnered(ctx)
	require.NoError(t, err)
	assert.Len(t, partnered, 2)

	require.NoError(t, repo.ClearPartnerIfMatches(ctx, alice.ID, carol.ID))
	assert.Equal(t, bob.ID, *testutil.ReloadUser(t, db, alice.ID).PartnerID, "mismatched clear is ignored")

	require.NoError(t, repo.ClearPartnerIfMatches(ctx, alice.ID, bob.ID))
	assert.False(t, testutil.ReloadUser(t, db, alice.ID).HasPartner())

	require.NoError(t, repo.SetPartner(ctx, bob.ID, nil))
	assert.False(t, testutil.ReloadUser(t, db, bob.ID).HasPartner())
}

func TestListUsersOrdersByScore(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	low := testutil.CreateUser(t, db, "Low", "low@example.com")
	high := testutil.CreateUser(t, db, "High", "high@example.com")
	mid := testutil.CreateUser(t, db, "Mid", "mid@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", high.ID).Updates(map[string]interface{}{"dsa_score": 10, "dev_score": 5}).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", mid.ID).Update("dev_score", 7).Error)

	users, err := repo.ListUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []uuid.UUID{high.ID, mid.ID, low.ID}, []uuid.UUID{users[0].ID, users[1].ID, users[2].ID})

	users, err = repo.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx services.UserStore) error {
		if err := tx.SetPartner(ctx, alice.ID, &bob.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, testutil.ReloadUser(t, db, alice.ID).HasPartner())
}
