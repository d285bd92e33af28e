package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/repository"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPartnerService(t *testing.T) (*services.PartnerService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return services.NewPartnerService(repository.NewUserRepository(db)), db
}

func pendingCount(t *testing.T, db *gorm.DB, fromID, toID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.PartnerRequest{}).
		Where("from_id = ? AND to_id = ?", fromID, toID).
		Count(&count).Error)
	return count
}

func TestSendRequestSuccess(t *testing.T) {
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	name, err := svc.SendRequest(context.Background(), alice.ID, "  Bob@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
	assert.EqualValues(t, 1, pendingCount(t, db, alice.ID, bob.ID))
}

func TestSendRequestPreconditionsInOrder(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")
	dave := testutil.CreateUser(t, db, "Dave", "dave@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, "nobody@example.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.SendRequest(ctx, alice.ID, "alice@example.com")
	assert.ErrorIs(t, err, services.ErrSelfRequest)
	assert.ErrorIs(t, err, services.ErrConflict)

	// Pair carol and dave directly.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", carol.ID).Update("partner_id", dave.ID).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", dave.ID).Update("partner_id", carol.ID).Error)

	_, err = svc.SendRequest(ctx, alice.ID, "carol@example.com")
	assert.ErrorIs(t, err, services.ErrTargetHasPartner)

	// The target check wins over the requester check.
	_, err = svc.SendRequest(ctx, carol.ID, "dave@example.com")
	assert.ErrorIs(t, err, services.ErrTargetHasPartner)

	_, err = svc.SendRequest(ctx, dave.ID, "bob@example.com")
	assert.ErrorIs(t, err, services.ErrAlreadyPartnered)

	// All earlier checks pass for alice -> bob, so only the duplicate check
	// can reject the second send.
	_, err = svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, alice.ID, bob.Email)
	assert.ErrorIs(t, err, services.ErrDuplicateRequest)
	assert.EqualValues(t, 1, pendingCount(t, db, alice.ID, bob.ID))

	_, err = svc.SendRequest(ctx, alice.ID, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSendRequestTwiceLeavesOneEntry(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, alice.ID, bob.Email)
	assert.ErrorIs(t, err, services.ErrDuplicateRequest)
	assert.ErrorIs(t, err, services.ErrConflict)

	assert.EqualValues(t, 1, pendingCount(t, db, alice.ID, bob.ID))
}

func TestSendRequestConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SendRequest(ctx, alice.ID, bob.Email)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, services.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 1, pendingCount(t, db, alice.ID, bob.ID))
}

func TestListPendingRequestsDropsMissingUsers(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, carol.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, db.Unscoped().Delete(&models.User{}, "id = ?", carol.ID).Error)

	pending, err := svc.ListPendingRequests(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].FromID)
	assert.Equal(t, "Alice", pending[0].FromName)
	assert.Equal(t, "alice@example.com", pending[0].FromEmail)

	none, err := svc.ListPendingRequests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAcceptRequestPairsBothUsers(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(ctx, bob.ID, alice.ID))

	a := testutil.ReloadUser(t, db, alice.ID)
	b := testutil.ReloadUser(t, db, bob.ID)
	require.NotNil(t, a.PartnerID)
	require.NotNil(t, b.PartnerID)
	assert.Equal(t, bob.ID, *a.PartnerID)
	assert.Equal(t, alice.ID, *b.PartnerID)
	assert.EqualValues(t, 0, pendingCount(t, db, alice.ID, bob.ID))

	_, err = svc.SendRequest(ctx, alice.ID, carol.Email)
	assert.ErrorIs(t, err, services.ErrAlreadyPartnered)
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = svc.SendRequest(ctx, carol.ID, alice.Email)
	assert.ErrorIs(t, err, services.ErrTargetHasPartner)
}

func TestAcceptRequestClearsOtherRequests(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")
	dave := testutil.CreateUser(t, db, "Dave", "dave@example.com")

	for _, req := range []struct{ from, to models.User }{
		{alice, bob}, {carol, bob}, {alice, dave}, {dave, alice},
	} {
		_, err := svc.SendRequest(ctx, req.from.ID, req.to.Email)
		require.NoError(t, err)
	}

	require.NoError(t, svc.AcceptRequest(ctx, bob.ID, alice.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.PartnerRequest{}).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestAcceptRequestFailures(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	t.Run("not pending", func(t *testing.T) {
		err := svc.AcceptRequest(ctx, bob.ID, carol.ID)
		assert.ErrorIs(t, err, services.ErrRequestNotPending)
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})

	t.Run("nil requester", func(t *testing.T) {
		assert.ErrorIs(t, svc.AcceptRequest(ctx, bob.ID, uuid.Nil), services.ErrInvalidInput)
	})

	t.Run("requester paired meanwhile", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
		require.NoError(t, err)
		_, err = svc.SendRequest(ctx, alice.ID, carol.Email)
		require.NoError(t, err)

		require.NoError(t, svc.AcceptRequest(ctx, carol.ID, alice.ID))

		// Pending entries were cleared on the first accept; recreate a
		// stale one to hit the accept-time recheck.
		require.NoError(t, db.Create(&models.PartnerRequest{FromID: alice.ID, ToID: bob.ID}).Error)

		err = svc.AcceptRequest(ctx, bob.ID, alice.ID)
		assert.ErrorIs(t, err, services.ErrRequesterPaired)
		assert.ErrorIs(t, err, services.ErrConflict)

		b := testutil.ReloadUser(t, db, bob.ID)
		assert.False(t, b.HasPartner())
		assert.EqualValues(t, 1, pendingCount(t, db, alice.ID, bob.ID), "failed accept changes nothing")
	})

	t.Run("requester deleted", func(t *testing.T) {
		ghost := testutil.CreateUser(t, db, "Ghost", "ghost@example.com")
		_, err := svc.SendRequest(ctx, ghost.ID, bob.Email)
		require.NoError(t, err)
		require.NoError(t, db.Unscoped().Delete(&models.User{}, "id = ?", ghost.ID).Error)

		err = svc.AcceptRequest(ctx, bob.ID, ghost.ID)
		assert.ErrorIs(t, err, services.ErrRequesterGone)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestAcceptRequestWhenAcceptorAlreadyPaired(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, carol.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(ctx, bob.ID, alice.ID))

	require.NoError(t, db.Create(&models.PartnerRequest{FromID: carol.ID, ToID: bob.ID}).Error)
	err = svc.AcceptRequest(ctx, bob.ID, carol.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyPartnered)

	c := testutil.ReloadUser(t, db, carol.ID)
	assert.False(t, c.HasPartner())
}

func TestConcurrentAcceptsPairOnce(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, alice.ID, carol.Email)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, acceptor := range []uuid.UUID{bob.ID, carol.ID} {
		wg.Add(1)
		go func(i int, acceptor uuid.UUID) {
			defer wg.Done()
			errs[i] = svc.AcceptRequest(ctx, acceptor, alice.ID)
		}(i, acceptor)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	a := testutil.ReloadUser(t, db, alice.ID)
	require.True(t, a.HasPartner())
	partner := testutil.ReloadUser(t, db, *a.PartnerID)
	require.True(t, partner.HasPartner())
	assert.Equal(t, alice.ID, *partner.PartnerID)

	var paired int64
	require.NoError(t, db.Model(&models.User{}).Where("partner_id IS NOT NULL").Count(&paired).Error)
	assert.EqualValues(t, 2, paired)
}

func TestCrossedAcceptsPairOnce(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, bob.ID, alice.Email)
	require.NoError(t, err)

	// Each side accepts the other at once; both lock the same two rows.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, ids := range [][2]uuid.UUID{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		wg.Add(1)
		go func(i int, acceptor, requester uuid.UUID) {
			defer wg.Done()
			errs[i] = svc.AcceptRequest(ctx, acceptor, requester)
		}(i, ids[0], ids[1])
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.ErrorIs(t, err, services.ErrRequestNotPending)
		}
	}
	assert.Equal(t, 1, failed)

	assert.Equal(t, bob.ID, *testutil.ReloadUser(t, db, alice.ID).PartnerID)
	assert.Equal(t, alice.ID, *testutil.ReloadUser(t, db, bob.ID).PartnerID)
	assert.Zero(t, pendingCount(t, db, alice.ID, bob.ID)+pendingCount(t, db, bob.ID, alice.ID))
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.RejectRequest(ctx, bob.ID, alice.ID))

	assert.EqualValues(t, 0, pendingCount(t, db, alice.ID, bob.ID))
	assert.False(t, testutil.ReloadUser(t, db, alice.ID).HasPartner())
	assert.False(t, testutil.ReloadUser(t, db, bob.ID).HasPartner())

	err = svc.RejectRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, services.ErrRequestNotPending)

	// A rejected requester may ask again.
	_, err = svc.SendRequest(ctx, alice.ID, bob.Email)
	assert.NoError(t, err)
}

func TestRemovePartner(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	_, err := svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(ctx, bob.ID, alice.ID))

	require.NoError(t, svc.RemovePartner(ctx, alice.ID))
	assert.False(t, testutil.ReloadUser(t, db, alice.ID).HasPartner())
	assert.False(t, testutil.ReloadUser(t, db, bob.ID).HasPartner())

	// Unpaired users may call it again.
	require.NoError(t, svc.RemovePartner(ctx, alice.ID))
	require.NoError(t, svc.RemovePartner(ctx, bob.ID))

	assert.ErrorIs(t, svc.RemovePartner(ctx, uuid.New()), services.ErrUserNotFound)
}

func TestRemovePartnerLeavesForeignLinkAlone(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	// Asymmetric: alice -> bob, bob -> carol.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).Update("partner_id", bob.ID).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("partner_id", carol.ID).Error)

	require.NoError(t, svc.RemovePartner(ctx, alice.ID))

	assert.False(t, testutil.ReloadUser(t, db, alice.ID).HasPartner())
	b := testutil.ReloadUser(t, db, bob.ID)
	require.True(t, b.HasPartner())
	assert.Equal(t, carol.ID, *b.PartnerID)
}

func TestGetPartner(t *testing.T) {
	ctx := context.Background()
	svc, db := newPartnerService(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	partner, err := svc.GetPartner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, partner)

	_, err = svc.SendRequest(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(ctx, bob.ID, alice.ID))

	partner, err = svc.GetPartner(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, partner)
	assert.Equal(t, bob.ID, partner.ID)
	assert.Equal(t, "Bob", partner.Name)

	require.NoError(t, db.Unscoped().Delete(&models.User{}, "id = ?", bob.ID).Error)
	partner, err = svc.GetPartner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, partner, "dangling partner reference reads as no partner")

	_, err = svc.GetPartner(ctx, uuid.New())
	assert.True(t, errors.Is(err, services.ErrUserNotFound))
}
