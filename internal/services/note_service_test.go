package services_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesVisibleToPartner(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := services.NewNoteService(db, services.NewContentFilter())
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")

	_, err := svc.Create(ctx, alice.ID, &dto.CreateNoteRequest{Title: "Graphs", Content: "BFS uses a queue", Category: "dsa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, &dto.CreateNoteRequest{Title: "React", Content: "hooks run in order", Category: "Dev"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, carol.ID, &dto.CreateNoteRequest{Title: "Secret", Content: "not shared"})
	require.NoError(t, err)

	partnerNotes, err := svc.List(ctx, alice.ID, services.NotesPartner)
	require.NoError(t, err)
	assert.Empty(t, partnerNotes)

	pair(t, db, alice.ID, bob.ID)

	partnerNotes, err = svc.List(ctx, alice.ID, services.NotesPartner)
	require.NoError(t, err)
	require.Len(t, partnerNotes, 1)
	assert.Equal(t, "React", partnerNotes[0].Title)

	all, err := svc.List(ctx, alice.ID, services.NotesAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "DSA", mine[0].Category)
}

func TestNoteOwnership(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := services.NewNoteService(db, services.NewContentFilter())
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	note, err := svc.Create(ctx, alice.ID, &dto.CreateNoteRequest{Title: "Heaps", Content: "sift down"})
	require.NoError(t, err)

	title := "Binary heaps"
	_, err = svc.Update(ctx, bob.ID, note.ID, &dto.UpdateNoteRequest{Title: &title})
	assert.ErrorIs(t, err, services.ErrNotOwner)

	updated, err := svc.Update(ctx, alice.ID, note.ID, &dto.UpdateNoteRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "sift down", updated.Content)

	empty := " "
	_, err = svc.Update(ctx, alice.ID, note.ID, &dto.UpdateNoteRequest{Content: &empty})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, note.ID), services.ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, alice.ID, note.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, note.ID), services.ErrNoteNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, uuid.New()), services.ErrNotFound)
}

func TestCreateNoteValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewNoteService(db, services.NewContentFilter())
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")

	_, err := svc.Create(context.Background(), alice.ID, &dto.CreateNoteRequest{Title: "", Content: "x"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, err = svc.Create(context.Background(), alice.ID, &dto.CreateNoteRequest{Title: "x", Content: "y", Category: "Poetry"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
