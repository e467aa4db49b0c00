package repository

import (
	"context"
	"stickynotes/cmd/internal/domain/entity"
	"stickynotes/cmd/internal/domain/sqlite"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	ownerA int64 = 1001
	ownerB int64 = 2002
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

// tickingClock returns a clock that advances one millisecond per call.
func tickingClock(start int64) func() int64 {
	var mu sync.Mutex
	now := start
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		now++
		return now
	}
}

func newTestNoteRepo(t *testing.T) *DefaultNoteRepository {
	repo := NewNoteRepository(setupTestDB(t))
	repo.now = tickingClock(1_700_000_000_000)
	return repo
}

func insertNote(t *testing.T, repo *DefaultNoteRepository, owner int64, title string) *entity.Note {
	t.Helper()
	note, err := repo.Insert(context.Background(), &entity.Note{
		OwnerID: owner,
		Title:   title,
		Tags:    []string{"a", "b"},
		Color:   entity.DefaultNoteColor,
	})
	require.NoError(t, err)
	return note
}

func TestNoteRepository_Insert(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		note := insertNote(t, repo, ownerA, "first")
		assert.NotEmpty(t, note.ID)
		assert.Equal(t, ownerA, note.OwnerID)
		assert.NotZero(t, note.CreatedAt)
		assert.Equal(t, note.CreatedAt, note.UpdatedAt)

		stored, err := repo.FindOne(ctx, note.ID, ownerA)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, []string{"a", "b"}, stored.Tags)
		assert.False(t, stored.IsPinned)
	})

	t.Run("ids are unique", func(t *testing.T) {
		first := insertNote(t, repo, ownerA, "x")
		second := insertNote(t, repo, ownerA, "x")
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := repo.Insert(ctx, &entity.Note{Title: "orphan"})
		assert.ErrorIs(t, err, ErrEmptyOwner)
	})

	t.Run("nil tags are stored as empty", func(t *testing.T) {
		note, err := repo.Insert(ctx, &entity.Note{OwnerID: ownerA, Title: "no tags"})
		require.NoError(t, err)

		stored, err := repo.FindOne(ctx, note.ID, ownerA)
		require.NoError(t, err)
		assert.NotNil(t, stored.Tags)
		assert.Empty(t, stored.Tags)
	})
}

func TestNoteRepository_OwnerIsolation(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()

	noteA := insertNote(t, repo, ownerA, "mine")

	listB, err := repo.FindByOwner(ctx, ownerB)
	require.NoError(t, err)
	assert.NotNil(t, listB)
	assert.Empty(t, listB)

	found, err := repo.FindOne(ctx, noteA.ID, ownerB)
	require.NoError(t, err)
	assert.Nil(t, found)

	title := "stolen"
	updated, err := repo.Update(ctx, noteA.ID, ownerB, &entity.NoteFields{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.Delete(ctx, noteA.ID, ownerB)
	require.NoError(t, err)
	assert.False(t, deleted)

	stored, err := repo.FindOne(ctx, noteA.ID, ownerA)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "mine", stored.Title)
}

func TestNoteRepository_FindByOwner(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()

	first := insertNote(t, repo, ownerA, "first")
	second := insertNote(t, repo, ownerA, "second")
	insertNote(t, repo, ownerB, "other")

	pinned := true
	_, err := repo.Update(ctx, first.ID, ownerA, &entity.NoteFields{IsPinned: &pinned})
	require.NoError(t, err)

	notes, err := repo.FindByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Newest first, pinned notes are not moved ahead.
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
	assert.True(t, notes[1].IsPinned)
}

func TestNoteRepository_Update(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()

	t.Run("applies only the given fields", func(t *testing.T) {
		note := insertNote(t, repo, ownerA, "before")
		pinned := true

		updated, err := repo.Update(ctx, note.ID, ownerA, &entity.NoteFields{IsPinned: &pinned})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.True(t, updated.IsPinned)
		assert.Equal(t, "before", updated.Title)
		assert.Equal(t, []string{"a", "b"}, updated.Tags)
		assert.Equal(t, note.CreatedAt, updated.CreatedAt)
		assert.Greater(t, updated.UpdatedAt, note.UpdatedAt)
	})

	t.Run("replaces every allowed field", func(t *testing.T) {
		note := insertNote(t, repo, ownerA, "before")
		title, content, color := "after", "body", "#22d3ee"

		_, err := repo.Update(ctx, note.ID, ownerA, &entity.NoteFields{
			Title:   &title,
			Content: &content,
			Tags:    []string{"z"},
			Color:   &color,
		})
		require.NoError(t, err)

		stored, err := repo.FindOne(ctx, note.ID, ownerA)
		require.NoError(t, err)
		assert.Equal(t, "after", stored.Title)
		assert.Equal(t, "body", stored.Content)
		assert.Equal(t, []string{"z"}, stored.Tags)
		assert.Equal(t, "#22d3ee", stored.Color)
		assert.Equal(t, ownerA, stored.OwnerID)
		assert.Equal(t, note.ID, stored.ID)
	})

	t.Run("updatedAt advances even when the clock stalls", func(t *testing.T) {
		note := insertNote(t, repo, ownerA, "stalled")
		saved := repo.now
		repo.now = func() int64 { return note.UpdatedAt }
		defer func() { repo.now = saved }()

		pinned := true
		updated, err := repo.Update(ctx, note.ID, ownerA, &entity.NoteFields{IsPinned: &pinned})
		require.NoError(t, err)
		assert.Equal(t, note.UpdatedAt+1, updated.UpdatedAt)
	})

	t.Run("missing note", func(t *testing.T) {
		pinned := true
		updated, err := repo.Update(ctx, "does-not-exist", ownerA, &entity.NoteFields{IsPinned: &pinned})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestNoteRepository_ConcurrentUpdates(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()
	note := insertNote(t, repo, ownerA, "busy")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(pinned bool) {
			defer wg.Done()
			_, err := repo.Update(ctx, note.ID, ownerA, &entity.NoteFields{IsPinned: &pinned})
			assert.NoError(t, err)
		}(i%2 == 0)
	}
	wg.Wait()

	stored, err := repo.FindOne(ctx, note.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, "busy", stored.Title)
	assert.Greater(t, stored.UpdatedAt, note.UpdatedAt)
}

func TestNoteRepository_Delete(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx := context.Background()
	note := insertNote(t, repo, ownerA, "doomed")

	deleted, err := repo.Delete(ctx, note.ID, ownerA)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.FindOne(ctx, note.ID, ownerA)
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = repo.Delete(ctx, note.ID, ownerA)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNoteRepository_CanceledContext(t *testing.T) {
	repo := newTestNoteRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByOwner(ctx, ownerA)
	assert.Error(t, err)
}
