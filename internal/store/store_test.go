package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "videos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, changed, err := s.Put(ctx, Record{
		VideoID:    "dQw4w9WgXcQ",
		URL:        "https://youtu.be/dQw4w9WgXcQ",
		Transcript: "00:01 hello",
		Notes:      "# Intro\ntext",
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ContentHash("00:01 hello", "# Intro\ntext"), rec.ContentHash)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, rec.VideoID, got.VideoID)
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, rec.Transcript, got.Transcript)
	assert.Equal(t, rec.Notes, got.Notes)
	assert.Equal(t, rec.ContentHash, got.ContentHash)
	assert.Equal(t, rec.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
}

func TestStore_PutUnchangedIsNoop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, _, err := s.Put(ctx, Record{VideoID: "v1", Transcript: "t", Notes: "n"})
	require.NoError(t, err)

	again, changed, err := s.Put(ctx, Record{VideoID: "v1", Transcript: "t", Notes: "n"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first.ContentHash, again.ContentHash)
}

func TestStore_PutURLChangeIsStored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, _, err := s.Put(ctx, Record{VideoID: "v1", URL: "https://youtu.be/old", Transcript: "t", Notes: "n"})
	require.NoError(t, err)

	rec, changed, err := s.Put(ctx, Record{VideoID: "v1", URL: "https://youtu.be/new", Transcript: "t", Notes: "n"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, first.ContentHash, rec.ContentHash)

	got, err := s.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/new", got.URL)
	assert.Equal(t, first.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
}

func TestStore_PutUpdateKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, _, err := s.Put(ctx, Record{VideoID: "v1", Transcript: "t", Notes: "old"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	second, changed, err := s.Put(ctx, Record{VideoID: "v1", Transcript: "t", Notes: "new"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, first.ContentHash, second.ContentHash)

	got, err := s.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Notes)
	assert.Equal(t, first.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestStore_PutRequiresID(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.Put(context.Background(), Record{Notes: "n"})
	assert.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, _, err := s.Put(ctx, Record{VideoID: id, Transcript: id, Notes: id})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].VideoID)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	deleted, err := s.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "b")
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err = s.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestContentHash_SeparatesFields(t *testing.T) {
	assert.NotEqual(t, ContentHash("ab", "c"), ContentHash("a", "bc"))
	assert.Equal(t, ContentHash("x", "y"), ContentHash("x", "y"))
	assert.Len(t, ContentHash("", ""), 64)
}
