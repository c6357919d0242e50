package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunken-app/bunken/reference"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "refs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGetDelete(t *testing.T) {
	db := openTestDB(t)

	r := reference.Reference{
		ID:        "ref-1",
		Type:      reference.TypeJapaneseBook,
		Authors:   []reference.Author{{LastName: "高橋", FirstName: "太郎"}},
		Title:     "音楽教育史",
		Publisher: "音楽之友社",
		Year:      1996,
		CreatedAt: "2020-01-01T00:00:00Z",
		UpdatedAt: "2020-01-01T00:00:00Z",
	}
	require.NoError(t, db.Put(r))

	got, err := db.Get("ref-1")
	require.NoError(t, err)
	assert.Equal(t, "音楽教育史", got.Title)
	assert.Equal(t, reference.Year(1996), got.Year)

	require.NoError(t, db.Delete("ref-1"))
	_, err = db.Get("ref-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Delete("ref-1"), ErrNotFound)
}

func TestPutUpserts(t *testing.T) {
	db := openTestDB(t)

	r := reference.Reference{ID: "ref-1", Type: reference.TypeJapaneseBook, Title: "初版"}
	require.NoError(t, db.Put(r))
	r.Title = "改訂版"
	require.NoError(t, db.Put(r))

	got, err := db.Get("ref-1")
	require.NoError(t, err)
	assert.Equal(t, "改訂版", got.Title)

	refs, err := db.List()
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestPutRequiresID(t *testing.T) {
	db := openTestDB(t)
	err := db.Put(reference.Reference{Type: reference.TypeJapaneseBook})
	assert.Error(t, err)
}

func TestListMigratesLegacyRecords(t *testing.T) {
	db := openTestDB(t)

	legacy := reference.Reference{
		ID:              "legacy-1",
		Type:            reference.TypeJapaneseBook,
		AuthorLastName:  "高橋",
		AuthorFirstName: "太郎",
		Title:           "音楽教育史",
	}
	require.NoError(t, db.Put(legacy))

	refs, err := db.List()
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Len(t, refs[0].Authors, 1)
	assert.Equal(t, "高橋", refs[0].Authors[0].LastName)
}

func TestListOrdersByCreation(t *testing.T) {
	db := openTestDB(t)

	for i, created := range []string{"2020-03-01T00:00:00Z", "2020-01-01T00:00:00Z", "2020-02-01T00:00:00Z"} {
		require.NoError(t, db.Put(reference.Reference{
			ID:        string(rune('a' + i)),
			Type:      reference.TypeJapaneseBook,
			CreatedAt: created,
		}))
	}

	refs, err := db.List()
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "b", refs[0].ID)
	assert.Equal(t, "c", refs[1].ID)
	assert.Equal(t, "a", refs[2].ID)
}
