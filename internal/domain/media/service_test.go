package media

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/database"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestStore(t *testing.T, maxBytes int64) (*Store, string) {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "media.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Image{}))

	dir := t.TempDir()
	return NewStore(NewRepository(db), dir, "/media/", maxBytes), dir
}

func dataURI(mime string, b []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

func TestStore_SaveWritesFileAndReturnsURL(t *testing.T) {
	store, dir := newTestStore(t, 1024)

	url, err := store.Save(context.Background(), 7, dataURI("image/png", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/images/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestStore_SavePassesThroughStoredReferences(t *testing.T) {
	store, _ := newTestStore(t, 1024)

	for _, raw := range []string{"", "/media/recipes/images/x.png", "https://cdn.example.com/a.jpg"} {
		url, err := store.Save(context.Background(), 1, raw)
		require.NoError(t, err)
		assert.Equal(t, raw, url)
	}
}

func TestStore_SaveRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t, 16)

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no base64 marker", "data:image/png," + base64.StdEncoding.EncodeToString(pngHeader), ErrMalformedImage},
		{"broken payload", "data:image/png;base64,@@@", ErrMalformedImage},
		{"not an image", dataURI("image/png", []byte("hello, world")), ErrImageType},
		{"too large", dataURI("image/png", append(append([]byte{}, pngHeader...), make([]byte, 64)...)), ErrImageTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Save(context.Background(), 1, tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStore_RemoveDeletesFile(t *testing.T) {
	store, dir := newTestStore(t, 1024)
	ctx := context.Background()

	url, err := store.Save(ctx, 7, dataURI("image/png", pngHeader))
	require.NoError(t, err)
	path := filepath.Join(dir, strings.TrimPrefix(url, "/media/"))

	require.NoError(t, store.Remove(ctx, url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Remove(ctx, url))
	require.NoError(t, store.Remove(ctx, "https://cdn.example.com/a.jpg"))
}
