package blob_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog/internal/blob"
)

func TestFileStorePutGet(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	assert.NoError(t, store.Put("photo.jpg", payload))

	data, err := store.Get("photo.jpg")
	assert.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Get("missing.png")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	assert.Error(t, store.Put("../escape.png", []byte("x")))
	_, err = store.Get("a/b.png")
	assert.Error(t, err)
}
