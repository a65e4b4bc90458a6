package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "images.db")))
	t.Cleanup(func() {
		require.NoError(t, Close())
		DB = nil
	})
}

func TestSaveAndLoadImageRecords(t *testing.T) {
	initTestDB(t)

	first, err := SaveImageRecord("Paint bedroom", "https://bucket.s3.us-east-1.amazonaws.com/a.png")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.UploadedAt.IsZero())

	_, err = SaveImageRecord("Paint bedroom", "https://bucket.s3.us-east-1.amazonaws.com/b.png")
	require.NoError(t, err)
	_, err = SaveImageRecord("Lay parquet", "https://bucket.s3.us-east-1.amazonaws.com/c.png")
	require.NoError(t, err)

	records, err := ImagesForTask("Paint bedroom")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/a.png", records[0].ImageURL)
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/b.png", records[1].ImageURL)

	other, err := ImagesForTask("Lay parquet")
	require.NoError(t, err)
	require.Len(t, other, 1)
}

func TestImagesForUnknownTask(t *testing.T) {
	initTestDB(t)

	records, err := ImagesForTask("Never uploaded")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCountImages(t *testing.T) {
	initTestDB(t)

	count, err := CountImages()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = SaveImageRecord("Paint bedroom", "https://bucket.s3.us-east-1.amazonaws.com/a.png")
	require.NoError(t, err)

	count, err = CountImages()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
