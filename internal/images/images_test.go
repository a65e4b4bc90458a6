package images

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmbp/sitedeck/internal/db"
	"github.com/cmbp/sitedeck/internal/storage"
)

type fakeUploader struct {
	keys   []string
	failOn string
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if f.failOn != "" && strings.HasSuffix(key, f.failOn) {
		return "", errors.New("upload rejected")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
}

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "images.db")))
	t.Cleanup(func() {
		require.NoError(t, db.Close())
		db.DB = nil
	})
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not really pixels"), 0644))
	return path
}

func TestUploadForTask(t *testing.T) {
	initTestDB(t)
	dir := t.TempDir()
	uploader := &fakeUploader{}
	svc := NewService(uploader)

	results := svc.UploadForTask(context.Background(), "Paint bedroom", []string{
		writeImage(t, dir, "before.png"),
		writeImage(t, dir, "after.jpg"),
	})

	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.NotEmpty(t, r.URL)
	}
	require.Len(t, uploader.keys, 2)
	assert.True(t, strings.HasPrefix(uploader.keys[0], "Paint bedroom_"))

	records, err := svc.Gallery("Paint bedroom")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, results[0].URL, records[0].ImageURL)
	assert.Equal(t, results[1].URL, records[1].ImageURL)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	initTestDB(t)
	dir := t.TempDir()
	uploader := &fakeUploader{}
	svc := NewService(uploader)

	results := svc.UploadForTask(context.Background(), "Paint bedroom", []string{
		writeImage(t, dir, "notes.txt"),
	})

	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Empty(t, uploader.keys, "nothing should reach storage")

	records, err := svc.Gallery("Paint bedroom")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUploadMissingFile(t *testing.T) {
	initTestDB(t)
	svc := NewService(&fakeUploader{})

	results := svc.UploadForTask(context.Background(), "Paint bedroom", []string{
		filepath.Join(t.TempDir(), "absent.png"),
	})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestUploadWithoutUploaderConfigured(t *testing.T) {
	initTestDB(t)
	dir := t.TempDir()
	svc := NewService(nil)

	results := svc.UploadForTask(context.Background(), "Paint bedroom", []string{
		writeImage(t, dir, "wall.png"),
	})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, storage.ErrNotConfigured)
}

func TestUploadFailureSkipsRecordAndBatchContinues(t *testing.T) {
	initTestDB(t)
	dir := t.TempDir()
	uploader := &fakeUploader{failOn: "bad.png"}
	svc := NewService(uploader)

	results := svc.UploadForTask(context.Background(), "Paint bedroom", []string{
		writeImage(t, dir, "bad.png"),
		writeImage(t, dir, "good.png"),
	})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)

	records, err := svc.Gallery("Paint bedroom")
	require.NoError(t, err)
	require.Len(t, records, 1, "only the successful upload gets a record")
	assert.Equal(t, results[1].URL, records[0].ImageURL)
}
