package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slbstore/internal/models"
	"slbstore/internal/testutil"
)

func newTestFileManager(t *testing.T, path string) *FileManager {
	t.Helper()
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(comp.Close)
	return NewFileManager(path, comp, &testutil.MockLogger{})
}

func testImage() *models.Image {
	img := models.NewImage()
	img.Subscriptions[100] = models.SubscriptionOptions{
		NotificationType: models.NotificationTypeLaunch,
		LaunchMentions:   "@here",
	}
	img.NotificationSent = true
	img.PreviousSchedule = models.ScheduleSnapshot{
		"title": "Launch Schedule",
		"fields": []any{
			map[string]any{"name": "mission", "value": "CRS-21"},
		},
	}
	return img
}

func TestFileManager_Save_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := newTestFileManager(t, path)

	require.NoError(t, fm.Save(testImage()))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_Load_FileNotExist(t *testing.T) {
	fm := newTestFileManager(t, "/nonexistent/path/slbstore.dat")
	img, err := fm.Load()
	assert.NoError(t, err) // not an error, just no data
	assert.Nil(t, img)
}

func TestFileManager_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := newTestFileManager(t, path)

	require.NoError(t, fm.Save(testImage()))

	img, err := fm.Load()
	require.NoError(t, err)
	require.NotNil(t, img)

	assert.Equal(t, models.ImageVersion, img.Version)
	assert.True(t, img.NotificationSent)
	assert.Equal(t, models.NotificationTypeLaunch, img.Subscriptions[100].NotificationType)
	assert.Equal(t, "@here", img.Subscriptions[100].LaunchMentions)
	assert.Equal(t, "Launch Schedule", img.PreviousSchedule["title"])
	fields := img.PreviousSchedule["fields"].([]any)
	assert.Equal(t, "CRS-21", fields[0].(map[string]any)["value"])
}

func TestFileManager_Load_CorruptBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	require.NoError(t, os.WriteFile(path, []byte("not a persisted image"), 0o644))

	fm := newTestFileManager(t, path)
	_, err := fm.Load()
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestFileManager_Load_UnrecognizedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := newTestFileManager(t, path)

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()
	data, err := comp.Compress([]byte(`{"foo":1}`))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = fm.Load()
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestFileManager_Load_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := newTestFileManager(t, path)

	raw, err := json.Marshal(map[string]any{"version": 99})
	require.NoError(t, err)
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()
	data, err := comp.Compress(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = fm.Load()
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestFileManager_Load_MigratesLegacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := newTestFileManager(t, path)

	legacy := models.LegacyImage{
		Subscriptions: map[int64]models.SubscriptionOptions{
			200: {NotificationType: models.NotificationTypeSchedule, LaunchMentions: "@all"},
		},
		NotificationSent: true,
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()
	data, err := comp.Compress(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := fm.Load()
	require.NoError(t, err)
	assert.Equal(t, models.ImageVersion, img.Version)
	assert.True(t, img.NotificationSent)
	assert.Equal(t, "@all", img.Subscriptions[200].LaunchMentions)
	assert.NotNil(t, img.PreviousSchedule)
}

func TestFileManager_Save_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	fm := NewFileManager(path, &testutil.MockCompressor{FailCompress: true}, &testutil.MockLogger{})

	err := fm.Save(testImage())
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileManager_Load_DecompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slbstore.dat")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o644))

	fm := NewFileManager(path, &testutil.MockCompressor{FailDecompress: true}, &testutil.MockLogger{})
	_, err := fm.Load()
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestFileManager_Save_UnwritablePath(t *testing.T) {
	fm := newTestFileManager(t, "/nonexistent/dir/slbstore.dat")
	err := fm.Save(testImage())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrCorruptImage))
}
