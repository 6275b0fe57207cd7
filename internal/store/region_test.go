package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eeprom.bin")

	region, err := NewFileRegion(path, 512)
	require.NoError(t, err)

	image, err := region.Read()
	require.NoError(t, err)
	require.Len(t, image, 512)
	assert.Equal(t, byte(0xFF), image[0])

	image[0] = '#'
	require.NoError(t, region.Commit(image))

	reopened, err := NewFileRegion(path, 512)
	require.NoError(t, err)
	image, err = reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, byte('#'), image[0])

	assert.Error(t, region.Commit(make([]byte, 10)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRegionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	region, err := NewFileRegion(path, 1024)
	require.NoError(t, err)

	s, err := New(region, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleConfig()))

	region2, err := NewFileRegion(path, 1024)
	require.NoError(t, err)
	s2, err := New(region2, testLogger())
	require.NoError(t, err)

	cfg, err := s2.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleConfig(), cfg)
}

func TestBadgerRegion(t *testing.T) {
	dir := t.TempDir()

	region, err := NewBadgerRegion(dir, 1024, testLogger())
	require.NoError(t, err)

	s, err := New(region, testLogger())
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(sampleConfig()))
	require.NoError(t, region.Close())

	region, err = NewBadgerRegion(dir, 1024, testLogger())
	require.NoError(t, err)
	defer region.Close()

	s, err = New(region, testLogger())
	require.NoError(t, err)

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleConfig(), cfg)
}

func TestMemoryRegionRejectsWrongSize(t *testing.T) {
	region := NewMemoryRegion(16)
	assert.Error(t, region.Commit(make([]byte, 8)))
	assert.Equal(t, 16, region.Size())
}
