package filesystem

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, afero.WriteFile(fs, testFile, []byte("hello world"), 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size())
}

func TestWriteFileAtomic(t *testing.T) {
	fs := NewMemory()
	target := "/root/versions/1.12.2/1.12.2.json"

	require.NoError(t, WriteFileAtomic(fs, target, []byte(`{"id":"1.12.2"}`), 0644))
	require.NoError(t, WriteFileAtomic(fs, target, []byte(`{"id":"1.12.3"}`), 0644))

	content, err := afero.ReadFile(fs, target)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1.12.3"}`, string(content))

	entries, err := afero.ReadDir(fs, "/root/versions/1.12.2")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should remain")
}

func TestPlaceFile(t *testing.T) {
	t.Run("copies into missing destination", func(t *testing.T) {
		fs := NewMemory()
		require.NoError(t, afero.WriteFile(fs, "/objects/ab/abcd", []byte("data"), 0644))

		placed, err := PlaceFile(fs, "/objects/ab/abcd", "/virtual/legacy/sound/a.ogg", 4, LinkCopy)
		require.NoError(t, err)
		assert.True(t, placed)

		content, err := afero.ReadFile(fs, "/virtual/legacy/sound/a.ogg")
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))
	})

	t.Run("skips destination with matching size", func(t *testing.T) {
		fs := NewMemory()
		require.NoError(t, afero.WriteFile(fs, "/src", []byte("data"), 0644))
		require.NoError(t, afero.WriteFile(fs, "/dst", []byte("DATA"), 0644))

		placed, err := PlaceFile(fs, "/src", "/dst", 4, LinkCopy)
		require.NoError(t, err)
		assert.False(t, placed)

		content, _ := afero.ReadFile(fs, "/dst")
		assert.Equal(t, "DATA", string(content))
	})

	t.Run("replaces destination with wrong size", func(t *testing.T) {
		fs := NewMemory()
		require.NoError(t, afero.WriteFile(fs, "/src", []byte("data"), 0644))
		require.NoError(t, afero.WriteFile(fs, "/dst", []byte("truncated-and-wrong"), 0644))

		placed, err := PlaceFile(fs, "/src", "/dst", 4, LinkCopy)
		require.NoError(t, err)
		assert.True(t, placed)

		content, _ := afero.ReadFile(fs, "/dst")
		assert.Equal(t, "data", string(content))
	})

	t.Run("missing source fails", func(t *testing.T) {
		fs := NewMemory()
		_, err := PlaceFile(fs, "/nope", "/dst", 4, LinkCopy)
		require.Error(t, err)

		exists, _ := afero.Exists(fs, "/dst")
		assert.False(t, exists)
	})

	t.Run("hard links on the OS filesystem", func(t *testing.T) {
		fs := NewOS()
		dir := t.TempDir()
		src := filepath.Join(dir, "objects", "src")
		dst := filepath.Join(dir, "virtual", "dst")
		require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
		require.NoError(t, os.WriteFile(src, []byte("data"), 0644))

		_, err := PlaceFile(fs, src, dst, 4, LinkHard)
		require.NoError(t, err)

		srcInfo, err := os.Stat(src)
		require.NoError(t, err)
		dstInfo, err := os.Stat(dst)
		require.NoError(t, err)
		assert.True(t, os.SameFile(srcInfo, dstInfo))
	})

	t.Run("concurrent placement of the same entry", func(t *testing.T) {
		fs := NewOS()
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "mirror", "dst")
		require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := PlaceFile(fs, src, dst, 7, LinkCopy)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))

		entries, err := os.ReadDir(filepath.Dir(dst))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestReplaceFile(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/objects/src", []byte("fresh"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/mirror/dst", []byte("stale"), 0644))

	require.NoError(t, ReplaceFile(fs, "/objects/src", "/mirror/dst", LinkCopy))

	data, err := afero.ReadFile(fs, "/mirror/dst")
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))

	entries, err := afero.ReadDir(fs, "/mirror")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}
