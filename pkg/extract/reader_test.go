package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInlineContent(t *testing.T) {
	data, err := resolve(ContentItem{Content: "flex underline"})
	require.NoError(t, err)
	assert.Equal(t, []byte("flex underline"), data)
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte(`<div class="p-4">`), 0644))

	data, err := resolve(ContentItem{Path: path})
	require.NoError(t, err)
	assert.Equal(t, []byte(`<div class="p-4">`), data)
}

func TestResolveEmptyItem(t *testing.T) {
	// Neither field populated: an empty buffer, not an error.
	data, err := resolve(ContentItem{})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestResolveMissingFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.html")

	_, err := resolve(ContentItem{Path: path})
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.Contains(t, err.Error(), path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadAllMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	items := make([]ContentItem, 0, 8)
	for i, content := range []string{"flex", "grid", "p-4", "m-2"} {
		path := filepath.Join(dir, "file"+string(rune('a'+i))+".html")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		items = append(items, ContentItem{Path: path})
	}
	items = append(items,
		ContentItem{Content: "inline-block"},
		ContentItem{},
	)

	sequential, err := readAllSync(items)
	require.NoError(t, err)

	parallel, err := readAll(items)
	require.NoError(t, err)

	// Buffers keep item order regardless of read scheduling.
	require.Equal(t, len(sequential), len(parallel))
	for i := range sequential {
		assert.Equal(t, sequential[i], parallel[i], "buffer %d", i)
	}
}

func TestReadAllFailsFast(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.html")
	require.NoError(t, os.WriteFile(good, []byte("flex"), 0644))
	missing := filepath.Join(dir, "missing.html")

	items := []ContentItem{{Path: good}, {Path: missing}, {Content: "grid"}}

	for name, read := range map[string]func([]ContentItem) ([][]byte, error){
		"sync":     readAllSync,
		"parallel": readAll,
	} {
		t.Run(name, func(t *testing.T) {
			buffers, err := read(items)
			require.Error(t, err)
			assert.Nil(t, buffers)

			var readErr *ReadError
			require.ErrorAs(t, err, &readErr)
			assert.Equal(t, missing, readErr.Path)
		})
	}
}
