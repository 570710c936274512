package icons

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

func TestLoadDir(t *testing.T) {
	atlas, err := LoadDir("")
	require.NoError(t, err)
	assert.Same(t, Builtin(), atlas)

	_, err = LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "icons.png")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = LoadDir(file)
	assert.ErrorContains(t, err, "not a directory")

	_, err = LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestLoadDirGlyphs(t *testing.T) {
	dir := t.TempDir()
	for name, f := range glyphFS(t, "") {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), f.Data, 0o644))
	}

	atlas, err := LoadDir(dir)
	require.NoError(t, err)
	assert.NotSame(t, Builtin(), atlas)
	g, ok := atlas.Glyph(palette.GlyphNames[0])
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 8, 8), g.Bounds())
}
