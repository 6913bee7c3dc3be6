package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, 4))
	img.SetGray(0, 0, color.Gray{Y: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestImageSourceSortsByName(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "02.png"), 20)
	writeTestPNG(t, filepath.Join(dir, "01.png"), 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	src, err := Open(dir)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 2, src.PageCount())
	img, err := src.RenderPage(0, 150)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	_, err = src.RenderPage(2, 150)
	assert.Error(t, err)
}

func TestImageSourceNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "10_eigen.png"), 30)
	writeTestPNG(t, filepath.Join(dir, "2_energy.png"), 20)

	src, err := NewImageSource(dir)
	require.NoError(t, err)
	img, err := src.RenderPage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestNaturalCompare(t *testing.T) {
	assert.Negative(t, naturalCompare("dir/2.png", "dir/10.png"))
	assert.Positive(t, naturalCompare("b.png", "a.png"))
	assert.Negative(t, naturalCompare("01.png", "02.png"))
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
