package compose

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestComposite_NilLogoReturnsBaseUnchanged(t *testing.T) {
	// Arrange
	base := solidImage(200, 200, color.Black)

	// Act
	out := Composite(base, nil)

	// Assert: the exact same image, not a copy
	assert.Same(t, image.Image(base), out)
}

func TestComposite_CentersLogoTile(t *testing.T) {
	// Arrange
	base := solidImage(200, 200, color.Black)
	logo := solidImage(10, 10, color.RGBA{R: 255, A: 255})

	// Act
	out := Composite(base, logo)

	// Assert
	require.NotNil(t, out)
	assert.NotSame(t, image.Image(base), out)

	// Center of the 60x60 tile carries the logo color
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.At(100, 100))

	// Tile corners: inside the 60x60 region at (70,70)-(130,130)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.At(71, 71))

	// Outside the tile the base is untouched
	assert.Equal(t, color.RGBA{A: 255}, out.At(10, 10))
	assert.Equal(t, color.RGBA{A: 255}, out.At(69, 100))
	assert.Equal(t, color.RGBA{A: 255}, out.At(100, 131))
}

func TestComposite_TransparentLogoLeavesWhiteTile(t *testing.T) {
	// Arrange
	base := solidImage(200, 200, color.Black)
	logo := image.NewRGBA(image.Rect(0, 0, 10, 10)) // fully transparent

	// Act
	out := Composite(base, logo)

	// Assert: the opaque white backing tile occludes the modules behind it
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.At(100, 100))
	assert.Equal(t, color.RGBA{A: 255}, out.At(10, 10))
}

func TestComposite_DoesNotMutateBase(t *testing.T) {
	// Arrange
	base := solidImage(200, 200, color.Black)
	logo := solidImage(10, 10, color.RGBA{R: 255, A: 255})

	// Act
	Composite(base, logo)

	// Assert
	assert.Equal(t, color.RGBA{A: 255}, base.At(100, 100))
}
