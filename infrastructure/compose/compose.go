package compose

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// tileSize is the fixed logo footprint in pixels, independent of the base
// image resolution. The visual logo-to-code ratio therefore varies with code
// density.
const tileSize = 60

// Composite overlays a resolved logo onto a base code image. The logo is
// scaled onto an opaque white 60x60 tile first, so the modules directly
// behind it are fully occluded regardless of logo alpha, then the tile is
// pasted centered. A nil logo returns the base unchanged.
func Composite(base image.Image, logo image.Image) image.Image {
	if logo == nil {
		return base
	}

	tile := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.ApproxBiLinear.Scale(tile, tile.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)

	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)

	// Centered placement, floor division; never clips for any base >= 60x60
	x := bounds.Min.X + (bounds.Dx()-tileSize)/2
	y := bounds.Min.Y + (bounds.Dy()-tileSize)/2
	draw.Draw(out, image.Rect(x, y, x+tileSize, y+tileSize), tile, image.Point{}, draw.Src)

	return out
}
