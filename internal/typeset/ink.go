package typeset

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// luminance returns a grayscale copy of img.
func luminance(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// InkBounds is the smallest rectangle holding every pixel whose luminance
// differs from the top-left corner by more than threshold. An empty
// rectangle means the page is blank.
func InkBounds(img image.Image, threshold uint8) image.Rectangle {
	gray := luminance(img)
	b := gray.Bounds()
	if b.Empty() {
		return image.Rectangle{}
	}
	bg := int(gray.GrayAt(b.Min.X, b.Min.Y).Y)

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := int(gray.GrayAt(x, y).Y) - bg
			if d < 0 {
				d = -d
			}
			if d <= int(threshold) {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Glyph turns a rasterized formula page into a tinted, transparent image
// cropped to its ink plus pad pixels. Ink strength becomes alpha, so dark
// ink on a white page and light ink on a dark page both work.
func Glyph(img image.Image, tint gg.RGBA, pad int) *image.NRGBA {
	gray := luminance(img)
	bounds := InkBounds(gray, 24)
	if bounds.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	bounds = bounds.Inset(-pad).Intersect(gray.Bounds())
	bg := float64(gray.GrayAt(gray.Bounds().Min.X, gray.Bounds().Min.Y).Y)

	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	r, g, b := channel(tint.R), channel(tint.G), channel(tint.B)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ink := math.Abs(float64(gray.GrayAt(x, y).Y)-bg) / 255
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA{
				R: r, G: g, B: b,
				A: uint8(math.Round(ink * tint.A * 255)),
			})
		}
	}
	return out
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
