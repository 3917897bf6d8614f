package images

import (
	"image"

	"golang.org/x/image/draw"
)

// Flatten composites img over an opaque white canvas with the same size.
// Transparent regions become white and every colour model is converted
// to RGB. The returned image is anchored at the origin.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)

	return dst
}
