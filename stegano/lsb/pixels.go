package lsb

import (
	"fmt"
	"image"
	"image/draw"
)

/*
 * PixelBuffer is a flat raster of packed pixels. Every value keeps the
 * channels as R<<24 | G<<16 | B<<8 | A, alpha premultiplied, so the layout
 * does not depend on the decoder the image came from.
 */
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewPixelBuffer renders img into a fresh buffer, img itself is left as is.
func NewPixelBuffer(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrImageDecode)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrImageDecode, bounds)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	buf := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		for x := 0; x < width; x++ {
			p := row[x*4 : x*4+4]
			buf.Pix[y*width+x] = uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
		}
	}
	return buf, nil
}

func (b *PixelBuffer) Len() int {
	return len(b.Pix)
}

func (b *PixelBuffer) Sample(i int) uint32 {
	return b.Pix[i]
}

func (b *PixelBuffer) Set(i int, pixel uint32) {
	b.Pix[i] = pixel
}

// RGBA commits the buffer back into an image.
func (b *PixelBuffer) RGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, pixel := range b.Pix {
		o := i * 4
		rgba.Pix[o] = uint8(pixel >> 24)
		rgba.Pix[o+1] = uint8(pixel >> 16)
		rgba.Pix[o+2] = uint8(pixel >> 8)
		rgba.Pix[o+3] = uint8(pixel)
	}
	return rgba
}
