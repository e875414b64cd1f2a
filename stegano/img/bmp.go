package img

import (
	"bytes"
	"image"

	"golang.org/x/image/bmp"
)

// HideInBMP is the same as HideInPNG, just another lossless container.
func HideInBMP(m image.Image, message string) ([]byte, error) {
	rgba, err := EncodeWithLSB(m, message)
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	if err = bmp.Encode(out, rgba); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
