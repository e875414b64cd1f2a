package img

import (
	"bytes"
	"image"
	"image/png"

	"pixsteg/stegano/lsb"
)

// EncodeWithLSB rasterizes m and hides message in its channel LSBs.
func EncodeWithLSB(m image.Image, message string) (*image.RGBA, error) {
	buf, err := lsb.NewPixelBuffer(m)
	if err != nil {
		return nil, err
	}
	if err = lsb.Encode(buf, message); err != nil {
		return nil, err
	}
	return buf.RGBA(), nil
}

func DecodeFromLSB(m image.Image) (string, error) {
	buf, err := lsb.NewPixelBuffer(m)
	if err != nil {
		return "", err
	}
	return lsb.Decode(buf)
}

func HideInPNG(m image.Image, message string, level png.CompressionLevel) ([]byte, error) {
	rgba, err := EncodeWithLSB(m, message)
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	enc := png.Encoder{CompressionLevel: level}
	if err = enc.Encode(out, rgba); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
