package img

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"lukechampine.com/jsteg"

	"pixsteg/stegano/lsb"
)

/*
 * Pixel LSBs do not survive jpeg quantization, so jpeg carriers keep the
 * same framed text ("<m>" + base64 + "</m>") in the DCT coefficients.
 */
func HideInJpeg(m image.Image, message string, quality int) ([]byte, error) {
	wrapped := lsb.Wrap(message)
	opts := &jpeg.Options{Quality: quality}
	if capacity := jsteg.Capacity(m, opts); capacity < len(wrapped) {
		return nil, fmt.Errorf("%w: not enough space to embed data (%d < %d)",
			lsb.ErrMessageTooLarge, capacity, len(wrapped))
	}
	out := new(bytes.Buffer)
	if err := jsteg.Hide(out, m, []byte(wrapped), opts); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func jpegFrame(data []byte) (*lsb.Frame, error) {
	hidden, err := jsteg.Reveal(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", lsb.ErrImageDecode, err.Error())
	}
	return lsb.ParseFrame(hidden), nil
}

func RevealFromJpeg(data []byte) (string, error) {
	frame, err := jpegFrame(data)
	if err != nil {
		return "", err
	}
	return frame.Payload()
}

func jpegCapacity(m image.Image, quality int) int {
	chars := jsteg.Capacity(m, &jpeg.Options{Quality: quality})
	chars -= len(lsb.StartMarker) + len(lsb.EndMarker)
	if chars <= 0 {
		return 0
	}
	return chars / 4 * 3
}
