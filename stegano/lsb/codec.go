package lsb

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"pixsteg/stegano/util"
)

// Encode hides message in buf. Only the least significant bit of the
// visited channels changes.
func Encode(buf *PixelBuffer, message string) error {
	if !utf8.ValidString(message) {
		return fmt.Errorf("%w: message is not valid UTF-8", ErrMalformedPayload)
	}
	if buf.Len() < HeaderSamples {
		return fmt.Errorf("%w: %d samples, header needs %d",
			ErrMessageTooLarge, buf.Len(), HeaderSamples)
	}
	wrapped := Wrap(message)
	length := uint64(len(wrapped))

	stride, err := Stride(buf.Len(), length)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMessageTooLarge, err.Error())
	}
	if err = checkOpaque(buf, stride, length*UnitWidth); err != nil {
		return err
	}
	if err = WriteLength(buf, length); err != nil {
		return err
	}

	step := 0
	position := HeaderSamples
	for i := 0; i < len(wrapped); i++ {
		for _, bit := range util.UnitBits(uint32(wrapped[i]), UnitWidth) {
			buf.Set(position, EmbedBit(buf.Sample(position), step, bit))
			step++
			position += stride
		}
	}
	return nil
}

// checkOpaque makes sure every sample Encode is going to touch is fully
// opaque.
func checkOpaque(buf *PixelBuffer, stride int, bits uint64) error {
	check := func(position int) error {
		if alpha := channelValue(buf.Sample(position), Alpha); alpha != 0xff {
			return fmt.Errorf("%w: sample %d has alpha %d", ErrTransparentCarrier, position, alpha)
		}
		return nil
	}
	for position := 0; position < HeaderSamples; position++ {
		if err := check(position); err != nil {
			return err
		}
	}
	position := HeaderSamples
	for i := uint64(0); i < bits; i++ {
		if err := check(position); err != nil {
			return err
		}
		position += stride
	}
	return nil
}

// Decode recovers the message hidden by Encode.
func Decode(buf *PixelBuffer) (string, error) {
	frame, err := Scan(buf)
	if err != nil {
		return "", err
	}
	return frame.Payload()
}

func HasData(buf *PixelBuffer) bool {
	frame, err := Scan(buf)
	if err != nil {
		return false
	}
	return frame.HasData()
}

// Capacity is the longest message, in bytes, Encode accepts for a buffer of
// the given number of samples.
func Capacity(samples int) int {
	chars := (samples - HeaderSamples) / UnitWidth
	chars -= len(StartMarker) + len(EndMarker)
	if chars <= 0 {
		return 0
	}
	// every 4 base64 characters carry 3 bytes
	return chars / 4 * 3
}

// IsNoData reports whether err means that the image simply carries nothing.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData) || errors.Is(err, ErrInsufficientData)
}
