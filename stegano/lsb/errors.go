package lsb

import (
	"errors"
	"fmt"
)

var (
	ErrImageDecode        = errors.New("cannot rasterize image")
	ErrInsufficientData   = errors.New("image is too small to carry a header")
	ErrInvalidHeader      = errors.New("invalid length header")
	ErrNoData             = errors.New("there is no data in image")
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrMessageTooLarge    = errors.New("message is too large for this image")
	// premultiplied samples lose their LSBs once the image is written out
	ErrTransparentCarrier = errors.New("carrier pixels are not opaque")
)

/*
 * HeaderError is returned when the declared length is zero or cannot be
 * spread over the remaining samples. An unusable header also means that the
 * image does not carry anything, so the error matches ErrNoData as well.
 */
type HeaderError struct {
	Length  uint64
	Samples int
}

func (e *HeaderError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("%s: declared length is zero", ErrInvalidHeader)
	}
	return fmt.Sprintf("%s: %d characters do not fit into %d samples",
		ErrInvalidHeader, e.Length, e.Samples)
}

func (e *HeaderError) Is(target error) bool {
	return target == ErrInvalidHeader || target == ErrNoData
}
