package lsb

import (
	"fmt"

	"pixsteg/stegano/util"
)

// Cursor tracks the sampling step and the unit under construction for a
// single pass over a buffer. Each pass starts with a fresh one.
type Cursor struct {
	Step int
	acc  util.Accumulator
}

func NewCursor() *Cursor {
	return &Cursor{acc: util.NewAccumulator(UnitWidth)}
}

// Read extracts one bit from pixel and reports a unit once it is complete.
func (c *Cursor) Read(pixel uint32) (uint32, bool) {
	bit := ExtractBit(pixel, c.Step)
	c.Step++
	return c.acc.Push(bit)
}

// ReadLength decodes the character count stored in the first HeaderSamples
// pixels. The value is not validated here.
func ReadLength(buf *PixelBuffer) (uint64, error) {
	if buf.Len() < HeaderSamples {
		return 0, fmt.Errorf("%w: %d samples, header needs %d",
			ErrInsufficientData, buf.Len(), HeaderSamples)
	}
	var length uint64
	cur := NewCursor()
	position := 0
	for i := 0; i < HeaderSamples; i++ {
		if unit, ready := cur.Read(buf.Sample(i)); ready {
			length |= uint64(unit&0xff) << (8 * uint(position))
			position++
		}
	}
	return length, nil
}

// WriteLength stores length with the layout ReadLength expects.
func WriteLength(buf *PixelBuffer, length uint64) error {
	if buf.Len() < HeaderSamples {
		return fmt.Errorf("%w: %d samples, header needs %d",
			ErrInsufficientData, buf.Len(), HeaderSamples)
	}
	if length>>(8*LengthBytes) != 0 {
		return fmt.Errorf("%w: length %d overflows the header", ErrMessageTooLarge, length)
	}
	step := 0
	for k := 0; k < LengthBytes; k++ {
		unit := uint32(length>>(8*uint(k))) & 0xff
		for _, bit := range util.UnitBits(unit, UnitWidth) {
			buf.Set(step, EmbedBit(buf.Sample(step), step, bit))
			step++
		}
	}
	return nil
}
