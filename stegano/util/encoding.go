package util

/*
 * transform units from/to their bit form.
 * bits always travel most-significant first.
 */

// Accumulator assembles fixed-width units from single bits.
type Accumulator struct {
	width     int
	countdown int
	unit      uint32
}

func NewAccumulator(width int) Accumulator {
	return Accumulator{
		width:     width,
		countdown: width - 1,
	}
}

// Push inserts bit at the current countdown position. Once the last bit of a
// unit arrives the unit is returned with ready set and the accumulator starts
// over.
func (a *Accumulator) Push(bit uint8) (uint32, bool) {
	a.unit |= uint32(bit&1) << uint(a.countdown)
	a.countdown--
	if a.countdown >= 0 {
		return 0, false
	}
	unit := a.unit
	a.unit = 0
	a.countdown = a.width - 1
	return unit, true
}

// pending reports how many bits the unit under construction still needs.
func (a *Accumulator) pending() int {
	return a.countdown + 1
}

func UnitBits(unit uint32, width int) []uint8 {
	result := make([]uint8, width)
	for i := 0; i < width; i++ {
		result[i] = uint8((unit >> uint(width-1-i)) & 1)
	}
	return result
}
