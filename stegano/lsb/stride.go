package lsb

/*
 * Stride spreads length characters evenly over the samples that follow the
 * header: floor((total - HeaderSamples) / (length * UnitWidth)), a single
 * integer division.
 */
func Stride(totalSamples int, length uint64) (int, error) {
	remaining := totalSamples - HeaderSamples
	if length == 0 || remaining <= 0 {
		return 0, &HeaderError{Length: length, Samples: remaining}
	}
	// compare before multiplying so a huge declared length cannot wrap
	if length > uint64(remaining)/UnitWidth {
		return 0, &HeaderError{Length: length, Samples: remaining}
	}
	return int(uint64(remaining) / (length * UnitWidth)), nil
}
