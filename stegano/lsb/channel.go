package lsb

func channelAt(step int) Channel {
	return ChannelOrder[step%len(ChannelOrder)]
}

func channelValue(pixel uint32, c Channel) uint8 {
	return uint8(pixel >> (BitsPerChannel * uint(c)))
}

// ExtractBit returns the least significant bit of the channel picked by step.
func ExtractBit(pixel uint32, step int) uint8 {
	return channelValue(pixel, channelAt(step)) & 1
}

// EmbedBit replaces the least significant bit of the channel picked by step,
// every other bit of the pixel stays untouched.
func EmbedBit(pixel uint32, step int, bit uint8) uint32 {
	shift := BitsPerChannel * uint(channelAt(step))
	return (pixel &^ (1 << shift)) | uint32(bit&1)<<shift
}
