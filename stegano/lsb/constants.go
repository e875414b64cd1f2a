package lsb

// Channel is the byte offset of a color component inside a packed pixel,
// counted from the least significant byte.
type Channel uint8

const (
	Alpha Channel = 0
	Blue  Channel = 1
	Green Channel = 2
	Red   Channel = 3
)

const (
	BitsPerChannel = 8
	// one payload character or one length byte per unit
	UnitWidth = 8
	// bytes of the character count stored in front of the payload
	LengthBytes   = 4
	HeaderSamples = LengthBytes * UnitWidth

	StartMarker = "<m>"
	EndMarker   = "</m>"
)

// channels are visited cyclically in this order, alpha is never touched.
var ChannelOrder = [...]Channel{Red, Green, Blue}
