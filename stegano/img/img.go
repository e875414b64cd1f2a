package img

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"

	"pixsteg/stegano/lsb"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatGIF  Format = "gif"
	FormatJPEG Format = "jpeg"

	DefaultJpegQuality = 90
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Options struct {
	Format         Format
	JpegQuality    int
	PngCompression png.CompressionLevel
}

/*
 * output picks the carrier format. LSB carriers must be written losslessly,
 * so a gif decoy (palette quantization) becomes a png. A jpeg decoy keeps
 * its format and hides the frame in DCT coefficients instead.
 */
func (o Options) output(decoy Format) Format {
	switch o.Format {
	case FormatPNG, FormatBMP, FormatJPEG:
		return o.Format
	}
	if decoy == FormatGIF {
		return FormatPNG
	}
	return decoy
}

func (o Options) quality() int {
	if o.JpegQuality < 1 || o.JpegQuality > 100 {
		return DefaultJpegQuality
	}
	return o.JpegQuality
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatPNG, FormatBMP, FormatJPEG:
		return Format(s), nil
	case "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Sniff detects the image format by its magic bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, []byte("GIF8")):
		return FormatGIF, nil
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG, nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG, nil
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP, nil
	}
	return "", ErrUnsupportedFormat
}

// Load decodes any supported image.
func Load(data []byte) (image.Image, Format, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, "", err
	}
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s", lsb.ErrImageDecode, err.Error())
	}
	return m, format, nil
}

// Hide embeds message into decoy and returns the encoded carrier.
func Hide(decoy []byte, message string, opts Options) ([]byte, Format, error) {
	m, format, err := Load(decoy)
	if err != nil {
		return nil, "", err
	}
	out := opts.output(format)
	var result []byte
	switch out {
	case FormatJPEG:
		result, err = HideInJpeg(m, message, opts.quality())
	case FormatBMP:
		result, err = HideInBMP(m, message)
	default:
		result, err = HideInPNG(m, message, opts.PngCompression)
	}
	if err != nil {
		return nil, out, err
	}
	return result, out, nil
}

// Reveal returns the message hidden in data.
func Reveal(data []byte) (string, error) {
	format, err := Sniff(data)
	if err != nil {
		return "", err
	}
	if format == FormatJPEG {
		return RevealFromJpeg(data)
	}
	m, _, err := Load(data)
	if err != nil {
		return "", err
	}
	return DecodeFromLSB(m)
}

// Check reports whether data carries a message at all.
func Check(data []byte) bool {
	format, err := Sniff(data)
	if err != nil {
		return false
	}
	if format == FormatJPEG {
		frame, err := jpegFrame(data)
		return err == nil && frame.HasData()
	}
	m, _, err := Load(data)
	if err != nil {
		return false
	}
	buf, err := lsb.NewPixelBuffer(m)
	if err != nil {
		return false
	}
	return lsb.HasData(buf)
}

// Capacity reports how many message bytes data can carry in the given
// output format.
func Capacity(data []byte, opts Options) (int, error) {
	m, format, err := Load(data)
	if err != nil {
		return 0, err
	}
	if opts.output(format) == FormatJPEG {
		return jpegCapacity(m, opts.quality()), nil
	}
	b := m.Bounds()
	return lsb.Capacity(b.Dx() * b.Dy()), nil
}
