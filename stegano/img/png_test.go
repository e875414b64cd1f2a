package img

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pixsteg/stegano/lsb"
)

func makeTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, m image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, m); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

var messages = []string{
	"",
	"hi",
	"Hello world!",
	"Сообщение с юникодом ✓",
	strings.Repeat("a", 250),
}

func TestPNG(t *testing.T) {
	decoy := encodePNG(t, makeTestImage(64, 64))
	for _, message := range messages {
		enc, format, err := Hide(decoy, message, Options{})
		if err != nil {
			t.Errorf("Failed to encode data: %v", err)
			continue
		}
		assert.Equal(t, FormatPNG, format)
		dec, err := Reveal(enc)
		if err != nil {
			t.Errorf("Failed to extract data: %v", err)
		} else if dec != message {
			t.Errorf("Steganography spoiled the data. %q != %q", message, dec)
		}
		assert.True(t, Check(enc))
	}
	assert.False(t, Check(decoy))
}

func TestPNGTooSmall(t *testing.T) {
	decoy := encodePNG(t, makeTestImage(8, 8))
	_, _, err := Hide(decoy, "this will not fit into 64 pixels", Options{})
	assert.True(t, errors.Is(err, lsb.ErrMessageTooLarge), "unexpected error: %v", err)
}

func TestRevealPlainPNG(t *testing.T) {
	_, err := Reveal(encodePNG(t, makeTestImage(64, 64)))
	assert.True(t, errors.Is(err, lsb.ErrNoData), "unexpected error: %v", err)
}

func makeNRGBA(w, h int, alpha func(x, y int) uint8) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 5), B: 200, A: alpha(x, y)})
		}
	}
	return m
}

func TestTransparentDecoy(t *testing.T) {
	halfClear := makeNRGBA(64, 64, func(x, y int) uint8 {
		if x < 32 {
			return 0
		}
		return 255
	})
	for _, format := range []Format{FormatPNG, FormatBMP} {
		_, _, err := Hide(encodePNG(t, halfClear), "hi", Options{Format: format})
		assert.True(t, errors.Is(err, lsb.ErrTransparentCarrier), "%s: unexpected error: %v", format, err)
	}

	// only the last pixel is clear and "hi" never reaches it
	corner := makeNRGBA(64, 64, func(x, y int) uint8 {
		if x == 63 && y == 63 {
			return 0
		}
		return 255
	})
	enc, _, err := Hide(encodePNG(t, corner), "hi", Options{})
	assert.NoError(t, err)
	dec, err := Reveal(enc)
	assert.NoError(t, err)
	assert.Equal(t, "hi", dec)
}

func TestGIFBecomesPNG(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := gif.Encode(buf, makeTestImage(64, 64), nil); err != nil {
		t.Fatalf("Failed to encode gif: %v", err)
	}
	enc, format, err := Hide(buf.Bytes(), "from a gif", Options{})
	assert.NoError(t, err)
	assert.Equal(t, FormatPNG, format)

	got, err := Sniff(enc)
	assert.NoError(t, err)
	assert.Equal(t, FormatPNG, got)

	dec, err := Reveal(enc)
	assert.NoError(t, err)
	assert.Equal(t, "from a gif", dec)
}

func TestSniff(t *testing.T) {
	tests := []struct {
		data   []byte
		format Format
	}{
		{[]byte("\x89PNG\r\n\x1a\n...."), FormatPNG},
		{[]byte("GIF89a"), FormatGIF},
		{[]byte{0xff, 0xd8, 0xff, 0xe0}, FormatJPEG},
		{[]byte("BM...."), FormatBMP},
	}
	for _, tc := range tests {
		format, err := Sniff(tc.data)
		assert.NoError(t, err)
		assert.Equal(t, tc.format, format)
	}
	for _, data := range [][]byte{nil, {}, {0x89}, []byte("plain text")} {
		_, err := Sniff(data)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		_, err = Reveal(data)
		assert.Error(t, err)
		assert.False(t, Check(data))
	}
}

func TestLoadBroken(t *testing.T) {
	_, _, err := Load([]byte("\x89PNG\r\n\x1a\ngarbage"))
	assert.True(t, errors.Is(err, lsb.ErrImageDecode), "unexpected error: %v", err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":     FormatAuto,
		"auto": FormatAuto,
		"png":  FormatPNG,
		"bmp":  FormatBMP,
		"jpg":  FormatJPEG,
		"jpeg": FormatJPEG,
	}
	for s, want := range tests {
		got, err := ParseFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestCapacity(t *testing.T) {
	decoy := encodePNG(t, makeTestImage(64, 64))
	capacity, err := Capacity(decoy, Options{})
	assert.NoError(t, err)
	assert.Equal(t, lsb.Capacity(64*64), capacity)

	_, _, err = Hide(decoy, strings.Repeat("z", capacity), Options{})
	assert.NoError(t, err)
}
