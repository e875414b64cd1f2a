package lsb

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"pixsteg/stegano/util"
)

// Frame is the text recovered from a carrier, one byte per decoded unit.
type Frame struct {
	text     []byte
	hasStart bool
	hasEnd   bool
}

// Wrap returns the framed form of message as it is written into images.
func Wrap(message string) string {
	return StartMarker + base64.StdEncoding.EncodeToString([]byte(message)) + EndMarker
}

// ParseFrame builds a frame from already recovered text.
func ParseFrame(text []byte) *Frame {
	return &Frame{
		text:     text,
		hasStart: util.ContainsFold(text, []byte(StartMarker)),
		hasEnd:   util.ContainsFold(text, []byte(EndMarker)),
	}
}

// append adds one unit. Every marker occurrence ends at some appended unit,
// so looking at the suffix is enough to notice it.
func (f *Frame) append(unit uint32) {
	f.text = append(f.text, byte(unit))
	if !f.hasStart && util.HasSuffixFold(f.text, []byte(StartMarker)) {
		f.hasStart = true
	}
	if !f.hasEnd && util.HasSuffixFold(f.text, []byte(EndMarker)) {
		f.hasEnd = true
	}
}

func (f *Frame) complete() bool {
	return f.hasStart && f.hasEnd
}

func (f *Frame) HasData() bool {
	return len(f.text) > 0 && f.complete()
}

// Payload returns the message carried between the markers.
func (f *Frame) Payload() (string, error) {
	if !f.HasData() {
		return "", ErrNoData
	}
	start := util.IndexFold(f.text, []byte(StartMarker)) + len(StartMarker)
	end := util.IndexFold(f.text[start:], []byte(EndMarker))
	if end < 0 {
		return "", fmt.Errorf("%w: end marker precedes start marker", ErrMalformedPayload)
	}
	data, err := base64.StdEncoding.DecodeString(string(f.text[start : start+end]))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedPayload)
	}
	return string(data), nil
}

/*
 * Scan reads the header, derives the stride and collects payload units until
 * both markers show up, the declared length is exhausted or the next position
 * would fall outside the buffer. Reaching the end without markers is not an
 * error here, the returned frame simply has no data.
 */
func Scan(buf *PixelBuffer) (*Frame, error) {
	length, err := ReadLength(buf)
	if err != nil {
		return nil, err
	}
	stride, err := Stride(buf.Len(), length)
	if err != nil {
		return nil, err
	}
	frame := &Frame{text: make([]byte, 0, length)}
	cur := NewCursor()
	for position := HeaderSamples; position < buf.Len() && uint64(len(frame.text)) < length; position += stride {
		unit, ready := cur.Read(buf.Sample(position))
		if !ready {
			continue
		}
		frame.append(unit)
		if frame.complete() {
			break
		}
	}
	return frame, nil
}
