package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pixsteg/config"
	"pixsteg/util"
)

func writeDecoy(t *testing.T, filename string, w, h int) {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, color.RGBA{uint8(x * 5), uint8(y * 3), uint8(x ^ y), 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, m); err != nil {
		t.Fatalf("Failed to encode decoy: %v", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write decoy: %v", err)
	}
}

func newTestApp(t *testing.T, folder string) (*app, *bytes.Buffer) {
	t.Helper()
	conf := config.DefaultConfig(folder)
	conf.Logger.Mode = util.Error | util.Warning | util.Info
	a, err := newApp(conf)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(a.Close)
	out := new(bytes.Buffer)
	a.stdout = out
	return a, out
}

func TestHideRevealCheck(t *testing.T) {
	folder := t.TempDir()
	decoy := filepath.Join(folder, "decoy.png")
	carrier := filepath.Join(folder, "carrier.png")
	writeDecoy(t, decoy, 64, 64)

	a, out := newTestApp(t, folder)
	assert.NoError(t, a.hide(decoy, carrier, "meet at noon", ""))
	assert.Equal(t, carrier+"\n", out.String())

	out.Reset()
	assert.NoError(t, a.reveal(carrier))
	assert.Equal(t, "meet at noon\n", out.String())

	out.Reset()
	assert.NoError(t, a.check(carrier))
	assert.NoError(t, a.check(decoy))
	assert.Equal(t, carrier+": contains data\n"+decoy+": no data\n", out.String())

	log, err := os.ReadFile(filepath.Join(folder, config.LogFilename))
	assert.NoError(t, err)
	assert.Contains(t, string(log), "[INFO]")
}

func TestRevealErrors(t *testing.T) {
	folder := t.TempDir()
	decoy := filepath.Join(folder, "decoy.png")
	writeDecoy(t, decoy, 64, 64)

	a, _ := newTestApp(t, folder)
	err := a.reveal(decoy)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "there is no data")
	}
	assert.Error(t, a.reveal(filepath.Join(folder, "missing.png")))
}

func TestHideFromStdinAndDecoyFolder(t *testing.T) {
	folder := t.TempDir()
	decoys := filepath.Join(folder, "decoys")
	os.Mkdir(decoys, 0700)
	writeDecoy(t, filepath.Join(decoys, "only.png"), 48, 48)

	a, out := newTestApp(t, folder)
	a.conf.StegConfig.Folder = decoys
	a.stdin = strings.NewReader("from stdin\n")

	assert.NoError(t, a.hide("", "", "", "bmp"))
	output := strings.TrimSpace(out.String())
	assert.True(t, strings.HasSuffix(output, ".bmp"), "unexpected output name %s", output)
	assert.Equal(t, decoys, filepath.Dir(output))

	out.Reset()
	assert.NoError(t, a.reveal(output))
	assert.Equal(t, "from stdin\n", out.String())
}

func TestHideWithoutDecoy(t *testing.T) {
	a, _ := newTestApp(t, t.TempDir())
	assert.Error(t, a.hide("", "", "message", ""))
	assert.Error(t, a.hide("x.png", "", "message", "tiff"))
}

func TestCapacityCommand(t *testing.T) {
	folder := t.TempDir()
	decoy := filepath.Join(folder, "decoy.png")
	writeDecoy(t, decoy, 64, 64)

	a, out := newTestApp(t, folder)
	assert.NoError(t, a.capacity(decoy, ""))
	assert.Equal(t, decoy+": 375 bytes\n", out.String())
}

func TestScanCommand(t *testing.T) {
	folder := t.TempDir()
	decoy := filepath.Join(folder, "a.png")
	writeDecoy(t, decoy, 64, 64)

	a, out := newTestApp(t, folder)
	assert.NoError(t, a.hide(decoy, filepath.Join(folder, "b.png"), "scan me", ""))
	data, _ := os.ReadFile(decoy)
	os.WriteFile(filepath.Join(folder, "c.png"), data, 0600)

	out.Reset()
	assert.NoError(t, a.scan(folder))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		filepath.Join(folder, "a.png") + ": no data",
		"\tsame as " + filepath.Join(folder, "c.png"),
		filepath.Join(folder, "b.png") + ": contains data",
		filepath.Join(folder, "c.png") + ": no data",
		"\tsame as " + filepath.Join(folder, "a.png"),
	}, lines)
}

func TestHistory(t *testing.T) {
	folder := t.TempDir()
	decoy := filepath.Join(folder, "decoy.png")
	carrier := filepath.Join(folder, "carrier.png")
	writeDecoy(t, decoy, 64, 64)

	conf := config.DefaultConfig(folder)
	conf.History.Enabled = true
	conf.History.DbPassword = "history-password"
	a, err := newApp(conf)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	defer a.Close()
	out := new(bytes.Buffer)
	a.stdout = out

	assert.NoError(t, a.hide(decoy, carrier, "remember me", ""))
	out.Reset()
	assert.NoError(t, a.check(carrier))
	assert.Contains(t, out.String(), "contains data")
	assert.Contains(t, out.String(), "\thide at ")
}
