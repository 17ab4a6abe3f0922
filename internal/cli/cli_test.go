package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-unshred/internal/unshred"
)

// gradientPNG writes a w x h image whose colors change steadily from left to
// right and returns its path.
func gradientPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(3 * x), G: uint8(255 - 3*x), B: uint8(y * 16), A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// execute runs the CLI with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IMAGE_UNSHRED_CONFIG", "")
	t.Setenv("IMAGE_UNSHRED_STRIP_WIDTH", "")
	t.Setenv("IMAGE_UNSHRED_LOG_LEVEL", "")

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShredThenUnshred_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "gradient.png", 48, 6)
	shredded := filepath.Join(dir, "mixed.png")
	fixed := filepath.Join(dir, "fixed.png")

	_, err := execute(t, "shred", "--seed", "3", "--out", shredded, src, "8")
	require.NoError(t, err)
	require.FileExists(t, shredded)

	out, err := execute(t, "unshred", "--width", "8", "--out", fixed, shredded)
	require.NoError(t, err)
	assert.Contains(t, out, "Strip width: 8px (given)")

	out, err = execute(t, "compare", "--strip-width", "8", src, fixed)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Identical") || strings.HasPrefix(out, "Mirrored"), out)
}

func TestUnshred_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "photo.png", 16, 4)

	_, err := execute(t, "unshred", "--width", "4", src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "photo.reconstructed.png"))
}

func TestUnshred_JPEGWritesLosslessPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	img := image.NewNRGBA(image.Rect(0, 0, 32, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(7 * x), G: uint8(200 - 5*x), B: uint8(y * 20), A: 255})
		}
	}
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
	require.NoError(t, f.Close())

	_, err = execute(t, "unshred", "--width", "8", src)
	require.NoError(t, err)

	out := filepath.Join(dir, "photo.reconstructed.png")
	require.FileExists(t, out)
	assert.NoFileExists(t, filepath.Join(dir, "photo.reconstructed.jpg"))

	// The written PNG must hold exactly the composited pixels.
	decoded, err := loadImage(src)
	require.NoError(t, err)
	want, err := unshred.Reconstruct(decoded, unshred.Options{StripWidth: 8})
	require.NoError(t, err)

	wf, err := os.Open(out)
	require.NoError(t, err)
	defer wf.Close()
	got, err := png.Decode(wf)
	require.NoError(t, err)

	require.Equal(t, want.Image.Bounds(), got.Bounds())
	for y := 0; y < got.Bounds().Dy(); y++ {
		for x := 0; x < got.Bounds().Dx(); x++ {
			w := color.NRGBAModel.Convert(want.Image.At(x, y))
			g := color.NRGBAModel.Convert(got.At(x, y))
			require.Equal(t, w, g, "pixel (%d,%d)", x, y)
		}
	}
}

func TestUnshred_IndivisibleWidthExitCode(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "ten.png", 10, 2)

	_, err := execute(t, "unshred", "--width", "3", src)
	require.Error(t, err)
	assert.Equal(t, ExitReconstructionFailed, ExitCodeOf(err))
	assert.Contains(t, err.Error(), "does not divide")
	assert.NoFileExists(t, filepath.Join(dir, "ten.reconstructed.png"))
}

func TestUnshred_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "g.png", 24, 4)

	out, err := execute(t, "unshred", "--json", "--width", "6", src)
	require.NoError(t, err)

	var got struct {
		StripWidth int   `json:"strip_width"`
		Order      []int `json:"order"`
		Detected   bool  `json:"detected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.StripWidth)
	assert.Len(t, got.Order, 4)
	assert.False(t, got.Detected)
}

func TestDetect_ReportsWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.png")
	img := image.NewNRGBA(image.Rect(0, 0, 12, 3))
	bars := []color.NRGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	for y := 0; y < 3; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, bars[x/4])
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := execute(t, "detect", "--json", path)
	require.NoError(t, err)

	var got struct {
		Width    int  `json:"width"`
		Strips   int  `json:"strips"`
		Fallback bool `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 3, got.Strips)
	assert.False(t, got.Fallback)
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "g.png", 16, 2)

	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"unshred"}},
		{"bad shred width", []string{"shred", src, "abc"}},
		{"negative width", []string{"unshred", "--width", "-4", src}},
		{"unknown flag", []string{"unshred", "--bogus", src}},
		{"unsupported format", []string{"unshred", filepath.Join(dir, "notes.txt")}},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.yaml"), "unshred", src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, ExitCodeOf(err))
		})
	}
}

func TestConfigFileSetsStripWidth(t *testing.T) {
	dir := t.TempDir()
	src := gradientPNG(t, dir, "g.png", 20, 2)
	cfgPath := filepath.Join(dir, "unshred.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("strip_width: 5\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "unshred", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Strip width: 5px (given)")
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	gradientPNG(t, dir, "a.png", 48, 6)
	gradientPNG(t, dir, "b.png", 32, 6)

	out, err := execute(t, "test", "--json", "--width", "8", "--seed", "11", dir)
	require.NoError(t, err)

	var report struct {
		Passed   int `json:"passed"`
		Mirrored int `json:"mirrored"`
		Failed   int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Passed+report.Mirrored)
	assert.Zero(t, report.Failed)
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitGeneralError, ExitCodeOf(assert.AnError))
	assert.Equal(t, ExitUsageError, ExitCodeOf(WrapCLIError(ExitUsageError, "bad", assert.AnError)))
}
