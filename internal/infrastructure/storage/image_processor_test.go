package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, solidImage(w, h)))
	return buf.Bytes()
}

func TestImageProcessor_ValidateImage(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)

	t.Run("png accepted", func(t *testing.T) {
		format, err := p.ValidateImage(encodePNG(t, 20, 10))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("jpeg accepted", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, jpeg.Encode(buf, solidImage(10, 10), nil))
		format, err := p.ValidateImage(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("gif rejected", func(t *testing.T) {
		buf := new(bytes.Buffer)
		pal := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
		require.NoError(t, gif.Encode(buf, pal, nil))
		_, err := p.ValidateImage(buf.Bytes())
		assert.ErrorContains(t, err, "not allowed")
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := p.ValidateImage([]byte("definitely not an image"))
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := p.ValidateImage(nil)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		small := NewImageProcessor(16)
		_, err := small.ValidateImage(encodePNG(t, 20, 20))
		assert.ErrorContains(t, err, "exceeds")
	})
}

func TestImageProcessor_ProcessImage(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)

	variants, err := p.ProcessImage(encodePNG(t, 1600, 800))
	require.NoError(t, err)
	require.Len(t, variants, 3)

	expected := map[string]image.Point{
		"large":     {X: 1200, Y: 600},
		"medium":    {X: 600, Y: 300},
		"thumbnail": {X: 300, Y: 150},
	}
	for name, size := range expected {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(variants[name]))
		require.NoError(t, err, name)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, size.X, cfg.Width, name)
		assert.Equal(t, size.Y, cfg.Height, name)
	}

	t.Run("small images are not upscaled", func(t *testing.T) {
		variants, err := p.ProcessImage(encodePNG(t, 100, 50))
		require.NoError(t, err)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(variants["large"]))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Width)
	})
}
