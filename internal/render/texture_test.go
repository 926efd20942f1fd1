package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerboard(t *testing.T) {
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.RGBA{R: 50, G: 50, B: 50, A: 255}
	img := Checkerboard(light, dark)

	assert.Equal(t, placeholderSize, img.Bounds().Dx())
	assert.Equal(t, placeholderSize, img.Bounds().Dy())

	// Opposite corners of adjacent cells differ.
	assert.Equal(t, light, img.RGBAAt(0, 0))
	assert.Equal(t, dark, img.RGBAAt(placeholderCell, 0))
	assert.Equal(t, dark, img.RGBAAt(0, placeholderCell))
	assert.Equal(t, light, img.RGBAAt(placeholderCell, placeholderCell))
}

func TestPowTwoFit(t *testing.T) {
	assert.Equal(t, 1, powTwoFit(1))
	assert.Equal(t, 2, powTwoFit(3))
	assert.Equal(t, 256, powTwoFit(300))
	assert.Equal(t, 1024, powTwoFit(1500))
	assert.Equal(t, maxTextureDim, powTwoFit(1<<20))
}

func TestNormalizeTextureSmallPassthrough(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 60))
	got := NormalizeTexture(src)
	assert.Equal(t, 100, got.Bounds().Dx())
	assert.Equal(t, 60, got.Bounds().Dy())
}

func TestNormalizeTextureDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3000, 1500))
	got := NormalizeTexture(src)
	assert.Equal(t, 1024, got.Bounds().Dx())
	assert.Equal(t, 1024, got.Bounds().Dy())
}

func TestDecodeTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	src.SetRGBA(3, 3, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	got, err := DecodeTexture(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 16, got.Bounds().Dx())
	assert.Equal(t, uint8(255), got.RGBAAt(3, 3).R)
}

func TestDecodeTextureRejectsJunk(t *testing.T) {
	_, err := DecodeTexture([]byte("not an image"))
	assert.Error(t, err)
}
