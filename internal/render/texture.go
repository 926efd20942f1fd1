package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"

	"github.com/rajveermalviya/go-webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
)

const (
	// maxTextureDim caps uploaded textures; larger source images are
	// scaled down.
	maxTextureDim = 1024

	placeholderSize = 256
	placeholderCell = 32
)

// Texture holds the GPU resources for a single diffuse texture.
type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// Release frees the GPU resources.
func (t *Texture) Release() {
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

// createTexture uploads an RGBA image as a sampleable 2D texture.
func (r *Renderer) createTexture(label string, img *image.RGBA) (*Texture, error) {
	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(img.Bounds().Dx()),
			Height:             uint32(img.Bounds().Dy()),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_RGBA8UnormSrgb,
		Usage:         wgpu.TextureUsage_TextureBinding | wgpu.TextureUsage_CopyDst,
	})
	if err != nil {
		return nil, err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspect_All},
		img.Pix,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: uint32(img.Bounds().Dy())},
		&wgpu.Extent3D{Width: uint32(img.Bounds().Dx()), Height: uint32(img.Bounds().Dy()), DepthOrArrayLayers: 1},
	)

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_RGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		texture.Release()
		return nil, err
	}

	return &Texture{Texture: texture, View: view}, nil
}

// DecodeTexture decodes encoded image bytes and normalizes them for
// upload: converted to RGBA, and scaled down to a power-of-two size when
// the source exceeds maxTextureDim.
func DecodeTexture(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NormalizeTexture(img), nil
}

// NormalizeTexture converts img to RGBA, resampling it down to a
// power-of-two edge length when it exceeds maxTextureDim.
func NormalizeTexture(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxTextureDim && h <= maxTextureDim {
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
		return rgba
	}

	tw, th := powTwoFit(w), powTwoFit(h)
	rgba := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, bounds, xdraw.Src, nil)
	return rgba
}

// powTwoFit returns the largest power of two <= maxTextureDim that does
// not exceed n, with a floor of 1.
func powTwoFit(n int) int {
	p := 1
	for p*2 <= n && p*2 <= maxTextureDim {
		p *= 2
	}
	return p
}

// Checkerboard produces the placeholder texture used until a real asset
// is available, and as the default for particles.
func Checkerboard(light, dark color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			if (x/placeholderCell+y/placeholderCell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
