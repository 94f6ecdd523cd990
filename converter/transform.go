package converter

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ColorMode identifies the channel layout of a RasterImage.
type ColorMode int

const (
	ModeRGB ColorMode = iota
	ModeRGBA
	ModeGray
)

// RasterImage is one page's pixel buffer on its way through the transform
// chain. It lives for a single page only.
type RasterImage struct {
	Image image.Image
	Mode  ColorMode
}

// rasterMode classifies an engine pixel buffer. Both engines hand back RGBA
// buffers; anything without an alpha channel counts as RGB.
func rasterMode(img image.Image) ColorMode {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return ModeRGBA
	case *image.Gray, *image.Gray16:
		return ModeGray
	default:
		return ModeRGB
	}
}

// transform is one step of the per-page chain. Steps are pure: they return a
// new RasterImage and never touch the input pixels.
type transform func(RasterImage) RasterImage

// transformChain builds the per-page pipeline for the request. The order is
// fixed: flatten before grayscale before downscale.
func transformChain(o *Options) []transform {
	var chain []transform
	if !o.Format.keepsAlpha() {
		chain = append(chain, flattenAlpha)
	}
	if o.Grayscale {
		chain = append(chain, grayscale)
	}
	if o.MaxDim > 0 {
		chain = append(chain, downscale(o.MaxDim))
	}
	return chain
}

func applyTransforms(img RasterImage, chain []transform) RasterImage {
	for _, step := range chain {
		img = step(img)
	}
	return img
}

// flattenAlpha composites a transparent image over an opaque white background
// and drops the alpha channel. Images already without alpha are only
// normalized to an RGB layout.
func flattenAlpha(in RasterImage) RasterImage {
	switch in.Mode {
	case ModeRGBA:
		bounds := in.Image.Bounds()
		background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
		flat := imaging.Overlay(background, in.Image, image.Pt(0, 0), 1.0)
		return RasterImage{Image: flat, Mode: ModeRGB}
	case ModeRGB:
		return in
	default:
		return RasterImage{Image: imaging.Clone(in.Image), Mode: ModeRGB}
	}
}

// grayscale reduces the image to a single luminance channel using the
// perceptual weighting of the stdlib gray color model.
func grayscale(in RasterImage) RasterImage {
	bounds := in.Image.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, in.Image, bounds.Min, draw.Src)
	return RasterImage{Image: gray, Mode: ModeGray}
}

// downscale returns a shrink-only resize step: images whose larger dimension
// exceeds maxDim are resampled with Lanczos so that dimension equals maxDim,
// keeping the aspect ratio. Smaller images pass through untouched; the step
// never upscales.
func downscale(maxDim int) transform {
	return func(in RasterImage) RasterImage {
		bounds := in.Image.Bounds()
		if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
			return in
		}
		out := RasterImage{
			Image: imaging.Fit(in.Image, maxDim, maxDim, imaging.Lanczos),
			Mode:  in.Mode,
		}
		if in.Mode == ModeGray {
			// imaging returns NRGBA; restore the single-channel layout.
			out = grayscale(out)
		}
		return out
	}
}
