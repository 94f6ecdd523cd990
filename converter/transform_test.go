package converter

import (
	"image"
	"image/color"
	"testing"
)

// newTransparentRGBA builds a w x h buffer whose left half is opaque red and
// whose right half is fully transparent.
func newTransparentRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
	return img
}

func TestFlattenAlphaCompositesOverWhite(t *testing.T) {
	in := RasterImage{Image: newTransparentRGBA(8, 4), Mode: ModeRGBA}

	out := flattenAlpha(in)
	if out.Mode != ModeRGB {
		t.Fatalf("Mode = %v, want ModeRGB", out.Mode)
	}

	r, g, b, a := out.Image.At(6, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("transparent pixel = (%d, %d, %d), want white", r, g, b)
	}
	if a != 0xffff {
		t.Errorf("alpha = %d, want opaque", a)
	}

	r, _, _, a = out.Image.At(1, 2).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("opaque red pixel changed: r=%d a=%d", r, a)
	}
}

func TestFlattenAlphaPassthroughForRGB(t *testing.T) {
	in := RasterImage{Image: newTransparentRGBA(4, 4), Mode: ModeRGB}
	out := flattenAlpha(in)
	if out.Image != in.Image {
		t.Error("RGB input should pass through unchanged")
	}
}

func TestGrayscaleProducesSingleChannel(t *testing.T) {
	in := RasterImage{Image: newTransparentRGBA(4, 4), Mode: ModeRGBA}
	out := grayscale(in)
	if out.Mode != ModeGray {
		t.Fatalf("Mode = %v, want ModeGray", out.Mode)
	}
	if _, ok := out.Image.(*image.Gray); !ok {
		t.Fatalf("image type = %T, want *image.Gray", out.Image)
	}
}

func TestChainFlattensBeforeGrayscale(t *testing.T) {
	opts := Options{Format: FormatJPEG, Grayscale: true}
	chain := transformChain(&opts)

	out := applyTransforms(RasterImage{Image: newTransparentRGBA(8, 4), Mode: ModeRGBA}, chain)
	if out.Mode != ModeGray {
		t.Fatalf("Mode = %v, want ModeGray", out.Mode)
	}
	gray, ok := out.Image.(*image.Gray)
	if !ok {
		t.Fatalf("image type = %T, want *image.Gray", out.Image)
	}
	// A transparent pixel flattened over white must desaturate to white, not
	// to black as it would if grayscale ran on the raw alpha image.
	if got := gray.GrayAt(6, 2).Y; got != 255 {
		t.Errorf("flattened transparent pixel luminance = %d, want 255", got)
	}
}

func TestChainKeepsAlphaForPNG(t *testing.T) {
	opts := Options{Format: FormatPNG}
	if chain := transformChain(&opts); len(chain) != 0 {
		t.Errorf("png chain has %d steps, want 0", len(chain))
	}
}

func TestDownscaleShrinkOnly(t *testing.T) {
	small := RasterImage{Image: image.NewNRGBA(image.Rect(0, 0, 100, 50)), Mode: ModeRGB}
	out := downscale(200)(small)
	if b := out.Image.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("small image resized to %dx%d, want 100x50 untouched", b.Dx(), b.Dy())
	}

	large := RasterImage{Image: image.NewNRGBA(image.Rect(0, 0, 400, 200)), Mode: ModeRGB}
	out = downscale(100)(large)
	if b := out.Image.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("large image resized to %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestDownscaleKeepsGrayMode(t *testing.T) {
	in := grayscale(RasterImage{Image: newTransparentRGBA(400, 200), Mode: ModeRGBA})
	out := downscale(100)(in)
	if out.Mode != ModeGray {
		t.Fatalf("Mode = %v, want ModeGray", out.Mode)
	}
	if _, ok := out.Image.(*image.Gray); !ok {
		t.Errorf("image type = %T, want *image.Gray", out.Image)
	}
	if b := out.Image.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("resized to %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestRasterMode(t *testing.T) {
	if got := rasterMode(image.NewRGBA(image.Rect(0, 0, 1, 1))); got != ModeRGBA {
		t.Errorf("rasterMode(RGBA) = %v, want ModeRGBA", got)
	}
	if got := rasterMode(image.NewGray(image.Rect(0, 0, 1, 1))); got != ModeGray {
		t.Errorf("rasterMode(Gray) = %v, want ModeGray", got)
	}
	if got := rasterMode(image.NewYCbCr(image.Rect(0, 0, 1, 1), image.YCbCrSubsampleRatio420)); got != ModeRGB {
		t.Errorf("rasterMode(YCbCr) = %v, want ModeRGB", got)
	}
}
