package converter

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// pagePlaceholder matches {page} or a zero-padded variant like {page:03d}.
var pagePlaceholder = regexp.MustCompile(`\{page(?::0?(\d+)d)?\}`)

// fileTemplate renders output base names from the user template. Supported
// placeholders: {stem} for the document name without extension and {page}
// for the 1-based page number, optionally zero-padded as in {page:03d}.
type fileTemplate struct {
	raw string
}

func parseTemplate(raw string) (fileTemplate, error) {
	if !pagePlaceholder.MatchString(raw) {
		return fileTemplate{}, fmt.Errorf("%w: template %q needs a {page} placeholder", ErrInvalidOption, raw)
	}
	return fileTemplate{raw: raw}, nil
}

func (t fileTemplate) render(stem string, page int) string {
	base := strings.ReplaceAll(t.raw, "{stem}", stem)
	return pagePlaceholder.ReplaceAllStringFunc(base, func(m string) string {
		sub := pagePlaceholder.FindStringSubmatch(m)
		if sub[1] == "" {
			return strconv.Itoa(page)
		}
		width, _ := strconv.Atoi(sub[1])
		return fmt.Sprintf("%0*d", width, page)
	})
}

// pageWriter resolves output paths and encodes transformed pages to disk.
// The directory exists before the first page is written.
type pageWriter struct {
	dir          string
	stem         string
	tmpl         fileTemplate
	format       Format
	quality      int
	skipExisting bool
}

// pagePath resolves the output path for a 1-based page number.
func (w *pageWriter) pagePath(page int) string {
	return filepath.Join(w.dir, w.tmpl.render(w.stem, page)+"."+w.format.Ext())
}

// writePage encodes one page to its final path. When the target exists and
// existing files are kept, the page is skipped without error and written is
// false.
func (w *pageWriter) writePage(img RasterImage, page int) (path string, written bool, err error) {
	path = w.pagePath(page)
	if w.skipExisting {
		if _, err := os.Stat(path); err == nil {
			return path, false, nil
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", false, fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := encodeImage(file, img, w.format, w.quality); err != nil {
		file.Close()
		return "", false, fmt.Errorf("unable to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", false, fmt.Errorf("unable to write %s: %w", path, err)
	}
	return path, true, nil
}

// encodeImage dispatches on the output format. PNG ignores quality and
// encodes at best compression; JPEG and WebP are lossy at the given quality.
func encodeImage(w io.Writer, img RasterImage, format Format, quality int) error {
	switch format {
	case FormatJPEG:
		return imaging.Encode(w, img.Image, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		return imaging.Encode(w, img.Image, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case FormatWebP:
		options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return fmt.Errorf("webp encoder options: %w", err)
		}
		// The webp encoder wants an NRGBA buffer.
		return webp.Encode(w, imaging.Clone(img.Image), options)
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidOption, format)
	}
}
