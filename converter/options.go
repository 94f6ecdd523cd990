package converter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is one of the supported output image formats.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat normalizes a user-supplied format name. The "jpeg" alias maps
// to jpg.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: unsupported format %q, choose from jpg, jpeg, png, webp", ErrInvalidOption, name)
}

// Ext returns the filename extension for the format, without the dot.
func (f Format) Ext() string { return string(f) }

// Lossy reports whether the quality setting applies to the format.
func (f Format) Lossy() bool { return f == FormatJPEG || f == FormatWebP }

// keepsAlpha reports whether the format can store transparency.
func (f Format) keepsAlpha() bool { return f == FormatPNG }

// Rendering engines selectable per request.
const (
	EnginePDFium = "pdfium"
	EngineMuPDF  = "mupdf"
)

// Defaults used by the pdf2img command surface.
const (
	DefaultDPI      = 300
	DefaultQuality  = 92
	DefaultTemplate = "{stem}_p{page:03d}"
)

// Options describes a single conversion run. Fill in at least PDFPath, DPI,
// Quality and Format; Validate checks the whole struct once, before any file
// is touched.
type Options struct {
	PDFPath  string // input PDF
	OutDir   string // output directory, defaults to the PDF path without suffix
	DPI      int    // render resolution in pixels per 72 page units
	Quality  int    // JPEG/WebP quality in [1, 100]; ignored for png
	Start    int    // first page, 1-based inclusive; 0 means from the first page
	End      int    // last page, 1-based inclusive; 0 means to the last page
	Format   Format // output format
	Template string // filename template with {stem} and {page} placeholders

	// SkipExisting keeps files already present in the output directory
	// instead of overwriting them.
	SkipExisting bool

	Password  string // password for encrypted PDFs
	Grayscale bool   // convert outputs to a single luminance channel
	MaxDim    int    // if > 0, downscale so max(width, height) == MaxDim
	Engine    string // rendering engine: pdfium (default) or mupdf

	// Progress, when set, is called after each processed page with the
	// 1-based position within the resolved range and the range length.
	Progress func(done, total int)
}

// Validate checks every option and fills in the defaultable ones. All
// validation failures wrap ErrInvalidOption.
func (o *Options) Validate() error {
	if o.PDFPath == "" {
		return fmt.Errorf("%w: no input PDF given", ErrInvalidOption)
	}

	format, err := ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = format

	if o.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be > 0, got %d", ErrInvalidOption, o.DPI)
	}
	if o.Format.Lossy() && (o.Quality < 1 || o.Quality > 100) {
		return fmt.Errorf("%w: quality must be in [1, 100], got %d", ErrInvalidOption, o.Quality)
	}
	if o.MaxDim < 0 {
		return fmt.Errorf("%w: max dimension must be > 0, got %d", ErrInvalidOption, o.MaxDim)
	}

	if o.Template == "" {
		o.Template = DefaultTemplate
	}
	if _, err := parseTemplate(o.Template); err != nil {
		return err
	}

	switch o.Engine {
	case "":
		o.Engine = EnginePDFium
	case EnginePDFium, EngineMuPDF:
	default:
		return fmt.Errorf("%w: unknown engine %q, choose pdfium or mupdf", ErrInvalidOption, o.Engine)
	}

	if o.OutDir == "" {
		o.OutDir = strings.TrimSuffix(o.PDFPath, filepath.Ext(o.PDFPath))
	}
	return nil
}
