// Package converter turns each page of a PDF document into a standalone
// image file. The pipeline per page is: rasterize at the requested DPI,
// flatten transparency for formats without alpha, optionally convert to
// grayscale, optionally downscale to a maximum dimension, then encode and
// write under an overwrite policy.
package converter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/efkopru/pdf-to-image/pdfrenderer"
)

// Document is the rendering-engine surface the pipeline consumes. The
// pdfrenderer package provides the implementations.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() (int, error)

	// NeedsPassword reports whether the document is encrypted and still
	// locked.
	NeedsPassword() bool

	// Authenticate tries to unlock an encrypted document and reports
	// whether the password was accepted.
	Authenticate(password string) bool

	// RenderPage rasterizes one page (0-based) at the given scale factor,
	// where 1.0 means one pixel per 72th of a page unit.
	RenderPage(index int, scale float64) (image.Image, error)

	// Close releases the engine resources.
	Close() error
}

// openDocument is a seam so tests can run the pipeline against a fake engine.
var openDocument = func(path, engine string) (Document, error) {
	if engine == EngineMuPDF {
		return pdfrenderer.OpenFitz(path)
	}
	return pdfrenderer.OpenPdfium(path)
}

// Convert renders each page in the requested range of the PDF named by the
// options into an image file and returns the resolved output directory.
// All validation happens before any file is touched; the document is closed
// on every path out. A failure mid-range aborts the run and leaves the
// already-written files in place.
func Convert(ctx context.Context, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	info, err := os.Stat(opts.PDFPath)
	if err != nil {
		return "", fmt.Errorf("PDF not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("PDF not found: %s is a directory: %w", opts.PDFPath, os.ErrNotExist)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	doc, err := openDocument(opts.PDFPath, opts.Engine)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	if doc.NeedsPassword() {
		if opts.Password == "" {
			return "", ErrEncrypted
		}
		if !doc.Authenticate(opts.Password) {
			return "", ErrBadPassword
		}
	}

	pageCount, err := doc.PageCount()
	if err != nil {
		return "", fmt.Errorf("unable to get page count: %w", err)
	}
	pages, err := resolvePageRange(opts.Start, opts.End, pageCount)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(opts.PDFPath), filepath.Ext(opts.PDFPath))
	tmpl, err := parseTemplate(opts.Template)
	if err != nil {
		return "", err
	}
	writer := &pageWriter{
		dir:          opts.OutDir,
		stem:         stem,
		tmpl:         tmpl,
		format:       opts.Format,
		quality:      opts.Quality,
		skipExisting: opts.SkipExisting,
	}
	chain := transformChain(&opts)
	scale := float64(opts.DPI) / 72.0

	slog.Debug("Converting PDF",
		"path", opts.PDFPath,
		"pages", pages.Pages(),
		"dpi", opts.DPI,
		"format", opts.Format,
		"engine", opts.Engine)

	for index := pages.First; index <= pages.Last; index++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		raster, err := doc.RenderPage(index, scale)
		if err != nil {
			return "", err
		}
		page := applyTransforms(RasterImage{Image: raster, Mode: rasterMode(raster)}, chain)

		path, written, err := writer.writePage(page, index+1)
		if err != nil {
			return "", err
		}
		if written {
			slog.Debug("Page written", "page", index+1, "path", path)
		} else {
			slog.Debug("Page skipped, file exists", "page", index+1, "path", path)
		}

		if opts.Progress != nil {
			opts.Progress(index-pages.First+1, pages.Pages())
		}
	}

	return opts.OutDir, nil
}
