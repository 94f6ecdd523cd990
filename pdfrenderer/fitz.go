package pdfrenderer

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzDocument renders through go-fitz (requires CGo and MuPDF). The binding
// exposes no password hooks, so encrypted documents fail at open; use the
// PDFium engine for those.
type FitzDocument struct {
	doc *fitz.Document
}

// OpenFitz opens a PDF with the MuPDF engine.
func OpenFitz(path string) (*FitzDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}
	return &FitzDocument{doc: doc}, nil
}

// NeedsPassword always reports false; go-fitz cannot unlock encrypted
// documents, they are rejected by OpenFitz instead.
func (d *FitzDocument) NeedsPassword() bool { return false }

// Authenticate always reports false, see NeedsPassword.
func (d *FitzDocument) Authenticate(string) bool { return false }

// PageCount returns the number of pages in the document.
func (d *FitzDocument) PageCount() (int, error) {
	return d.doc.NumPage(), nil
}

// RenderPage rasterizes one page (0-based) at the given scale factor, where
// 1.0 maps one page unit to one pixel at 72 DPI.
func (d *FitzDocument) RenderPage(index int, scale float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(index, scale*72)
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", index, err)
	}
	return img, nil
}

// Close releases the MuPDF document.
func (d *FitzDocument) Close() error {
	return d.doc.Close()
}
