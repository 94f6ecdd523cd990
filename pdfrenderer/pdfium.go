package pdfrenderer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium"
	pdfiumerrors "github.com/klippa-app/go-pdfium/errors"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// PdfiumDocument renders through go-pdfium's WebAssembly build of PDFium
// (pure Go, no CGo). Encrypted documents open in a locked state; call
// Authenticate before any other method.
type PdfiumDocument struct {
	pool     pdfium.Pool
	instance pdfium.Pdfium
	data     []byte
	document references.FPDF_DOCUMENT
	opened   bool
	locked   bool
}

// OpenPdfium opens a PDF with the PDFium engine.
func OpenPdfium(path string) (*PdfiumDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read PDF file: %w", err)
	}

	// Single-threaded usage, so a minimal worker pool is enough.
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PDFium WebAssembly: %w", err)
	}
	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to get PDFium instance: %w", err)
	}

	d := &PdfiumDocument{pool: pool, instance: instance, data: data}
	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &d.data})
	switch {
	case err == nil:
		d.document = doc.Document
		d.opened = true
	case errors.Is(err, pdfiumerrors.ErrPassword):
		d.locked = true
	default:
		d.Close()
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}
	return d, nil
}

// NeedsPassword reports whether the document is encrypted and still locked.
func (d *PdfiumDocument) NeedsPassword() bool {
	return d.locked
}

// Authenticate reopens the document with the given password and reports
// whether PDFium accepted it.
func (d *PdfiumDocument) Authenticate(password string) bool {
	if !d.locked {
		return true
	}
	doc, err := d.instance.OpenDocument(&requests.OpenDocument{
		File:     &d.data,
		Password: &password,
	})
	if err != nil {
		return false
	}
	d.document = doc.Document
	d.opened = true
	d.locked = false
	return true
}

// PageCount returns the number of pages in the document.
func (d *PdfiumDocument) PageCount() (int, error) {
	pageCount, err := d.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: d.document,
	})
	if err != nil {
		return 0, fmt.Errorf("unable to get page count: %w", err)
	}
	return pageCount.PageCount, nil
}

// RenderPage rasterizes one page (0-based) at the given scale factor, where
// 1.0 maps one page unit to one pixel at 72 DPI.
func (d *PdfiumDocument) RenderPage(index int, scale float64) (image.Image, error) {
	render, err := d.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: int(math.Round(scale * 72)),
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: d.document,
				Index:    index,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", index, err)
	}
	// Release the WebAssembly-side bitmap; the Go image stays valid.
	defer render.Cleanup()
	return render.Result.Image, nil
}

// Close releases the document and the PDFium worker pool.
func (d *PdfiumDocument) Close() error {
	if d.opened {
		d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
			Document: d.document,
		})
		d.opened = false
	}
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
	d.instance = nil
	return nil
}
