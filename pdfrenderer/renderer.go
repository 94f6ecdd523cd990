// Package pdfrenderer wraps PDF rendering engines behind a small per-document
// API: open, authenticate, count pages, rasterize one page at a scale factor.
// Two engines are available: go-pdfium over WebAssembly (pure Go, no CGo,
// supports encrypted documents) and go-fitz (MuPDF, requires CGo).
package pdfrenderer
