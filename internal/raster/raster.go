// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders the pages of a PDF document to encoded images.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/rasterpdf/pkg/types"
)

// baseDPI is the rendering resolution at scale 1.0. PDF page geometry is
// expressed in points at 72 per inch, so rendering at 72 * scale DPI yields
// pixel dimensions equal to the page's intrinsic size times the scale.
const baseDPI = 72.0

// ErrUnsupportedInput reports that the supplied bytes are not a valid
// paginated document.
var ErrUnsupportedInput = errors.New("not a valid PDF document")

// RenderError reports that a specific page failed to rasterize.
type RenderError struct {
	// Page is the 1-indexed page that failed.
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// pageRenderer abstracts the underlying document renderer for testing.
type pageRenderer interface {
	NumPage() int
	ImageDPI(page int, dpi float64) (image.Image, error)
	Close() error
}

// fitzRenderer is the production renderer backed by go-fitz (MuPDF).
type fitzRenderer struct {
	doc *fitz.Document
}

func (f *fitzRenderer) NumPage() int { return f.doc.NumPage() }

func (f *fitzRenderer) ImageDPI(page int, dpi float64) (image.Image, error) {
	return f.doc.ImageDPI(page, dpi)
}

func (f *fitzRenderer) Close() error { return f.doc.Close() }

// Source is an open paginated document. It exposes the page count and a
// per-index render capability; the underlying document is never mutated.
type Source struct {
	name  string
	pages int
	doc   pageRenderer
}

// Open loads a PDF document from memory. The name is retained for output
// naming. Invalid input and zero-page documents fail with
// ErrUnsupportedInput.
func Open(data []byte, name string) (*Source, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	return newSource(&fitzRenderer{doc: doc}, name)
}

// newSource wraps a renderer in a Source, validating the page count.
// Split out from Open so tests can inject a fake renderer.
func newSource(doc pageRenderer, name string) (*Source, error) {
	pages := doc.NumPage()
	if pages == 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: document has no pages", ErrUnsupportedInput)
	}
	return &Source{name: name, pages: pages, doc: doc}, nil
}

// Name returns the source document's name.
func (s *Source) Name() string { return s.name }

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() int { return s.pages }

// Close releases the underlying document.
func (s *Source) Close() error { return s.doc.Close() }

// RenderPage rasterizes page (1-indexed) at the resolution dictated by the
// profile and encodes it with the profile's encoding and compression
// quality. Failures are reported as *RenderError carrying the page index.
func (s *Source) RenderPage(page int, profile types.QualityProfile) (types.RasterPage, error) {
	if page < 1 || page > s.pages {
		return types.RasterPage{}, &RenderError{
			Page: page,
			Err:  fmt.Errorf("page out of range [1, %d]", s.pages),
		}
	}

	img, err := s.doc.ImageDPI(page-1, baseDPI*profile.Scale)
	if err != nil {
		return types.RasterPage{}, &RenderError{Page: page, Err: err}
	}

	data, err := encode(img, profile)
	if err != nil {
		return types.RasterPage{}, &RenderError{Page: page, Err: err}
	}

	bounds := img.Bounds()
	return types.RasterPage{
		Page:     page,
		Data:     data,
		Encoding: profile.Encoding,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// encode serializes a rendered page image per the profile.
func encode(img image.Image, profile types.QualityProfile) ([]byte, error) {
	var buf bytes.Buffer
	switch profile.Encoding {
	case types.EncodingJPEG:
		opts := &jpeg.Options{Quality: int(math.Round(profile.CompressionQuality * 100))}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encoding JPEG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", profile.Encoding)
	}
	return buf.Bytes(), nil
}
