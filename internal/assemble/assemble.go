// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble synthesizes an image-only PDF from ordered raster pages.
package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/rasterpdf/pkg/types"
)

// ErrNoPages reports an assembly attempt with zero raster pages.
var ErrNoPages = errors.New("no raster pages to assemble")

// PageSize is an output page format in points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Output page format presets.
var (
	A4     = PageSize{Width: 595.28, Height: 841.89}
	Letter = PageSize{Width: 612, Height: 792}
)

// ParsePageSize resolves a preset name to a page format.
func ParsePageSize(name string) (PageSize, error) {
	switch strings.ToLower(name) {
	case "a4":
		return A4, nil
	case "letter":
		return Letter, nil
	}
	return PageSize{}, fmt.Errorf("unknown page size %q (expected a4 or letter)", name)
}

// Placement is the rectangle an image occupies on an output page.
type Placement struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Fit computes the aspect-fit-and-center placement of an image on a page:
// the largest rectangle that fits within the page without cropping or
// distortion, centered on both axes. When the image aspect exceeds the
// page aspect the placement is width-constrained; otherwise it is
// height-constrained. The result never exceeds either page dimension.
func Fit(imageWidth, imageHeight, pageWidth, pageHeight float64) Placement {
	imageAspect := imageWidth / imageHeight
	pageAspect := pageWidth / pageHeight

	var w, h float64
	if imageAspect > pageAspect {
		w = pageWidth
		h = pageWidth / imageAspect
	} else {
		h = pageHeight
		w = pageHeight * imageAspect
	}

	return Placement{
		X:      (pageWidth - w) / 2,
		Y:      (pageHeight - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Page is one output page: exactly one raster image plus its placement.
type Page struct {
	Image     types.RasterPage
	Placement Placement
}

// Document is an assembled output document, one page per input raster.
type Document struct {
	Size  PageSize
	Pages []Page
}

// Assemble lays out the ordered raster pages onto fixed-size output pages.
// Output page order equals input order exactly; no page is reordered or
// omitted. Empty input fails with ErrNoPages.
func Assemble(pages []types.RasterPage, size PageSize) (*Document, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	doc := &Document{Size: size, Pages: make([]Page, 0, len(pages))}
	for _, p := range pages {
		doc.Pages = append(doc.Pages, Page{
			Image:     p,
			Placement: Fit(float64(p.Width), float64(p.Height), size.Width, size.Height),
		})
	}
	return doc, nil
}

// Encode writes the document as a PDF. Each output page carries its single
// placed image and nothing else; there is no text layer to extract.
func (d *Document) Encode(w io.Writer) error {
	if len(d.Pages) == 0 {
		return ErrNoPages
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: d.Size.Width, Ht: d.Size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, page := range d.Pages {
		imageType, err := gofpdfImageType(page.Image.Encoding)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: d.Size.Width, Ht: d.Size.Height})

		name := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page.Image.Data))

		pl := page.Placement
		pdf.ImageOptions(name, pl.X, pl.Y, pl.Width, pl.Height, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building output document: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing output document: %w", err)
	}
	return nil
}

// gofpdfImageType maps a raster encoding to gofpdf's image type string.
func gofpdfImageType(enc types.ImageEncoding) (string, error) {
	switch enc {
	case types.EncodingJPEG:
		return "JPG", nil
	}
	return "", fmt.Errorf("unsupported image encoding %q", enc)
}

// fallbackName is used when the source document has no usable name.
const fallbackName = "converted_image-only.pdf"

// OutputName derives the output document name from the source name by
// replacing the .pdf suffix with _image-only.pdf.
func OutputName(sourceName string) string {
	base := filepath.Base(sourceName)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return fallbackName
	}
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return fallbackName
	}
	return base + "_image-only.pdf"
}
