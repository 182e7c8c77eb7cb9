// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared domain types for the conversion pipeline.
package types

import "fmt"

// QualityTier names a rendering quality preset.
type QualityTier string

const (
	QualityHigh   QualityTier = "high"
	QualityMedium QualityTier = "medium"
	QualityLow    QualityTier = "low"
)

// ParseQualityTier converts a user-supplied string into a QualityTier.
func ParseQualityTier(s string) (QualityTier, error) {
	switch QualityTier(s) {
	case QualityHigh, QualityMedium, QualityLow:
		return QualityTier(s), nil
	}
	return "", fmt.Errorf("unknown quality tier %q (expected high, medium, or low)", s)
}

// ImageEncoding identifies the raster encoding used for rendered pages.
type ImageEncoding string

const (
	// EncodingJPEG is currently the only supported page encoding.
	EncodingJPEG ImageEncoding = "jpeg"
)

// QualityProfile bundles the rendering parameters for one quality tier.
// Profiles are immutable and chosen once per conversion run.
type QualityProfile struct {
	// Scale multiplies the page's intrinsic size to obtain the raster
	// pixel dimensions. It is the sole resolution/runtime-cost control.
	Scale float64 `json:"scale" yaml:"scale"`

	// Encoding selects the raster image format.
	Encoding ImageEncoding `json:"encoding" yaml:"encoding"`

	// CompressionQuality is the encoder quality in [0, 1].
	CompressionQuality float64 `json:"compression_quality" yaml:"compression_quality"`
}

// profiles is the static quality profile table.
var profiles = map[QualityTier]QualityProfile{
	QualityHigh:   {Scale: 2.0, Encoding: EncodingJPEG, CompressionQuality: 0.95},
	QualityMedium: {Scale: 1.5, Encoding: EncodingJPEG, CompressionQuality: 0.85},
	QualityLow:    {Scale: 1.0, Encoding: EncodingJPEG, CompressionQuality: 0.75},
}

// ProfileFor returns the rendering profile for a quality tier. Unknown
// tiers fall back to the medium profile.
func ProfileFor(tier QualityTier) QualityProfile {
	if p, ok := profiles[tier]; ok {
		return p
	}
	return profiles[QualityMedium]
}

// Tiers lists the known quality tiers from highest to lowest fidelity.
func Tiers() []QualityTier {
	return []QualityTier{QualityHigh, QualityMedium, QualityLow}
}

// RasterPage is one source page rendered to an encoded raster image.
// Page ordering is significant and equals source page order.
type RasterPage struct {
	// Page is the 1-indexed source page number.
	Page int `json:"page" yaml:"page"`

	// Data holds the encoded image bytes.
	Data []byte `json:"-" yaml:"-"`

	// Encoding is the format of Data.
	Encoding ImageEncoding `json:"encoding" yaml:"encoding"`

	// Width and Height are the intrinsic pixel dimensions of the raster.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}
