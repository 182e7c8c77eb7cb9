// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunReport is the on-disk record of one completed conversion run,
// written next to the output document when reporting is enabled.
type RunReport struct {
	// Source is the name of the input document.
	Source string `yaml:"source"`

	// Output is the path of the assembled image-only document.
	Output string `yaml:"output"`

	// Quality is the tier the run was rendered at.
	Quality QualityTier `yaml:"quality"`

	// Pages is the number of pages rasterized.
	Pages int `yaml:"pages"`

	// PageSize names the output page format preset.
	PageSize string `yaml:"page_size"`

	// ConvertedAt is the completion timestamp.
	ConvertedAt time.Time `yaml:"converted_at"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed string `yaml:"elapsed"`
}
