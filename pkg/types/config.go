// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for the rasterization stage.
type ConversionConfig struct {
	// Quality selects the rendering profile: high, medium, or low
	// (default medium).
	Quality QualityTier `json:"quality" yaml:"quality"`
}

// AssemblyConfig holds settings for output document assembly.
type AssemblyConfig struct {
	// PageSize names the output page format preset: a4 or letter
	// (default a4).
	PageSize string `json:"page_size" yaml:"page_size"`
}

// OutputConfig holds settings for where conversion results are written.
type OutputConfig struct {
	// Dir is the directory for output documents. Empty means the
	// source document's directory.
	Dir string `json:"dir" yaml:"dir"`

	// Report controls whether a YAML run report is written next to
	// the output document.
	Report bool `json:"report" yaml:"report"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Assembly   AssemblyConfig   `json:"assembly" yaml:"assembly"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}
