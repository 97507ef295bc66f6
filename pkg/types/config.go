package types

// ConversionBackend identifies the document-to-text tool.
type ConversionBackend string

const (
	// BackendAuto picks a backend from the file extension.
	BackendAuto       ConversionBackend = "auto"
	BackendDocx       ConversionBackend = "docx"
	BackendText       ConversionBackend = "text"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: auto, docx, text, or markitdown.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// MarkitdownImage is the container image used by the markitdown backend
	// (default "markitdown:latest").
	MarkitdownImage string `json:"markitdown_image" yaml:"markitdown_image" mapstructure:"markitdown_image"`
}

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`

	// OutDir is the directory receiving extracted module files (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Extension is the output file extension without the dot (default "asn").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// RemovePartial deletes the output file of a region that was still open
	// when the document failed. Partial files are kept by default.
	RemovePartial bool `json:"remove_partial" yaml:"remove_partial" mapstructure:"remove_partial"`
}

// CatalogConfig holds settings for the module catalog.
type CatalogConfig struct {
	// Enabled records every extraction run into the catalog.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding catalog.db and exports (default "catalog").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all configuration sections.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	LogLevel   string           `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
