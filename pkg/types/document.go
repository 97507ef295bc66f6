// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentStatus indicates the outcome of processing one input document.
type DocumentStatus string

const (
	DocumentExtracted DocumentStatus = "extracted"
	DocumentFailed    DocumentStatus = "failed"
)

// Region describes one ASN.1 region written to an output file.
type Region struct {
	// File is the output file name (base name, no directory).
	File string `json:"file" yaml:"file"`

	// Heading is the line immediately preceding the start sentinel.
	Heading string `json:"heading" yaml:"heading"`

	// StartLine and EndLine are 1-based positions of the start and stop
	// sentinels within the document's non-empty lines.
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`

	// Lines is the number of lines written, sentinels included.
	Lines int `json:"lines" yaml:"lines"`

	// Content is the region text as written. Populated only when the
	// caller asked for it (the catalog needs it, plain extraction does not).
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// DocumentResult is the record of one document's extraction.
type DocumentResult struct {
	// Path is the input document path as given on the command line.
	Path string `json:"path" yaml:"path"`

	// ID is the identifier parsed from the document's first line. It is
	// zero when the header was malformed.
	ID Identifier `json:"id" yaml:"id"`

	Status DocumentStatus `json:"status" yaml:"status"`

	// Regions lists the regions that were completed before the document
	// finished or failed.
	Regions []Region `json:"regions" yaml:"regions"`

	// Err holds the failure, if any. Not serialized; see Error.
	Err error `json:"-" yaml:"-"`

	// Error is the failure message, kept for persistence.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
