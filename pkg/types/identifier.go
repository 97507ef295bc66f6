// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Identifier is the (category, version) pair parsed from a specification's
// title line, e.g. "O-RAN.WG3.E2SM-v01.00" yields {E2SM, v01.00}. Every
// module file extracted from one document shares its Identifier.
type Identifier struct {
	// Category is the protocol or interface family (e.g. "E2SM", "E2AP").
	Category string `json:"category" yaml:"category"`

	// Version is the document version string (e.g. "v01.00", "R003-v05.00").
	Version string `json:"version" yaml:"version"`
}

// IsZero reports whether no identifier has been parsed.
func (id Identifier) IsZero() bool {
	return id.Category == "" && id.Version == ""
}

// String returns the identifier in "category-version" form.
func (id Identifier) String() string {
	return id.Category + "-" + id.Version
}
