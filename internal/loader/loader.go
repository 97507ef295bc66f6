// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader turns converted specification text into the line sequence
// and Identifier consumed by the region extractor.
package loader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

// ErrMalformedHeader is returned when the first line does not carry an
// O-RAN document identifier.
var ErrMalformedHeader = errors.New("malformed header")

// headerRe matches e.g. "O-RAN.WG3.E2SM-v01.00" or "O-RAN-WG3.E2AP-R003-v05.00".
// The separators after "O-RAN" and the working-group digit accept any
// character, as published document titles use both '.' and '-'.
var headerRe = regexp.MustCompile(`O-RAN.WG\d.([a-zA-Z,0-9]*)-([a-zA-Z,0-9,\-,\.]+)`)

// Document is a loaded specification: its non-empty lines and identifier.
type Document struct {
	Lines []string
	ID    types.Identifier
}

// Load splits text into lines and parses the identifier from the first one.
func Load(text string) (Document, error) {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return Document{}, fmt.Errorf("%w: document is empty", ErrMalformedHeader)
	}

	id, err := ParseIdentifier(lines[0])
	if err != nil {
		return Document{}, err
	}
	return Document{Lines: lines, ID: id}, nil
}

// SplitLines breaks text on newlines and drops empty lines. A trailing
// carriage return is stripped from each line first.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// ParseIdentifier extracts the (category, version) pair from a title line.
func ParseIdentifier(line string) (types.Identifier, error) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return types.Identifier{}, fmt.Errorf("%w: no document identifier in %q", ErrMalformedHeader, line)
	}
	return types.Identifier{Category: m[1], Version: m[2]}, nil
}
