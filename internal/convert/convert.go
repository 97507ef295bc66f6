// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns specification documents into plain text with
// pluggable backends. The extractor only ever sees the returned text.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/makarkul/o-ran-ifaces/internal/container"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

// Converter transforms a document into newline-delimited plain text.
// Different backends (docx, text, markitdown) implement this interface.
type Converter interface {
	// Convert reads the document at path and returns its text content.
	Convert(ctx context.Context, path string) (string, error)
}

// New returns the converter for the configured backend. The container
// runtime is only consulted for the markitdown backend and may be nil
// otherwise.
func New(ctx context.Context, cfg types.ConversionConfig, rt container.Runtime) (Converter, error) {
	switch cfg.Backend {
	case types.BackendAuto, "":
		return NewAuto(), nil
	case types.BackendDocx:
		return DocxConverter{}, nil
	case types.BackendText:
		return TextConverter{}, nil
	case types.BackendMarkitdown:
		if rt == nil {
			return nil, fmt.Errorf("markitdown backend requires a container runtime")
		}
		return NewMarkitdownConverter(ctx, rt, cfg.MarkitdownImage)
	default:
		return nil, fmt.Errorf("unsupported conversion backend %q: use auto, docx, text, or markitdown", cfg.Backend)
	}
}

// AutoConverter dispatches on file extension: Word documents go to the
// native docx reader, everything else is read as text.
type AutoConverter struct {
	byExt    map[string]Converter
	fallback Converter
}

// NewAuto returns an AutoConverter with the built-in backends.
func NewAuto() *AutoConverter {
	return &AutoConverter{
		byExt:    map[string]Converter{".docx": DocxConverter{}},
		fallback: TextConverter{},
	}
}

// Convert implements Converter.
func (a *AutoConverter) Convert(ctx context.Context, path string) (string, error) {
	if c, ok := a.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return c.Convert(ctx, path)
	}
	return a.fallback.Convert(ctx, path)
}
