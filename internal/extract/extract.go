// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls ASN.1 module definitions out of converted O-RAN
// specification text. Each region delimited by "-- ASN1START" and
// "-- ASN1STOP" lines is written to its own file, named from the document
// identifier and the heading line above the region.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/makarkul/o-ran-ifaces/internal/convert"
	"github.com/makarkul/o-ran-ifaces/internal/loader"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Failed    int
	Modules   int
	Documents []types.DocumentResult
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch runs conversion and extraction over a list of documents.
type Batch struct {
	Converter convert.Converter
	Extractor *Extractor
	Sink      Sink
	// Program prefixes failure diagnostics, e.g. "asn1extract".
	Program string
	Log     zerolog.Logger
}

// ExtractDocument converts, loads and extracts one document. Failures are
// reported in the returned record, never as a panic or a batch abort.
func (b *Batch) ExtractDocument(ctx context.Context, path string) types.DocumentResult {
	res := types.DocumentResult{Path: path, Status: types.DocumentFailed}

	text, err := b.Converter.Convert(ctx, path)
	if err != nil {
		return withErr(res, err)
	}
	b.Log.Debug().Str("path", path).Int("bytes", len(text)).Msg("document converted")

	doc, err := loader.Load(text)
	if err != nil {
		return withErr(res, err)
	}
	res.ID = doc.ID

	regions, err := b.Extractor.Run(doc, b.Sink)
	res.Regions = regions
	if err != nil {
		return withErr(res, err)
	}
	res.Status = types.DocumentExtracted
	return res
}

func withErr(res types.DocumentResult, err error) types.DocumentResult {
	res.Err = err
	res.Error = err.Error()
	return res
}

// ExtractAll processes paths in order, printing one status line per
// document to w and a summary at the end. A failing document is reported
// as "<program>: Error parsing file <path> (<error>)" and the batch moves
// on. Cancellation stops the batch between documents.
func (b *Batch) ExtractAll(ctx context.Context, paths []string, w io.Writer) (BatchResult, error) {
	if fs, ok := b.Sink.(FileSink); ok && fs.Dir != "" {
		if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
			return BatchResult{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	var result BatchResult
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		res := b.ExtractDocument(ctx, path)
		result.Documents = append(result.Documents, res)
		result.Modules += len(res.Regions)

		if res.Err != nil {
			fmt.Fprintf(w, "%s: Error parsing file %s (%v)\n", b.Program, path, res.Err)
			b.Log.Info().Err(res.Err).Str("path", path).Msg("document failed")
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "extracted: %s (%s, %d modules)\n", path, res.ID, len(res.Regions))
		result.Extracted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed, %d modules (total: %d)\n",
		result.Extracted, result.Failed, result.Modules, result.Total())
	return result, nil
}
