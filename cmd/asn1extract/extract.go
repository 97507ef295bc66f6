// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makarkul/o-ran-ifaces/internal/catalog"
	"github.com/makarkul/o-ran-ifaces/internal/container"
	"github.com/makarkul/o-ran-ifaces/internal/convert"
	"github.com/makarkul/o-ran-ifaces/internal/extract"
	"github.com/makarkul/o-ran-ifaces/internal/logging"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

func newExtractCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract file1 [file2 ..]",
		Short: "Extract ASN.1 modules from specification documents",
		Long: `Extract converts each document to text, reads the document identifier
from its first line and writes every ASN1START/ASN1STOP region to
<category>-<heading words>-<version>.asn in the output directory.

Failures (malformed header, unbalanced sentinels, unreadable document)
are reported per document and do not stop the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v, args)
		},
	}
	addExtractFlags(cmd)
	return cmd
}

func runExtract(cmd *cobra.Command, v *viper.Viper, paths []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	conv, err := newConverter(ctx, cfg.Extraction.Conversion)
	if err != nil {
		return err
	}

	opts := []extract.Option{extract.WithLogger(log)}
	if cfg.Catalog.Enabled {
		opts = append(opts, extract.WithContent())
	}
	batch := &extract.Batch{
		Converter: conv,
		Extractor: extract.NewExtractor(cfg.Extraction, opts...),
		Sink:      extract.FileSink{Dir: cfg.Extraction.OutDir},
		Program:   cmd.Root().Name(),
		Log:       log,
	}

	out := cmd.OutOrStdout()
	result, err := batch.ExtractAll(ctx, paths, out)
	if err != nil {
		return err
	}

	if cfg.Catalog.Enabled {
		return recordRun(ctx, cfg.Catalog, result, out, log)
	}
	return nil
}

func newConverter(ctx context.Context, cfg types.ConversionConfig) (convert.Converter, error) {
	var rt container.Runtime
	if cfg.Backend == types.BackendMarkitdown {
		detected, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		rt = detected
	}
	return convert.New(ctx, cfg, rt)
}

// recordRun stores every document of the batch, failed ones included, so
// the catalog reflects what is on disk after the run.
func recordRun(ctx context.Context, cfg types.CatalogConfig, result extract.BatchResult, w io.Writer, log zerolog.Logger) error {
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.BeginRun(ctx)
	if err != nil {
		return err
	}
	for _, doc := range result.Documents {
		if err := store.RecordDocument(ctx, runID, doc); err != nil {
			return fmt.Errorf("cataloging %s: %w", doc.Path, err)
		}
	}
	log.Info().Str("run", runID).Int("documents", len(result.Documents)).Msg("catalog updated")
	fmt.Fprintf(w, "Cataloged %d modules (run %s)\n", result.Modules, runID)
	return nil
}
