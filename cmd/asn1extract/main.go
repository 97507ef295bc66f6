// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the asn1extract CLI, which pulls
// ASN.1 module definitions out of O-RAN specification documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makarkul/o-ran-ifaces/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "asn1extract file1 [file2 ..]",
		Short: "Extract ASN.1 modules from O-RAN specifications",
		Long: `asn1extract reads O-RAN specification documents (.docx, or text from
another converter) and writes every region between "-- ASN1START" and
"-- ASN1STOP" lines to its own .asn file. Files are named from the
document identifier on the first line and the heading above each region,
e.g. E2SM-Foo-v01.00.asn.

A document that fails to parse is reported and skipped; the remaining
documents are still processed.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			if err := readConfig(v, cfgFile, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v, args)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ./asn1extract.yaml or ~/.config/asn1extract/asn1extract.yaml)")
	root.PersistentFlags().String("log-level", "warn", fmt.Sprintf("log level: trace, debug, info, warn, error, off (env %s)", logging.EnvLogLevel))
	addExtractFlags(root)

	root.AddCommand(newExtractCmd(v), newCatalogCmd(v), newVersionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
