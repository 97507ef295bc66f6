// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makarkul/o-ran-ifaces/internal/catalog"
)

func newCatalogCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the catalog of extracted modules",
		Long: `Catalog inspects the SQLite catalog filled by "extract --catalog":
list modules, search their ASN.1 text, or export the catalog.`,
	}
	cmd.PersistentFlags().String("catalog-dir", "catalog", "catalog directory (contains catalog.db)")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over module definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(cmd, v)
			if err != nil {
				return err
			}
			defer store.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			mods, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return printModules(cmd.OutOrStdout(), mods, asJSON)
		},
	}
	search.Flags().Int("limit", 0, "maximum results (0 = use default)")
	search.Flags().Bool("json", false, "output results as JSON")

	list := &cobra.Command{
		Use:   "list",
		Short: "List cataloged modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(cmd, v)
			if err != nil {
				return err
			}
			defer store.Close()

			category, _ := cmd.Flags().GetString("category")
			mods, err := store.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return printModules(cmd.OutOrStdout(), mods, asJSON)
		},
	}
	list.Flags().String("category", "", "only modules of this category (e.g. E2SM)")
	list.Flags().Bool("json", false, "output results as JSON")

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(cmd, v)
			if err != nil {
				return err
			}
			defer store.Close()

			format, _ := cmd.Flags().GetString("format")
			var path string
			switch format {
			case "yaml", "":
				path, err = store.ExportYAML(cmd.Context())
			case "json":
				path, err = store.ExportJSON(cmd.Context())
			default:
				return fmt.Errorf("unsupported format %q: use yaml or json", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
			return nil
		},
	}
	export.Flags().String("format", "yaml", "export format: yaml or json")

	cmd.AddCommand(search, list, export)
	return cmd
}

func openCatalog(cmd *cobra.Command, v *viper.Viper) (*catalog.Store, error) {
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Catalog)
}

func printModules(w io.Writer, mods []catalog.Module, asJSON bool) error {
	if asJSON {
		if mods == nil {
			mods = []catalog.Module{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(mods)
	}

	if len(mods) == 0 {
		fmt.Fprintln(w, "No modules found.")
		return nil
	}

	fmt.Fprintf(w, "%-40s  %-8s  %-10s  %5s  %s\n", "File", "Category", "Version", "Lines", "Document")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, m := range mods {
		file := m.File
		if len(file) > 40 {
			file = file[:37] + "..."
		}
		fmt.Fprintf(w, "%-40s  %-8s  %-10s  %5d  %s\n", file, m.Category, m.Version, m.Lines, m.Document)
	}
	fmt.Fprintf(w, "\n%d modules\n", len(mods))
	return nil
}
