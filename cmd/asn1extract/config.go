// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makarkul/o-ran-ifaces/internal/convert"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

const (
	configName = "asn1extract"
	envPrefix  = "ASN1EXTRACT"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("extraction.out_dir", ".")
	v.SetDefault("extraction.extension", "asn")
	v.SetDefault("extraction.remove_partial", false)
	v.SetDefault("extraction.conversion.backend", string(types.BackendAuto))
	v.SetDefault("extraction.conversion.markitdown_image", convert.DefaultMarkitdownImage)
	v.SetDefault("catalog.enabled", false)
	v.SetDefault("catalog.dir", "catalog")
	v.SetDefault("catalog.max_results", 20)
}

// readConfig layers defaults, an optional config file and ASN1EXTRACT_*
// environment variables into v. A missing default config file is not an
// error; a missing explicit one is.
func readConfig(v *viper.Viper, cfgFile string, w io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(w, "Using config file:", v.ConfigFileUsed())
	return nil
}

// extractFlags maps extraction flags to their config keys.
var extractFlags = map[string]string{
	"out-dir":          "extraction.out_dir",
	"ext":              "extraction.extension",
	"remove-partial":   "extraction.remove_partial",
	"backend":          "extraction.conversion.backend",
	"markitdown-image": "extraction.conversion.markitdown_image",
	"catalog":          "catalog.enabled",
	"catalog-dir":      "catalog.dir",
}

func addExtractFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("out-dir", ".", "directory for extracted .asn files")
	f.String("ext", "asn", "extension of extracted files")
	f.Bool("remove-partial", false, "delete the output of a region left open when a document fails")
	f.String("backend", string(types.BackendAuto), "conversion backend: auto, docx, text, or markitdown")
	f.String("markitdown-image", convert.DefaultMarkitdownImage, "container image for the markitdown backend")
	f.Bool("catalog", false, "record extracted modules in the catalog")
	f.String("catalog-dir", "catalog", "catalog directory (contains catalog.db)")
}

// loadConfig binds the command's flags that have config keys and decodes
// the merged settings.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (types.Config, error) {
	for name, key := range extractFlags {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return types.Config{}, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
