//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	specsDir = "specs"
	asnDir   = "asn"
)

// Extract builds the CLI and extracts every .docx under specs/ into asn/.
func Extract() error {
	mg.Deps(Build)

	docs, err := filepath.Glob(filepath.Join(specsDir, "*.docx"))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Printf("No .docx files in %s/\n", specsDir)
		return nil
	}
	if err := os.MkdirAll(asnDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", asnDir, err)
	}
	args := append([]string{"extract", "--out-dir", asnDir}, docs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
