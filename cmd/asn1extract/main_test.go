// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSpec = `O-RAN-WG3.E2SM-v01.00

Module Foo
-- ASN1START
A ::= INTEGER
-- ASN1STOP
`

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_NoDocumentsIsUsageError(t *testing.T) {
	stdout, stderr, err := run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
	assert.Contains(t, stdout+stderr, "Usage:")
}

func TestRoot_ExtractsDocuments(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	doc := writeDoc(t, dir, "e2sm.txt", goodSpec)

	stdout, _, err := run(t, "--out-dir", outDir, doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "extracted: "+doc)

	data, err := os.ReadFile(filepath.Join(outDir, "E2SM-Foo-v01.00.asn"))
	require.NoError(t, err)
	assert.Equal(t, "-- ASN1START\nA ::= INTEGER\n-- ASN1STOP\n", string(data))
}

func TestExtract_MalformedDocumentDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	bad := writeDoc(t, dir, "bad.txt", "no identifier here\n-- ASN1START\n-- ASN1STOP\n")
	good := writeDoc(t, dir, "good.txt", goodSpec)

	stdout, _, err := run(t, "extract", "--out-dir", outDir, bad, good)
	require.NoError(t, err, "per-document failures are reported, not returned")

	assert.Contains(t, stdout, "asn1extract: Error parsing file "+bad+" (malformed header")
	assert.FileExists(t, filepath.Join(outDir, "E2SM-Foo-v01.00.asn"))
}

func TestExtract_CatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	catDir := filepath.Join(dir, "catalog")
	doc := writeDoc(t, dir, "e2sm.txt", goodSpec)

	stdout, _, err := run(t, "extract", "--out-dir", outDir, "--catalog", "--catalog-dir", catDir, doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cataloged 1 modules")

	stdout, _, err = run(t, "catalog", "search", "--catalog-dir", catDir, "INTEGER")
	require.NoError(t, err)
	assert.Contains(t, stdout, "E2SM-Foo-v01.00.asn")
	assert.Contains(t, stdout, "1 modules")

	stdout, _, err = run(t, "catalog", "list", "--catalog-dir", catDir, "--category", "E2AP")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No modules found.")

	stdout, _, err = run(t, "catalog", "export", "--catalog-dir", catDir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(catDir, "export.json"))
	assert.FileExists(t, filepath.Join(catDir, "export.json"))

	_, _, err = run(t, "catalog", "export", "--catalog-dir", catDir, "--format", "xml")
	assert.Error(t, err)
}

func TestExtract_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "from-config")
	cfgPath := writeDoc(t, dir, "asn1extract.yaml", "extraction:\n  out_dir: "+outDir+"\n  extension: asn1\n")
	doc := writeDoc(t, dir, "e2sm.txt", goodSpec)

	_, stderr, err := run(t, "extract", "--config", cfgPath, doc)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Using config file:")
	assert.FileExists(t, filepath.Join(outDir, "E2SM-Foo-v01.00.asn1"))
}

func TestExtract_FlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeDoc(t, dir, "asn1extract.yaml", "extraction:\n  out_dir: "+filepath.Join(dir, "ignored")+"\n")
	outDir := filepath.Join(dir, "flag")
	doc := writeDoc(t, dir, "e2sm.txt", goodSpec)

	_, _, err := run(t, "extract", "--config", cfgPath, "--out-dir", outDir, doc)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "E2SM-Foo-v01.00.asn"))
	assert.NoDirExists(t, filepath.Join(dir, "ignored"))
}

func TestExtract_MissingExplicitConfig(t *testing.T) {
	_, _, err := run(t, "extract", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "x.txt")
	assert.Error(t, err)
}

func TestExtract_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "e2sm.txt", goodSpec)
	_, _, err := run(t, "extract", "--backend", "pdftotext", "--out-dir", dir, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported conversion backend")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "asn1extract dev\n", stdout)
}
