// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarkul/o-ran-ifaces/internal/loader"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

const wordDoc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Module</w:t></w:r><w:r><w:t xml:space="preserve"> Foo</w:t></w:r></w:p>
<w:p><w:r><w:t>-- ASN1START</w:t></w:r></w:p>
<w:p><w:r><w:t>A ::=</w:t><w:tab/><w:t>INTEGER</w:t></w:r></w:p>
<w:p><w:r><w:t>B ::= BOOLEAN</w:t><w:br/><w:t>C ::= NULL</w:t></w:r></w:p>
<w:p><w:r><w:t>-- ASN1STOP</w:t></w:r></w:p>
</w:body>
</w:document>`

const wordHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p><w:r><w:t>O-RAN.WG3.E2SM-v01.00</w:t></w:r></w:p>
</w:hdr>`

const wordFooter = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p><w:r><w:t>Copyright O-RAN ALLIANCE</w:t></w:r></w:p>
</w:ftr>`

// writeDocx builds a minimal Word container with the given parts.
func writeDocx(t *testing.T, dir string, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "spec.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	// Deterministic order: headers, body, footers, anything else.
	for _, name := range []string{"word/header1.xml", "word/document.xml", "word/footer1.xml", "[Content_Types].xml"} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestDocxConverter(t *testing.T) {
	path := writeDocx(t, t.TempDir(), map[string]string{
		"word/header1.xml":    wordHeader,
		"word/document.xml":   wordDoc,
		"word/footer1.xml":    wordFooter,
		"[Content_Types].xml": "<Types/>",
	})

	text, err := DocxConverter{}.Convert(context.Background(), path)
	require.NoError(t, err)

	lines := loader.SplitLines(text)
	assert.Equal(t, []string{
		"O-RAN.WG3.E2SM-v01.00",
		"Module Foo",
		"-- ASN1START",
		"A ::=\tINTEGER",
		"B ::= BOOLEAN",
		"C ::= NULL",
		"-- ASN1STOP",
		"Copyright O-RAN ALLIANCE",
	}, lines)
}

func TestDocxConverter_MissingBody(t *testing.T) {
	path := writeDocx(t, t.TempDir(), map[string]string{"word/header1.xml": wordHeader})
	_, err := DocxConverter{}.Convert(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestDocxConverter_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err := DocxConverter{}.Convert(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening docx")
}

func TestTextConverter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	text, err := TextConverter{}.Convert(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)

	_, err = TextConverter{}.Convert(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestAutoConverter_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	docx := writeDocx(t, dir, map[string]string{"word/document.xml": wordDoc})
	txt := filepath.Join(dir, "spec.TXT")
	require.NoError(t, os.WriteFile(txt, []byte("plain"), 0o644))

	auto := NewAuto()
	got, err := auto.Convert(context.Background(), docx)
	require.NoError(t, err)
	assert.Contains(t, got, "-- ASN1START")

	got, err = auto.Convert(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

// fakeRuntime implements container.Runtime for converter tests.
type fakeRuntime struct {
	imageErr error
	output   string
	runErr   error
	gotArgs  []string
	gotImage string
}

func (f *fakeRuntime) Name() string                             { return "fake" }
func (f *fakeRuntime) Available(context.Context) bool           { return true }
func (f *fakeRuntime) ImageExists(context.Context, string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, image string, stdin io.Reader, stdout io.Writer, args ...string) error {
	f.gotImage = image
	f.gotArgs = args
	if f.runErr != nil {
		return f.runErr
	}
	_, _ = io.Copy(io.Discard, stdin)
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdownConverter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.docx")
	require.NoError(t, os.WriteFile(path, []byte("zip bytes"), 0o644))

	tests := []struct {
		name    string
		rt      *fakeRuntime
		wantOut string
		wantErr string
	}{
		{
			name:    "successful conversion",
			rt:      &fakeRuntime{output: "O-RAN.WG3.E2SM-v01.00\n"},
			wantOut: "O-RAN.WG3.E2SM-v01.00\n",
		},
		{
			name:    "container failure",
			rt:      &fakeRuntime{runErr: errors.New("exit status 2")},
			wantErr: "converting",
		},
		{
			name:    "empty output",
			rt:      &fakeRuntime{},
			wantErr: "empty output",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMarkitdownConverter(context.Background(), tt.rt, "")
			require.NoError(t, err)

			got, err := m.Convert(context.Background(), path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, got)
			assert.Equal(t, DefaultMarkitdownImage, tt.rt.gotImage)
			assert.Equal(t, []string{"-x", "docx"}, tt.rt.gotArgs)
		})
	}
}

func TestNewMarkitdownConverter_MissingImage(t *testing.T) {
	_, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{imageErr: errors.New("no such image")}, "custom:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markitdown image not available")
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend types.ConversionBackend
		rt      *fakeRuntime
		want    string
		wantErr bool
	}{
		{backend: "", want: "*convert.AutoConverter"},
		{backend: types.BackendAuto, want: "*convert.AutoConverter"},
		{backend: types.BackendDocx, want: "convert.DocxConverter"},
		{backend: types.BackendText, want: "convert.TextConverter"},
		{backend: types.BackendMarkitdown, rt: &fakeRuntime{}, want: "*convert.MarkitdownConverter"},
		{backend: types.BackendMarkitdown, wantErr: true},
		{backend: "pdftotext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := types.ConversionConfig{Backend: tt.backend}
			var c Converter
			var err error
			if tt.rt != nil {
				c, err = New(ctx, cfg, tt.rt)
			} else {
				c, err = New(ctx, cfg, nil)
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fmt.Sprintf("%T", c))
		})
	}
}
