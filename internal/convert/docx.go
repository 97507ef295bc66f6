// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	wordNS      = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentXML = "word/document.xml"
)

var (
	headerXMLRe = regexp.MustCompile(`^word/header\d*\.xml$`)
	footerXMLRe = regexp.MustCompile(`^word/footer\d*\.xml$`)
)

// DocxConverter extracts text from Word documents without external tools.
// Page headers come first, then the body, then page footers, so the
// document identifier printed in the page header lands on the first line.
type DocxConverter struct{}

// Convert implements Converter.
func (DocxConverter) Convert(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer zr.Close()

	var (
		headers, footers []*zip.File
		body             *zip.File
	)
	for _, f := range zr.File {
		switch {
		case f.Name == documentXML:
			body = f
		case headerXMLRe.MatchString(f.Name):
			headers = append(headers, f)
		case footerXMLRe.MatchString(f.Name):
			footers = append(footers, f)
		}
	}
	if body == nil {
		return "", fmt.Errorf("docx %s has no %s", path, documentXML)
	}

	var b strings.Builder
	parts := append(append(headers, body), footers...)
	for _, f := range parts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := partText(f, &b); err != nil {
			return "", fmt.Errorf("reading %s from %s: %w", f.Name, path, err)
		}
	}
	return b.String(), nil
}

func partText(f *zip.File, b *strings.Builder) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return wordText(rc, b)
}

// wordText streams WordprocessingML and writes each paragraph as one line.
// Tabs and explicit breaks inside a paragraph are kept as '\t' and '\n'.
func wordText(r io.Reader, b *strings.Builder) error {
	dec := xml.NewDecoder(r)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			case "p":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}
