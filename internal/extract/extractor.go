// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/makarkul/o-ran-ifaces/internal/loader"
	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

// Sink creates and removes region output files.
type Sink interface {
	// Create opens name for writing, truncating any existing file.
	Create(name string) (io.WriteCloser, error)
	// Remove deletes name.
	Remove(name string) error
}

// FileSink writes region files into Dir.
type FileSink struct {
	Dir string
}

func (s FileSink) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Join(s.Dir, name))
}

func (s FileSink) Remove(name string) error {
	return os.Remove(filepath.Join(s.Dir, name))
}

// LineError locates an extraction failure within a document.
type LineError struct {
	// Line is the 1-based index among the document's non-empty lines.
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Extractor drives the state machine over a loaded document.
type Extractor struct {
	ext           string
	removePartial bool
	keepContent   bool
	log           zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithContent records each region's text in the returned Region records.
func WithContent() Option {
	return func(e *Extractor) { e.keepContent = true }
}

// WithLogger sets the logger used for region events.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Extractor) { e.log = log }
}

// NewExtractor returns an Extractor for cfg. A zero Extension means "asn".
func NewExtractor(cfg types.ExtractionConfig, opts ...Option) *Extractor {
	ext := strings.TrimPrefix(cfg.Extension, ".")
	if ext == "" {
		ext = "asn"
	}
	e := &Extractor{
		ext:           ext,
		removePartial: cfg.RemovePartial,
		log:           zerolog.Nop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// regionWriter is the output of one Parsing episode.
type regionWriter struct {
	region types.Region
	w      *bufio.Writer
	c      io.Closer
	body   *strings.Builder
}

func (rw *regionWriter) writeLine(line string) error {
	rw.region.Lines++
	if rw.body != nil {
		rw.body.WriteString(line)
		rw.body.WriteByte('\n')
	}
	if _, err := rw.w.WriteString(line); err != nil {
		return err
	}
	return rw.w.WriteByte('\n')
}

func (rw *regionWriter) close() error {
	ferr := rw.w.Flush()
	cerr := rw.c.Close()
	if rw.body != nil {
		rw.region.Content = rw.body.String()
	}
	return errors.Join(ferr, cerr)
}

// Run extracts every region of doc into sink and returns the completed
// regions in document order. On failure the regions completed before the
// offending line are returned together with the error. The output of a
// region still open at that point is always closed, and removed when the
// extractor was configured to drop partial files.
func (e *Extractor) Run(doc loader.Document, sink Sink) (regions []types.Region, err error) {
	if len(doc.Lines) == 0 {
		return nil, fmt.Errorf("%w: document is empty", loader.ErrMalformedHeader)
	}

	rules := Rules{ID: doc.ID, Ext: e.ext}
	var (
		st  State = Idle{}
		out *regionWriter
	)
	defer func() {
		if out == nil {
			return
		}
		name := out.region.File
		if cerr := out.close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, cerr)
		}
		if e.removePartial {
			if rerr := sink.Remove(name); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				e.log.Warn().Err(rerr).Str("file", name).Msg("removing partial output")
			} else {
				e.log.Debug().Str("file", name).Msg("partial output removed")
			}
			return
		}
		e.log.Debug().Str("file", name).Msg("partial output kept")
	}()

	prev := doc.Lines[0]
	for i, line := range doc.Lines[1:] {
		lineNo := i + 2
		next, eff, serr := rules.Step(st, line, prev)
		if serr != nil {
			return regions, &LineError{Line: lineNo, Text: line, Err: serr}
		}

		if eff.Open != "" {
			w, cerr := sink.Create(eff.Open)
			if cerr != nil {
				return regions, fmt.Errorf("creating %s: %w", eff.Open, cerr)
			}
			out = &regionWriter{
				region: types.Region{File: eff.Open, Heading: prev, StartLine: lineNo},
				w:      bufio.NewWriter(w),
				c:      w,
			}
			if e.keepContent {
				out.body = &strings.Builder{}
			}
			e.log.Debug().Str("file", eff.Open).Int("line", lineNo).Msg("region opened")
		}
		if eff.Write {
			if werr := out.writeLine(line); werr != nil {
				return regions, fmt.Errorf("writing %s: %w", out.region.File, werr)
			}
		}
		if eff.Close {
			out.region.EndLine = lineNo
			closed := out
			out = nil
			if cerr := closed.close(); cerr != nil {
				return regions, fmt.Errorf("closing %s: %w", closed.region.File, cerr)
			}
			regions = append(regions, closed.region)
			e.log.Debug().Str("file", closed.region.File).Int("lines", closed.region.Lines).Msg("region closed")
		}

		st = next
		prev = line
	}

	if p, ok := st.(Parsing); ok {
		return regions, fmt.Errorf("%w: %s", ErrUnterminatedRegion, p.File)
	}
	return regions, nil
}
