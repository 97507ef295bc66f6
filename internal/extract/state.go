// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

const (
	// StartSentinel opens an ASN.1 region. Matched against the whole line.
	StartSentinel = "-- ASN1START"
	// StopSentinel closes an ASN.1 region. Matched against the whole line.
	StopSentinel = "-- ASN1STOP"
)

var (
	// ErrUnexpectedStart is returned for a start sentinel inside a region.
	ErrUnexpectedStart = errors.New("ASN1START encountered in parsing state")
	// ErrUnexpectedStop is returned for a stop sentinel outside a region.
	ErrUnexpectedStop = errors.New("ASN1STOP encountered in non-parsing state")
	// ErrUnterminatedRegion is returned when input ends inside a region.
	ErrUnterminatedRegion = errors.New("input ended inside an ASN.1 region")
)

// State is the extractor state. The set of implementations is closed:
// only Idle and Parsing satisfy it.
type State interface {
	state()
}

// Idle is the state outside any region. It is the initial state and the
// only valid final one.
type Idle struct{}

// Parsing is the state inside a region whose lines go to File.
type Parsing struct {
	File string
}

func (Idle) state()    {}
func (Parsing) state() {}

// Effect lists what the driver must do for one line, in order: open a new
// output file (when Open is set), write the line, close the file.
type Effect struct {
	Open  string
	Write bool
	Close bool
}

// Rules holds the per-document inputs of the transition function.
type Rules struct {
	ID types.Identifier
	// Ext is the output extension without the dot.
	Ext string
}

// Step is the transition function. It is pure: the caller applies the
// returned Effect. On error the state is returned unchanged and the
// Effect is empty.
func (r Rules) Step(s State, line, prev string) (State, Effect, error) {
	switch cur := s.(type) {
	case Idle:
		switch line {
		case StartSentinel:
			name := r.FileName(prev)
			return Parsing{File: name}, Effect{Open: name, Write: true}, nil
		case StopSentinel:
			return cur, Effect{}, ErrUnexpectedStop
		default:
			return cur, Effect{}, nil
		}
	case Parsing:
		switch line {
		case StartSentinel:
			return cur, Effect{}, ErrUnexpectedStart
		case StopSentinel:
			return Idle{}, Effect{Write: true, Close: true}, nil
		default:
			return cur, Effect{Write: true}, nil
		}
	default:
		panic(fmt.Sprintf("extract: unhandled state %T", s))
	}
}

// FileName derives the output name for a region from the heading line
// that precedes it: the heading's first word is a label ("Module",
// "Annex") and is dropped, the rest are joined with '-'.
//
//	{E2SM v01.00} + "Module Foo Bar" -> "E2SM-Foo-Bar-v01.00.asn"
//
// Path separators in the heading are replaced so the file always lands
// in the output directory.
func (r Rules) FileName(prev string) string {
	words := strings.Fields(prev)
	if len(words) > 0 {
		words = words[1:]
	}
	module := pathSafe.Replace(strings.Join(words, "-"))
	return r.ID.Category + "-" + module + "-" + r.ID.Version + "." + r.Ext
}

var pathSafe = strings.NewReplacer("/", "_", `\`, "_")
