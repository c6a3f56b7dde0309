// Package format prints the output of the front end stages.
package format

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/paskal/frontend"
)

// Section selects which stage outputs an encoder prints.
type Section int

const (
	SectionTokens Section = 1 << iota
	SectionTree
	SectionTables
	SectionAST

	SectionAll = SectionTokens | SectionTree | SectionTables | SectionAST
)

func (s Section) Has(other Section) bool {
	return s&other != 0
}

// ParseSections accepts a comma separated list of tokens, tree, tables and
// ast, or "all".
func ParseSections(list string) (Section, error) {
	var s Section
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case "tokens":
			s |= SectionTokens
		case "tree":
			s |= SectionTree
		case "tables":
			s |= SectionTables
		case "ast":
			s |= SectionAST
		case "all":
			s |= SectionAll
		case "":
		default:
			return 0, fmt.Errorf("unknown section %q", name)
		}
	}
	return s, nil
}

// Encoder writes a pipeline result. err is the error the pipeline stopped
// with, or nil; the stages completed before it are still printed.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *frontend.Result, err error) error
}

// New returns the encoder for format, "text" or "json".
func New(format string, w io.Writer, sections Section, color bool) (Encoder, error) {
	switch format {
	case "", "text":
		return NewTextEncoder(w, sections, color), nil
	case "json":
		return NewJSONEncoder(w, sections), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func write(w io.Writer, e Encoder) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
