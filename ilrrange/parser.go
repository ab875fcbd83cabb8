// Package ilrrange parses the two-element ILR proficiency interval stored
// as a string on catalog records, e.g. "['1.40', '2.10']" or "[1.4, 2.1]".
package ilrrange

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// bareNumberRe is the JSON number grammar
	bareNumberRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
	// quotedNumberRe is a decimal numeric string: optional sign, digits
	// with an optional point on either side, optional exponent
	quotedNumberRe = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// NotAvailable is displayed for an absent or unparseable range
const NotAvailable = "N/A"

// Sentinel failure kinds, matched with errors.Is against a *ParseError
var (
	ErrNotArray     = errors.New("not a bracketed list")
	ErrElementCount = errors.New("range must have exactly two elements")
	ErrNotNumeric   = errors.New("range element is not numeric")
	ErrTrailing     = errors.New("unexpected trailing input")
)

// Range is a parsed proficiency interval
type Range struct {
	Low  float64
	High float64
}

// String formats the range with two decimals, the way it is displayed
func (r Range) String() string {
	return fmt.Sprintf("[%.2f, %.2f]", r.Low, r.High)
}

// ParseError reports where and why a raw range failed to parse
type ParseError struct {
	Input  string
	Offset int
	Kind   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ilr range %q: %v at offset %d", e.Input, e.Kind, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Parse reads a two-element numeric list. Elements may be bare numbers or
// numbers wrapped in single or double quotes; single quotes are treated
// exactly like double quotes.
func Parse(raw string) (Range, error) {
	p := &parser{in: raw}

	p.skipSpace()
	if !p.consume('[') {
		return Range{}, p.fail(ErrNotArray)
	}

	var values []float64
	p.skipSpace()
	if p.consume(']') {
		return Range{}, p.fail(ErrElementCount)
	}
	for {
		v, err := p.element()
		if err != nil {
			return Range{}, err
		}
		values = append(values, v)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		if p.eof() {
			return Range{}, p.fail(ErrNotArray)
		}
		return Range{}, p.fail(ErrNotNumeric)
	}

	p.skipSpace()
	if !p.eof() {
		return Range{}, p.fail(ErrTrailing)
	}
	if len(values) != 2 {
		return Range{}, p.fail(ErrElementCount)
	}
	return Range{Low: values[0], High: values[1]}, nil
}

// Display renders an optional raw range for presentation
func Display(raw *string) string {
	if raw == nil {
		return NotAvailable
	}
	r, err := Parse(*raw)
	if err != nil {
		return NotAvailable
	}
	return r.String()
}

type parser struct {
	in  string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.in) }

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.in[p.pos]) {
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.in[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) fail(kind error) *ParseError {
	return &ParseError{Input: p.in, Offset: p.pos, Kind: kind}
}

// element reads one list element, quoted or bare
func (p *parser) element() (float64, error) {
	p.skipSpace()
	start := p.pos

	var text string
	grammar := bareNumberRe
	if !p.eof() && isQuote(p.in[p.pos]) {
		grammar = quotedNumberRe
		p.pos++
		end := strings.IndexAny(p.in[p.pos:], `'"`)
		if end < 0 {
			return 0, p.fail(ErrNotArray)
		}
		text = strings.TrimSpace(p.in[p.pos : p.pos+end])
		p.pos += end + 1
	} else {
		for !p.eof() && isNumberByte(p.in[p.pos]) {
			p.pos++
		}
		text = p.in[start:p.pos]
	}

	v, ok := toNumber(text)
	if !ok || !grammar.MatchString(text) {
		p.pos = start
		return 0, p.fail(ErrNotNumeric)
	}
	return v, nil
}

func toNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E'
}
