package ilrrange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Range
	}{
		{"single quoted", "['1.00', '2.00']", Range{1, 2}},
		{"double quoted", `["1.00", "2.00"]`, Range{1, 2}},
		{"bare numbers", "[1.4, 2.25]", Range{1.4, 2.25}},
		{"mixed quotes", `['1.5", "3']`, Range{1.5, 3}},
		{"whitespace", "  [ ' 0.5 ' ,2 ]  ", Range{0.5, 2}},
		{"negative and exponent", "[-1e0, 2E0]", Range{-1, 2}},
		{"inverted kept as is", "[3, 1]", Range{3, 1}},
		{"quoted loose decimals", "['.5', '+2.']", Range{0.5, 2}},
		{"quoted leading zero", "['01', '2']", Range{1, 2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.raw)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind error
	}{
		{"prose", "not a range", ErrNotArray},
		{"empty", "", ErrNotArray},
		{"object", "{'low': 1}", ErrNotArray},
		{"empty list", "[]", ErrElementCount},
		{"one element", "['1.0']", ErrElementCount},
		{"three elements", "[1, 2, 3]", ErrElementCount},
		{"word element", "['low', 'high']", ErrNotNumeric},
		{"empty quoted", "['', '2']", ErrNotNumeric},
		{"nan", "['NaN', '2']", ErrNotNumeric},
		{"unterminated quote", "['1.0, 2.0]", ErrNotArray},
		{"unclosed list", "[1, 2", ErrNotArray},
		{"trailing garbage", "[1, 2] extra", ErrTrailing},
		{"missing comma", "[1 2]", ErrNotNumeric},
		{"bare leading point", "[.5, 2]", ErrNotNumeric},
		{"bare plus sign", "[+1, 2]", ErrNotNumeric},
		{"bare trailing point", "[1., 2]", ErrNotNumeric},
		{"bare leading zero", "[01, 2]", ErrNotNumeric},
		{"quoted underscore", "['1_0', 2]", ErrNotNumeric},
		{"quoted hex float", "['0x1p0', 2]", ErrNotNumeric},
		{"quoted hex", "['0x10', 2]", ErrNotNumeric},
		{"quoted infinity", "['Infinity', 2]", ErrNotNumeric},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.kind), "got %v; want kind %v", err, c.kind)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, c.raw, pe.Input)
		})
	}
}

func TestDisplay(t *testing.T) {
	raw := "['1.4', '2']"
	bad := "bad"

	assert.Equal(t, "[1.40, 2.00]", Display(&raw))
	assert.Equal(t, NotAvailable, Display(&bad))
	assert.Equal(t, NotAvailable, Display(nil))
}
