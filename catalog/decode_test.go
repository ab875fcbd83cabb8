package catalog

import (
	"strings"
	"testing"

	"adam/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	in := "\ufeffid,title,summary,ilr_quantized,ilr_range,link\n" +
		"1,Climate Change,\"Warming, oceans\",2,\"['1.00', '2.00']\",https://example.com/1\n" +
		"\n" +
		"2,Short row\n" +
		"3,Long,row,1,bad,l,extra\n"

	records, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, types.Record{
		"id":            "1",
		"title":         "Climate Change",
		"summary":       "Warming, oceans",
		"ilr_quantized": "2",
		"ilr_range":     "['1.00', '2.00']",
		"link":          "https://example.com/1",
	}, records[0])

	assert.Equal(t, types.Record{"id": "2", "title": "Short row"}, records[1])
	_, hasSummary := records[1]["summary"]
	assert.False(t, hasSummary)

	assert.Equal(t, "l", records[2]["link"])
	assert.Len(t, records[2], 6)
}

func TestDecodeCSVEmpty(t *testing.T) {
	records, err := DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = DecodeCSV(strings.NewReader("id,title\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeJSON(t *testing.T) {
	in := `[
		{"id": 7, "title": "Élection", "ilr_quantized": "3", "ilr_range": [1.5, 2.25], "link": null, "featured": true},
		{"title": "No id"}
	]`

	records, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "7", records[0]["id"])
	assert.Equal(t, "Élection", records[0]["title"])
	assert.Equal(t, "[1.5,2.25]", records[0]["ilr_range"])
	assert.Equal(t, "true", records[0]["featured"])
	_, hasLink := records[0]["link"]
	assert.False(t, hasLink)

	assert.Equal(t, types.Record{"title": "No id"}, records[1])
}

func TestDecodeJSONRejectsNonArray(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"title": "x"}`))
	assert.Error(t, err)
}

func TestDecodeFileByExtension(t *testing.T) {
	records, err := DecodeFile("french/articles.JSON", strings.NewReader(`[{"title": "a"}]`))
	require.NoError(t, err)
	assert.Equal(t, "a", records[0]["title"])

	records, err = DecodeFile("french/articles.csv", strings.NewReader("title\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "b", records[0]["title"])
}
