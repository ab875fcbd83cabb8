package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"adam/types"
)

// DecodeFile decodes a record file by extension: .json as an array of
// objects, anything else as CSV with a header row.
func DecodeFile(name string, r io.Reader) ([]types.Record, error) {
	if strings.EqualFold(path.Ext(name), ".json") {
		return DecodeJSON(r)
	}
	return DecodeCSV(r)
}

// DecodeCSV reads records using the first row as the schema. Blank lines
// are skipped, short rows leave the missing fields absent and extra cells
// are dropped.
func DecodeCSV(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []types.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if len(row) == 1 && row[0] == "" {
			continue
		}

		rec := make(types.Record, len(header))
		for i, field := range header {
			if i >= len(row) {
				break
			}
			rec[field] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeJSON reads an array of objects. Strings are kept as is, other
// scalars are formatted, nulls are absent and nested values are kept as
// compact JSON text.
func DecodeJSON(r io.Reader) ([]types.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode json records: %w", err)
	}

	records := make([]types.Record, 0, len(raw))
	for _, obj := range raw {
		rec := make(types.Record, len(obj))
		for k, v := range obj {
			switch val := v.(type) {
			case nil:
				continue
			case string:
				rec[k] = val
			case json.Number:
				rec[k] = val.String()
			case bool:
				rec[k] = fmt.Sprint(val)
			default:
				var buf bytes.Buffer
				enc := json.NewEncoder(&buf)
				enc.SetEscapeHTML(false)
				if err := enc.Encode(val); err != nil {
					return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
				}
				rec[k] = strings.TrimSpace(buf.String())
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
