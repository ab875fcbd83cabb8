package main

import (
	"io"
	"strconv"

	"adam/ilrrange"
	"adam/session"
	"adam/types"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const maxTitleWidth = 60

var articleHeaders = []string{"#", "Level", "Title", "ILR Range", "Link"}

// renderArticles prints the current page as a table
func renderArticles(w io.Writer, v session.View) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	rows := make([][]string, 0, len(v.Articles))
	for i, a := range v.Articles {
		level := ilrrange.NotAvailable
		if a.ILRQuantized != nil {
			level = *a.ILRQuantized
		}
		rows = append(rows, []string{
			strconv.Itoa(v.FirstIndex + i + 1),
			level,
			truncate(types.Value(a.Title), maxTitleWidth),
			ilrrange.Display(a.ILRRange),
			types.Value(a.Link),
		})
	}

	table.Header(articleHeaders)
	_ = table.Bulk(rows)
	_ = table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
