package main

import (
	"strconv"
	"strings"

	"content-platform-be/pkg/block"
	"content-platform-be/pkg/render"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const summaryWidth = 60

func renderBlocks(doc block.Document) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "ID", "Kind", "Summary"})

	for i, b := range doc {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), b.ID, string(b.Kind), summarize(b)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: summaryWidth},
	})
	return tw.Render()
}

// summarize is the first non-empty Markdown line of a block.
func summarize(b block.Block) string {
	for _, line := range strings.Split(render.Markdown(block.Document{b}), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
