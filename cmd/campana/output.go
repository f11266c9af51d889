package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campana/internal/exporter"
	"campana/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E293B"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

// printView 以对齐的文本表格输出
func printView(w io.Writer, v report.View) {
	fmt.Fprintln(w, titleStyle.Render(v.Title))

	widths := make([]int, len(v.Columns))
	for i, c := range v.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range v.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := lipgloss.Width(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	cells := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		cells[i] = headerStyle.Render(pad(c, widths[i]))
	}
	fmt.Fprintln(w, "  "+strings.Join(cells, "  "))

	for _, row := range v.Rows {
		for i := range cells {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			cells[i] = pad(text, widths[i])
		}
		fmt.Fprintln(w, "  "+strings.Join(cells, "  "))
	}
	for _, n := range v.Notes {
		fmt.Fprintln(w, noteStyle.Render("  "+n))
	}
	fmt.Fprintln(w)
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// printTables 按格式渲染并输出全部表格
func printTables(w io.Writer, tables []report.Table, format report.FormatOptions) {
	for i, t := range tables {
		printView(w, t.Render(format, i+1))
	}
}

// progressPrinter 导出进度输出
func progressPrinter(w io.Writer) func(exporter.ProgressEvent) {
	last := -1
	return func(e exporter.ProgressEvent) {
		if e.Percent == last {
			return
		}
		last = e.Percent
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  [%3d%%] %s", e.Percent, e.Stage)))
	}
}
