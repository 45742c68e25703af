package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// humanNumber groups digits: 1234567 -> "1,234,567".
func humanNumber[T ~uint32 | ~uint64 | ~int](n T) string {
	return printer.Sprintf("%d", n)
}

// humanParams abbreviates a parameter count: 7241732096 -> "7.2B".
func humanParams(n uint64) string {
	switch {
	case n >= 1e12:
		return printer.Sprintf("%.1fT", float64(n)/1e12)
	case n >= 1e9:
		return printer.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1e6:
		return printer.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1e3:
		return printer.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return printer.Sprintf("%d", n)
	}
}

// humanBytes formats a byte count with binary units.
func humanBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// truncate shortens s to at most width display cells.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	if len(header) > 0 {
		table.SetHeader(header)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeaderLine(false)
	}
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}
