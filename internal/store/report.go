package store

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const terminalWidthBackup = 80

// FormatRuns renders run history as an aligned text table, clipping model
// paths so rows fit the terminal.
func FormatRuns(runs []Run) []string {
	pathWidth := terminalWidth() / 3
	if pathWidth < 12 {
		pathWidth = 12
	}

	headers := []string{"WHEN", "KIND", "MODEL", "TRIANGLES", "LAYERS", "SEGMENTS", "EVENTS", "TIME"}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Kind,
			clipPath(r.ModelFile, pathWidth),
			fmt.Sprintf("%d", r.Triangles),
			fmt.Sprintf("%d", r.Layers),
			fmt.Sprintf("%d", r.Segments),
			fmt.Sprintf("%d", r.Events),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
		})
	}
	return formatTable(headers, rows, rightAlign)
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return terminalWidthBackup
	}
	return w
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := utf8.RuneCountInString(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlign))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign map[int]bool) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := w - utf8.RuneCountInString(cell)
		if pad < 0 {
			pad = 0
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if rightAlign[i] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			continue
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

// clipPath shortens a path from the left so its tail stays readable
func clipPath(p string, max int) string {
	if max <= 1 || utf8.RuneCountInString(p) <= max {
		return p
	}
	runes := []rune(p)
	return "…" + string(runes[len(runes)-(max-1):])
}
