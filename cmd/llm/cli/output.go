package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgCyan)
	outputStyle  = color.New(color.FgGreen)
	removedStyle = color.New(color.FgRed)
	borderStyle  = color.New(color.FgWhite, color.Faint)
	mutedStyle   = color.New(color.FgHiBlack)
)

const (
	boxHorizontal = "─"
	bullet        = "•"
	checkmark     = "✓"
	xmark         = "✗"
)

// stripANSI removes ANSI escape sequences from text for length calculation
func stripANSI(text string) string {
	result := strings.Builder{}
	inEscape := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			i++
			continue
		}

		if inEscape {
			// Sequences end at the first letter.
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}

		result.WriteRune(r)
	}

	return result.String()
}

// displayWidth calculates the display width of text, ignoring color codes
// and counting wide characters twice.
func displayWidth(text string) int {
	return runewidth.StringWidth(stripANSI(text))
}

// padRight pads text with spaces to width display columns.
func padRight(text string, width int) string {
	if w := displayWidth(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// table renders aligned columns. Cells may contain color codes.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	header := make([]string, len(t.header))
	rule := make([]string, len(t.header))
	for i, h := range t.header {
		header[i] = padRight(headerStyle.Sprint(h), widths[i])
		rule[i] = strings.Repeat(boxHorizontal, widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " "))
	fmt.Fprintln(w, borderStyle.Sprint(strings.Join(rule, "  ")))

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(widths) {
				cell = padRight(cell, widths[i])
			}
			cells[i] = cell
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
