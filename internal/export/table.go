package export

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnSeparator = " | "

// PathHeader is the header of the table printed by PathTable.
var PathHeader = append([]string{"Path"}, Header...)

// PaddedTable renders rows under Header with every column padded to its
// widest cell and a dashed separator after the header.
func PaddedTable(rows []Row, pipes bool) string {
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.Cells())
	}
	return renderTable(Header, lines, pipes)
}

// PathTable is PaddedTable with a leading column holding each entry's
// path, for commands that take a path argument.
func PathTable(rows []Row, pipes bool) string {
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, append([]string{r.Path}, r.Cells()...))
	}
	return renderTable(PathHeader, lines, pipes)
}

func renderTable(header []string, rows [][]string, pipes bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, cells := range rows {
		for i, c := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}

	var b strings.Builder
	writeLine(&b, header, widths, pipes)
	writeLine(&b, separator, widths, pipes)
	for _, cells := range rows {
		writeLine(&b, cells, widths, pipes)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int, pipes bool) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = runewidth.FillRight(c, widths[i])
	}
	line := strings.Join(padded, columnSeparator)
	if pipes {
		line = "| " + line + " |"
	}
	b.WriteString(line)
	b.WriteByte('\n')
}
