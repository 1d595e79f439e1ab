package bench

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TableHeader is the column header of formatted benchmark tables.
var TableHeader = []string{"Amount", "Action", "Mean", "Stddev"}

// FormatSci formats v in scientific notation with three decimals.
func FormatSci(v float64) string {
	return fmt.Sprintf("%.3e", v)
}

// Cells returns the formatted cells of rows in TableHeader order.
func Cells(rows []Row) [][]string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Amount, r.Action, FormatSci(r.Mean), FormatSci(r.Stddev)}
	}
	return cells
}

// WriteLaTeX writes rows as a LaTeX tabular environment. Cells are
// written verbatim, so labels may contain LaTeX markup.
func WriteLaTeX(w io.Writer, rows []Row) error {
	var (
		bw     = bufio.NewWriter(w)
		cells  = Cells(rows)
		widths = columnWidths(TableHeader, cells)
	)
	fmt.Fprintf(bw, "\\begin{tabular}{%s}\n", strings.Repeat("l", len(TableHeader)))
	fmt.Fprintln(bw, "\\hline")
	writeLaTeXRow(bw, TableHeader, widths)
	fmt.Fprintln(bw, "\\hline")
	for _, c := range cells {
		writeLaTeXRow(bw, c, widths)
	}
	fmt.Fprintln(bw, "\\hline")
	fmt.Fprint(bw, "\\end{tabular}")
	return bw.Flush()
}

func writeLaTeXRow(w io.Writer, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = pad(c, widths[i])
	}
	fmt.Fprintf(w, " %s \\\\\n", strings.Join(padded, " & "))
}

// WriteText writes rows as an aligned plain text table.
func WriteText(w io.Writer, rows []Row) error {
	var (
		bw     = bufio.NewWriter(w)
		cells  = Cells(rows)
		widths = columnWidths(TableHeader, cells)
	)
	writeTextRow(bw, TableHeader, widths)
	for _, c := range cells {
		writeTextRow(bw, c, widths)
	}
	return bw.Flush()
}

func writeTextRow(w io.Writer, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = pad(c, widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
}

func columnWidths(header []string, cells [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func pad(s string, w int) string {
	return s + strings.Repeat(" ", w-utf8.RuneCountInString(s))
}
