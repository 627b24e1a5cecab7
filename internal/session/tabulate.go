package session

import (
	"strings"
	"text/tabwriter"

	"github.com/jask/spantag/internal/annotate"
)

// Tabulate renders rows as a plain table: left-aligned columns separated by
// two spaces, one row per line, no trailing whitespace.
func Tabulate(rows []annotate.Row) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		cells := append([]string{r.Word}, r.Labels...)
		_, _ = w.Write([]byte(strings.Join(cells, "\t") + "\n"))
	}
	_ = w.Flush()

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
