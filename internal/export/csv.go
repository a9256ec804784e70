package export

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Delimited renders one line per leaf row with fields joined by delim.
// Container and total rows are left out; there is no header.
func Delimited(rows []Row, delim rune) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = delim
	for _, r := range rows {
		if r.Container || r.Total {
			continue
		}
		if err := w.Write(r.Cells()); err != nil {
			return "", fmt.Errorf("failed to write row %q: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
