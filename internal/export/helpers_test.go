package export

import "github.com/mattn/go-runewidth"

func width(s string) int {
	return runewidth.StringWidth(s)
}
