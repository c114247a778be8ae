package core

import (
	"github.com/mattn/go-runewidth"
)

// ClusterWidth returns the display width in cells of one extended
// grapheme cluster. Control characters and zero-width clusters report
// zero; everything visible reports 1 or 2.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	if cluster == "\t" {
		// Tabs are expanded by the typesetter, not measured here.
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		w = 2
	}
	return w
}
