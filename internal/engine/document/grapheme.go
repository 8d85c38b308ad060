package document

import "github.com/rivo/uniseg"

// graphemeLen returns the number of grapheme clusters in s.
func graphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset converts a grapheme column into a byte offset within line.
// Columns past the end of the line map to len(line).
func byteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(line)
	n := 0
	for g.Next() {
		if n == col {
			start, _ := g.Positions()
			return start
		}
		n++
	}
	return len(line)
}
