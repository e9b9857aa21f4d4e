package engine

import "strings"

// LineNumber は offset より前にある '\n' の数に 1 を足した行番号を返します。
// '\r' のみの改行は数えません。
func LineNumber(text string, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}
