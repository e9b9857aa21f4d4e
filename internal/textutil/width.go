// Package textutil measures and fits text in terminal cells.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI and OSC escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes CSI and OSC escape sequences.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// cluster is one grapheme and the cells it occupies.
type cluster struct {
	text  string
	width int
}

func clusters(s string) []cluster {
	var out []cluster
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		str := g.Str()
		out = append(out, cluster{text: str, width: runewidth.StringWidth(str)})
	}
	return out
}

// VisibleWidth returns the terminal width of s, ignoring escape sequences
// and counting each grapheme cluster once.
func VisibleWidth(s string) int {
	w := 0
	for _, c := range clusters(s) {
		w += c.width
	}
	return w
}

// TruncateLeftByWidth keeps the tail of s within w cells, prefixing ellipsis
// when something was dropped, so a path keeps its file name. Graphemes are
// never split. An ellipsis wider than w is left out.
func TruncateLeftByWidth(s string, w int, ellipsis string) string {
	if w <= 0 {
		return ""
	}
	cs := clusters(s)
	total := 0
	for _, c := range cs {
		total += c.width
	}
	if total <= w {
		return StripANSI(s)
	}
	budget := w - runewidth.StringWidth(ellipsis)
	if budget <= 0 {
		ellipsis, budget = "", w
	}
	cut := len(cs)
	for used := 0; cut > 0 && used+cs[cut-1].width <= budget; cut-- {
		used += cs[cut-1].width
	}
	var b strings.Builder
	b.WriteString(ellipsis)
	for _, c := range cs[cut:] {
		b.WriteString(c.text)
	}
	return b.String()
}

// PadRight pads s with spaces up to w visible cells.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft right-aligns s in w visible cells.
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
