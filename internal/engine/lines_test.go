package engine

import (
	"strings"
	"testing"
)

func TestLineNumber(t *testing.T) {
	text := "a\nbb\n\nccc\n"
	for off := 0; off <= len(text); off++ {
		want := 1 + strings.Count(text[:off], "\n")
		if got := LineNumber(text, off); got != want {
			t.Fatalf("LineNumber(%d) = %d, want %d", off, got, want)
		}
	}
	if got := LineNumber(text, 0); got != 1 {
		t.Fatalf("offset 0 は 1 行目: got=%d", got)
	}
	if got := LineNumber(text, len(text)); got != 5 {
		t.Fatalf("末尾 offset: got=%d want=5", got)
	}
}

func TestLineNumber範囲外のオフセット(t *testing.T) {
	if got := LineNumber("a\nb", -3); got != 1 {
		t.Fatalf("負の offset: got=%d", got)
	}
	if got := LineNumber("a\nb", 100); got != 2 {
		t.Fatalf("長すぎる offset は末尾に丸める: got=%d", got)
	}
}

func TestLineNumberはCRのみの改行を数えない(t *testing.T) {
	if got := LineNumber("a\rb\rc", 4); got != 1 {
		t.Fatalf("CR のみの改行は 1 行扱い: got=%d", got)
	}
	if got := LineNumber("a\r\nb", 3); got != 2 {
		t.Fatalf("CRLF は LF で数える: got=%d", got)
	}
}
