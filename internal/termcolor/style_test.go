package termcolor

import "testing"

func TestApply(t *testing.T) {
	red := 1
	boldRed := Style{Bold: true, FGBasic: &red}
	if got := Apply(boldRed, "Update", true); got != "\x1b[1;31mUpdate\x1b[0m" {
		t.Fatalf("Apply produced %q", got)
	}
	if got := Apply(Style{}, "Update", true); got != "Update" {
		t.Fatalf("zero style should return original text, got %q", got)
	}
	if got := Apply(boldRed, "Update", false); got != "Update" {
		t.Fatalf("disabled Apply should return original text, got %q", got)
	}
	if got := Apply(boldRed, "", true); got != "" {
		t.Fatalf("empty text should stay empty, got %q", got)
	}
}

func TestSGRPrecedence(t *testing.T) {
	basic, idx := 2, 114
	rgb := [3]uint8{1, 2, 3}
	s := Style{Dim: true, Underline: true, FGBasic: &basic, FG256: &idx, FGTrue: &rgb}
	if got := s.SGR(); got != "2;4;38;2;1;2;3" {
		t.Fatalf("truecolor should win: %q", got)
	}
	s.FGTrue = nil
	if got := s.SGR(); got != "2;4;38;5;114" {
		t.Fatalf("256 colour should win over basic: %q", got)
	}
	if !(Style{}).IsZero() || LineStyle().IsZero() {
		t.Fatal("IsZero mismatch")
	}
}
