package colorutil

import (
	"math"
	"testing"
)

func TestContrastRatio(t *testing.T) {
	if got := ContrastRatio(Black, White); math.Abs(got-21) > 0.01 {
		t.Fatalf("black on white should be 21:1, got %.2f", got)
	}
	if got := ContrastRatio(White, White); got != 1 {
		t.Fatalf("same colour should be 1:1, got %.2f", got)
	}
	fg, bg := RGB{185, 28, 28}, RGB{255, 255, 255}
	if ContrastRatio(fg, bg) != ContrastRatio(bg, fg) {
		t.Fatal("ratio should not depend on argument order")
	}
}

func TestMix(t *testing.T) {
	c := RGB{100, 200, 50}
	if got := Mix(c, Black, 0); got != c {
		t.Fatalf("t=0 should keep the colour, got %v", got)
	}
	if got := Mix(c, White, 2); got != White {
		t.Fatalf("t is clamped to 1, got %v", got)
	}
	if got := Mix(RGB{0, 0, 0}, RGB{200, 100, 50}, 0.5); got != (RGB{100, 50, 25}) {
		t.Fatalf("unexpected midpoint %v", got)
	}
}

func TestEnsureContrast(t *testing.T) {
	cases := []struct {
		name string
		fg   RGB
		bg   RGB
	}{
		{"green on light", RGB{74, 222, 128}, RGB{249, 250, 251}},
		{"cyan on light", RGB{34, 211, 238}, RGB{249, 250, 251}},
		{"navy on dark", RGB{30, 41, 90}, RGB{17, 24, 39}},
		{"red on white", RGB{255, 0, 0}, White},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EnsureContrast(tc.fg, tc.bg, 0)
			if ratio := ContrastRatio(got, tc.bg); ratio < DefaultMinRatio {
				t.Fatalf("EnsureContrast(%v) = %v with ratio %.2f", tc.fg, got, ratio)
			}
		})
	}
}

func TestEnsureContrastKeepsReadableColor(t *testing.T) {
	bg := RGB{17, 24, 39}
	fg := RGB{74, 222, 128}
	if got := EnsureContrast(fg, bg, 0); got != fg {
		t.Fatalf("readable colour should be kept, got %v", got)
	}
}

func TestEnsureContrastMovesAwayFromBackground(t *testing.T) {
	got := EnsureContrast(RGB{30, 41, 90}, RGB{17, 24, 39}, 0)
	if got.Luminance() <= (RGB{30, 41, 90}).Luminance() {
		t.Fatalf("on a dark background the colour should get lighter, got %v", got)
	}
}
