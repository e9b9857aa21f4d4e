// Package colorutil は WCAG 2.x のコントラスト比と、それを満たす色の調整。
package colorutil

import "math"

// DefaultMinRatio は WCAG AA の本文テキスト基準。
const DefaultMinRatio = 4.5

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

func channel(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance は相対輝度 (0 = 黒, 1 = 白)。
func (c RGB) Luminance() float64 {
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// ContrastRatio returns the WCAG contrast ratio, from 1 to 21.
func ContrastRatio(fg, bg RGB) float64 {
	hi, lo := fg.Luminance(), bg.Luminance()
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// Mix moves c toward target by t (0 keeps c, 1 yields target).
func Mix(c, target RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return RGB{lerp(c.R, target.R), lerp(c.G, target.G), lerp(c.B, target.B)}
}

// EnsureContrast returns fg unchanged when it already reaches minRatio
// against bg. Otherwise fg is mixed toward black or white, whichever is
// further from bg, in 5% steps until the ratio holds. The hue survives as
// long as possible; the worst case is pure black or white.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = DefaultMinRatio
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	target := White
	if ContrastRatio(Black, bg) > ContrastRatio(White, bg) {
		target = Black
	}
	for step := 1; step < 20; step++ {
		if c := Mix(fg, target, float64(step)/20); ContrastRatio(c, bg) >= minRatio {
			return c
		}
	}
	return target
}
