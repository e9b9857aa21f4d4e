package termcolor

import (
	"strconv"
	"strings"

	"github.com/phyten/emptymon/internal/colorutil"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// Background は配色判定用の代表的な背景色。
func (s Scheme) Background() colorutil.RGB {
	if s == SchemeLight {
		return colorutil.RGB{R: 249, G: 250, B: 251}
	}
	return colorutil.RGB{R: 17, G: 24, B: 39}
}

func (s Scheme) String() string {
	switch s {
	case SchemeLight:
		return "light"
	case SchemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// DetectScheme guesses the terminal background. COLORFGBG ("fg;bg" or
// "fg;default;bg") is trusted first, where bg 7 and up is a light palette
// entry; then a TERM name containing "light". Anything else is dark.
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func colorfgbgBackground(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	for i := len(parts) - 1; i >= 1; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			bg, err := strconv.Atoi(p)
			return bg, err == nil && bg >= 0
		}
	}
	return 0, false
}
