package termcolor

import (
	"strconv"
	"strings"
)

// Style is an SGR attribute set. Only one foreground is emitted: FGTrue
// over FG256 over FGBasic.
type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// IsZero reports whether s would emit no escape codes.
func (s Style) IsZero() bool {
	return s.SGR() == ""
}

// SGR returns the parameter list of s ("1;38;5;114"), empty for the zero Style.
func (s Style) SGR() string {
	var params []string
	for _, attr := range []struct {
		on   bool
		code string
	}{{s.Bold, "1"}, {s.Dim, "2"}, {s.Underline, "4"}} {
		if attr.on {
			params = append(params, attr.code)
		}
	}
	switch {
	case s.FGTrue != nil:
		params = append(params, "38;2;"+strconv.Itoa(int(s.FGTrue[0]))+";"+
			strconv.Itoa(int(s.FGTrue[1]))+";"+strconv.Itoa(int(s.FGTrue[2])))
	case s.FG256 != nil:
		params = append(params, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		params = append(params, strconv.Itoa(30+*s.FGBasic))
	}
	return strings.Join(params, ";")
}

// Apply wraps text in s followed by a reset. Disabled, empty text or a zero
// style return text unchanged.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	sgr := s.SGR()
	if sgr == "" {
		return text
	}
	return "\x1b[" + sgr + "m" + text + "\x1b[0m"
}
