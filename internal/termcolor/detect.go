package termcolor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode is the user's --color choice.
type Mode int

const (
	ModeAuto Mode = iota
	ModeAlways
	ModeNever
)

var modeNames = map[Mode]string{
	ModeAuto:   "auto",
	ModeAlways: "always",
	ModeNever:  "never",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "auto"
}

// ParseMode accepts auto, always or never in any case. Empty means auto.
func ParseMode(v string) (Mode, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return ModeAuto, nil
	}
	for mode, name := range modeNames {
		if name == v {
			return mode, nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", v)
}

// Profile is how many colours the terminal can show.
type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// EnvMap turns os.Environ-style entries into a map. Entries without "=" map
// to the empty string.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, val, _ := strings.Cut(entry, "=")
		env[key] = val
	}
	return env
}

// envRule returns ok=false when it has no opinion.
type envRule func(env map[string]string) (enabled, ok bool)

// envRules run in order; the first decision wins. Disabling rules come
// first so NO_COLOR and TERM=dumb beat any force flag.
var envRules = []envRule{
	func(env map[string]string) (bool, bool) {
		return false, strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb")
	},
	func(env map[string]string) (bool, bool) {
		return false, strings.TrimSpace(env["NO_COLOR"]) != ""
	},
	func(env map[string]string) (bool, bool) {
		return false, strings.TrimSpace(env["CLICOLOR"]) == "0"
	},
	forceRule("CLICOLOR_FORCE"),
	forceRule("FORCE_COLOR"),
}

func forceRule(key string) envRule {
	return func(env map[string]string) (bool, bool) {
		v := strings.TrimSpace(env[key])
		return true, v != "" && v != "0"
	}
}

// Resolve decides whether output written to w gets colour. always and never
// are final. auto consults the environment, then whether w is a terminal;
// writers that are not files count as pipes.
func Resolve(mode Mode, w io.Writer, env map[string]string) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	for _, rule := range envRules {
		if enabled, decided := rule(env); decided {
			return enabled
		}
	}
	return term.IsTerminal(int(f.Fd()))
}

// DetectProfile reads COLORTERM and TERM. Unknown terminals get 8 colours.
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(env["COLORTERM"])
	for _, marker := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(colorterm, marker) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}
