package opts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phyten/emptymon/internal/engine"
	"github.com/phyten/emptymon/internal/model"
)

// maxJobs caps the worker pool.
const maxJobs = 64

// DefaultMethods mirrors the toggles that are on when the tool starts.
func DefaultMethods() []model.MethodName {
	return []model.MethodName{model.Start, model.Update}
}

// Defaults returns the baseline options shared by flags, env and config files.
func Defaults(root string) engine.Options {
	return engine.Options{
		Root:           root,
		SourceRoot:     "",
		Methods:        DefaultMethods(),
		Extensions:     append([]string(nil), engine.DefaultExtensions...),
		Excludes:       nil,
		Jobs:           1,
		MaxFileBytes:   0,
		SkipUnreadable: false,
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
// An empty method set is rejected here so the scan never starts with nothing to look for.
func NormalizeAndValidate(o *engine.Options) error {
	if len(o.Methods) == 0 {
		return fmt.Errorf("%w: at least one method must be enabled", engine.ErrInvalidRequest)
	}
	methods, err := canonicalMethods(o.Methods)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvalidRequest, err)
	}
	o.Methods = methods

	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}
	o.Root = strings.TrimSpace(o.Root)
	o.SourceRoot = strings.TrimSpace(o.SourceRoot)

	o.Extensions = NormalizeExtensions(o.Extensions)
	if len(o.Extensions) == 0 {
		o.Extensions = append([]string(nil), engine.DefaultExtensions...)
	}

	o.Excludes = trimSlice(o.Excludes)
	for _, pattern := range o.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid --exclude pattern: %q", pattern)
		}
	}

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	return nil
}

// ParseMethods turns a list of (possibly comma separated) names into canonical
// method names, keeping first-seen order. "all" expands to every known method.
func ParseMethods(vals []string) ([]model.MethodName, error) {
	var names []model.MethodName
	for _, raw := range SplitMulti(vals) {
		if strings.EqualFold(raw, "all") {
			names = append(names, "all")
			continue
		}
		m, err := model.ParseMethodName(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, m)
	}
	return canonicalMethods(names)
}

func canonicalMethods(in []model.MethodName) ([]model.MethodName, error) {
	seen := make(map[model.MethodName]struct{}, len(in))
	out := make([]model.MethodName, 0, len(in))
	for _, n := range in {
		if strings.EqualFold(strings.TrimSpace(string(n)), "all") {
			for _, m := range model.AllMethods() {
				if _, dup := seen[m]; !dup {
					seen[m] = struct{}{}
					out = append(out, m)
				}
			}
			continue
		}
		m, err := model.ParseMethodName(string(n))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// NormalizeExtensions lower-cases extensions, adds the leading dot and drops duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	var out []string
	for _, raw := range exts {
		ext := strings.ToLower(strings.TrimSpace(raw))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(raw, key string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q (want true or false)", key, raw)
}

// ParseIntInRange parses raw and checks lo <= n. hi is only enforced when hi >= lo.
func ParseIntInRange(raw, key string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	bounded := hi >= lo
	switch {
	case bounded && (n < lo || n > hi):
		return 0, fmt.Errorf("%s must be between %d and %d", key, lo, hi)
	case n < lo:
		return 0, fmt.Errorf("%s must be >= %d", key, lo)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "table":
		return "table", nil
	case "tsv", "json", "ndjson", "csv":
		return v, nil
	case "md", "markdown":
		return "markdown", nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti flattens repeated flag values that may each hold a comma
// separated list. Blank items are dropped; nothing left yields nil.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' }) {
			if part := strings.TrimSpace(piece); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// trimSlice returns a new slice so callers' backing arrays stay untouched.
func trimSlice(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
