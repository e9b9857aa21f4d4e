package config

import (
	"strings"

	"github.com/phyten/emptymon/internal/engine"
	"github.com/phyten/emptymon/internal/model"
)

// ScanConfig holds scan settings from one layer. Nil means "not set here".
type ScanConfig struct {
	Methods        *[]string `yaml:"methods" toml:"methods" json:"methods"`
	Root           *string   `yaml:"root" toml:"root" json:"root"`
	SourceRoot     *string   `yaml:"source_root" toml:"source_root" json:"source_root"`
	Extensions     *[]string `yaml:"ext" toml:"ext" json:"ext"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	SkipUnreadable *bool     `yaml:"skip_unreadable" toml:"skip_unreadable" json:"skip_unreadable"`
}

// OutputConfig holds presentation settings from one layer.
type OutputConfig struct {
	Format         *string `yaml:"format" toml:"format" json:"format"`
	Color          *string `yaml:"color" toml:"color" json:"color"`
	Fields         *string `yaml:"fields" toml:"fields" json:"fields"`
	LogLevel       *string `yaml:"log_level" toml:"log_level" json:"log_level"`
	FailOnFindings *bool   `yaml:"fail_on_findings" toml:"fail_on_findings" json:"fail_on_findings"`
}

type Config struct {
	Scan   ScanConfig   `yaml:"scan" toml:"scan" json:"scan"`
	Output OutputConfig `yaml:"output" toml:"output" json:"output"`
}

type ScanSettings struct {
	Methods        []string
	Root           string
	SourceRoot     string
	Extensions     []string
	Excludes       []string
	Jobs           int
	MaxFileBytes   int
	SkipUnreadable bool
}

type OutputSettings struct {
	Format         string
	Color          string
	Fields         string
	LogLevel       string
	FailOnFindings bool
}

func ScanSettingsFromOptions(opts engine.Options) ScanSettings {
	methods := make([]string, 0, len(opts.Methods))
	for _, m := range opts.Methods {
		methods = append(methods, string(m))
	}
	return ScanSettings{
		Methods:        methods,
		Root:           opts.Root,
		SourceRoot:     opts.SourceRoot,
		Extensions:     cloneStrings(opts.Extensions),
		Excludes:       cloneStrings(opts.Excludes),
		Jobs:           opts.Jobs,
		MaxFileBytes:   opts.MaxFileBytes,
		SkipUnreadable: opts.SkipUnreadable,
	}
}

// ApplyToOptions copies the merged settings into opts. Method names are
// passed through as-is; NormalizeAndValidate rejects unknown ones.
func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Methods = make([]model.MethodName, 0, len(s.Methods))
	for _, m := range s.Methods {
		opts.Methods = append(opts.Methods, model.MethodName(m))
	}
	if trimmed := strings.TrimSpace(s.Root); trimmed != "" {
		opts.Root = trimmed
	}
	opts.SourceRoot = strings.TrimSpace(s.SourceRoot)
	opts.Extensions = cloneStrings(s.Extensions)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.Jobs = s.Jobs
	opts.MaxFileBytes = s.MaxFileBytes
	opts.SkipUnreadable = s.SkipUnreadable
}

func DefaultOutputSettings() OutputSettings {
	return OutputSettings{
		Format:         "table",
		Color:          "auto",
		Fields:         "",
		LogLevel:       "info",
		FailOnFindings: false,
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
