package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/emptymon/internal/engine/opts"
)

// EnvPrefix is shared by every variable FromEnv reads.
const EnvPrefix = "EMPTYMON_"

// envBinding parses one variable into cfg. raw is already trimmed and non-empty.
type envBinding struct {
	name  string
	apply func(cfg *Config, raw, key string) error
}

var envBindings = []envBinding{
	{"METHODS", func(c *Config, raw, _ string) error { c.Scan.Methods = envList(raw); return nil }},
	{"ROOT", func(c *Config, raw, _ string) error { c.Scan.Root = &raw; return nil }},
	{"SOURCE_ROOT", func(c *Config, raw, _ string) error { c.Scan.SourceRoot = &raw; return nil }},
	{"EXT", func(c *Config, raw, _ string) error { c.Scan.Extensions = envList(raw); return nil }},
	{"EXCLUDE", func(c *Config, raw, _ string) error { c.Scan.Excludes = envList(raw); return nil }},
	// 上限は NormalizeAndValidate で見る。入力経路ごとにメッセージが変わらないように。
	{"JOBS", func(c *Config, raw, key string) error { return envInt(&c.Scan.Jobs, raw, key) }},
	{"MAX_FILE_BYTES", func(c *Config, raw, key string) error { return envInt(&c.Scan.MaxFileBytes, raw, key) }},
	{"SKIP_UNREADABLE", func(c *Config, raw, key string) error { return envBool(&c.Scan.SkipUnreadable, raw, key) }},
	{"OUTPUT", func(c *Config, raw, _ string) error { c.Output.Format = &raw; return nil }},
	{"COLOR", func(c *Config, raw, _ string) error { c.Output.Color = &raw; return nil }},
	{"FIELDS", func(c *Config, raw, _ string) error { c.Output.Fields = &raw; return nil }},
	{"LOG_LEVEL", func(c *Config, raw, _ string) error { c.Output.LogLevel = &raw; return nil }},
	{"FAIL_ON_FINDINGS", func(c *Config, raw, key string) error { return envBool(&c.Output.FailOnFindings, raw, key) }},
}

// FromEnv reads EMPTYMON_* variables through getenv. Unset or blank
// variables leave the corresponding field nil. Every invalid value is
// reported, joined into one error.
func FromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	if getenv == nil {
		return cfg, nil
	}
	var errs []error
	for _, b := range envBindings {
		key := EnvPrefix + b.name
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			continue
		}
		if err := b.apply(&cfg, raw, key); err != nil {
			errs = append(errs, err)
		}
	}
	return cfg, errors.Join(errs...)
}

// envList splits comma/space separated values. A value made only of
// separators yields an empty, non-nil list, which clears lower layers.
func envList(raw string) *[]string {
	list := engineopts.SplitMulti([]string{raw})
	if list == nil {
		list = []string{}
	}
	return &list
}

func envInt(target **int, raw, key string) error {
	v, err := engineopts.ParseIntInRange(raw, key, 0, math.MaxInt)
	if err != nil {
		return err
	}
	*target = &v
	return nil
}

func envBool(target **bool, raw, key string) error {
	v, err := engineopts.ParseBool(raw, key)
	if err != nil {
		return err
	}
	*target = &v
	return nil
}
