package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/emptymon/internal/engine/opts"
)

const (
	sectionScan   = "scan"
	sectionOutput = "output"
)

// configKey is one accepted key. Keys are matched after normalizeKey, so
// "max-file-bytes" and "Max_File_Bytes" both hit max_file_bytes.
type configKey struct {
	section string
	names   []string // canonical name first, then aliases
	set     func(cfg *Config, value any, name string) error
}

var configKeys = []configKey{
	{sectionScan, []string{"methods", "method"}, func(c *Config, v any, n string) error {
		return setList(&c.Scan.Methods, v, n)
	}},
	{sectionScan, []string{"root", "dir"}, func(c *Config, v any, n string) error {
		return setString(&c.Scan.Root, v, n, false)
	}},
	{sectionScan, []string{"source_root"}, func(c *Config, v any, n string) error {
		return setString(&c.Scan.SourceRoot, v, n, false)
	}},
	{sectionScan, []string{"ext", "exts", "extensions"}, func(c *Config, v any, n string) error {
		return setList(&c.Scan.Extensions, v, n)
	}},
	{sectionScan, []string{"exclude", "excludes"}, func(c *Config, v any, n string) error {
		return setList(&c.Scan.Excludes, v, n)
	}},
	{sectionScan, []string{"jobs"}, func(c *Config, v any, n string) error {
		return setInt(&c.Scan.Jobs, v, n)
	}},
	{sectionScan, []string{"max_file_bytes", "max_bytes"}, func(c *Config, v any, n string) error {
		return setInt(&c.Scan.MaxFileBytes, v, n)
	}},
	{sectionScan, []string{"skip_unreadable"}, func(c *Config, v any, n string) error {
		return setBool(&c.Scan.SkipUnreadable, v, n)
	}},
	{sectionOutput, []string{"format", "output"}, func(c *Config, v any, n string) error {
		return setString(&c.Output.Format, v, n, true)
	}},
	{sectionOutput, []string{"color"}, func(c *Config, v any, n string) error {
		return setString(&c.Output.Color, v, n, true)
	}},
	{sectionOutput, []string{"fields"}, func(c *Config, v any, n string) error {
		return setString(&c.Output.Fields, v, n, false)
	}},
	{sectionOutput, []string{"log_level"}, func(c *Config, v any, n string) error {
		return setString(&c.Output.LogLevel, v, n, false)
	}},
	{sectionOutput, []string{"fail_on_findings"}, func(c *Config, v any, n string) error {
		return setBool(&c.Output.FailOnFindings, v, n)
	}},
}

func lookupKey(section, key string) (configKey, bool) {
	norm := normalizeKey(key)
	for _, k := range configKeys {
		if section != "" && k.section != section {
			continue
		}
		for _, name := range k.names {
			if name == norm {
				return k, true
			}
		}
	}
	return configKey{}, false
}

type decodeFunc func([]byte, any) error

var decoders = map[string]decodeFunc{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".toml": toml.Unmarshal,
	".json": json.Unmarshal,
}

// Load reads a YAML, TOML or JSON config file, chosen by extension.
// An empty path yields an empty Config.
//
// Keys may be grouped under "scan" and "output" sections or written flat.
// A string value for "output" is the output format.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return cfg, fmt.Errorf("%s: unsupported config extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var raw map[string]any
	if err := decode(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := decodeConfigMap(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfigMap(raw map[string]any, cfg *Config) error {
	for key, value := range raw {
		switch section := normalizeKey(key); section {
		case sectionScan, sectionOutput:
			if s, ok := value.(string); ok && section == sectionOutput {
				if err := setString(&cfg.Output.Format, s, "output", true); err != nil {
					return err
				}
				continue
			}
			sub, err := toStringKeyMap(value)
			if err != nil {
				return fmt.Errorf("%s: %w", section, err)
			}
			for subKey, subValue := range sub {
				k, ok := lookupKey(section, subKey)
				if !ok {
					return fmt.Errorf("unknown %s key: %s", section, subKey)
				}
				if err := k.set(cfg, subValue, k.names[0]); err != nil {
					return fmt.Errorf("%s: %w", section, err)
				}
			}
		default:
			k, ok := lookupKey("", key)
			if !ok {
				return fmt.Errorf("unknown config key: %s", key)
			}
			if err := k.set(cfg, value, k.names[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

func setString(dst **string, value any, name string, trim bool) error {
	s, err := asString(value, name)
	if err != nil {
		return err
	}
	if trim {
		s = strings.TrimSpace(s)
	}
	*dst = &s
	return nil
}

func setList(dst **[]string, value any, name string) error {
	var items []string
	switch v := value.(type) {
	case string:
		items = engineopts.SplitMulti([]string{v})
	case []any:
		for _, item := range v {
			s, err := asString(item, name)
			if err != nil {
				return err
			}
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
	default:
		return fmt.Errorf("expected string or list for %s, got %T", name, value)
	}
	if items == nil {
		items = []string{}
	}
	*dst = &items
	return nil
}

func setInt(dst **int, value any, name string) error {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
		n = int(v)
	case uint64:
		if v > math.MaxInt {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return fmt.Errorf("expected integer for %s, got %v", name, v)
		}
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %q", name, v)
		}
		n = parsed
	default:
		return fmt.Errorf("expected integer for %s, got %T", name, value)
	}
	*dst = &n
	return nil
}

func setBool(dst **bool, value any, name string) error {
	var b bool
	switch v := value.(type) {
	case bool:
		b = v
	case string:
		parsed, err := engineopts.ParseBool(v, name)
		if err != nil {
			return err
		}
		b = parsed
	default:
		return fmt.Errorf("expected bool for %s, got %T", name, value)
	}
	*dst = &b
	return nil
}

func asString(value any, name string) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("%s cannot be null", name)
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("expected string for %s, got %T", name, value)
	}
}

// toStringKeyMap は YAML の map[any]any も受け付ける
func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
