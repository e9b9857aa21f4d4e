package config

import "strings"

// MergeScan applies layers over base in order; later layers win.
func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Methods = ResolveStrings(out.Methods, layer.Methods)
		out.Root = ResolveAndTrim(out.Root, layer.Root)
		out.SourceRoot = ResolveAndTrim(out.SourceRoot, layer.SourceRoot)
		out.Extensions = ResolveStrings(out.Extensions, layer.Extensions)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.SkipUnreadable = ResolveBool(out.SkipUnreadable, layer.SkipUnreadable)
	}
	return out
}

func MergeOutput(base OutputSettings, layers ...OutputConfig) OutputSettings {
	out := base
	for _, layer := range layers {
		out.Format = ResolveAndTrim(out.Format, layer.Format)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
		out.LogLevel = ResolveAndTrim(out.LogLevel, layer.LogLevel)
		out.FailOnFindings = ResolveBool(out.FailOnFindings, layer.FailOnFindings)
	}
	if strings.TrimSpace(out.Format) == "" {
		out.Format = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

func ResolveInt(def int, values ...*int) int {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveBool(def bool, values ...*bool) bool {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveStrings returns the last non-nil list. An explicitly empty list clears the value.
func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v != nil {
			if len(*v) == 0 {
				result = []string{}
				continue
			}
			result = cloneStrings(*v)
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return strings.TrimSpace(result)
}
