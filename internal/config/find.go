package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Where a config file was found, as reported by Find.
const (
	SourceExplicit = "explicit"
	SourceProject  = "cwd-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

var configExts = []string{".yaml", ".yml", ".toml", ".json"}

// Find locates the config file to load:
//
//  1. explicitPath (from --config or EMPTYMON_CONFIG), which must exist
//  2. .emptymon.{yaml,yml,toml,json} in startDir or any parent
//  3. $XDG_CONFIG_HOME/emptymon/config.* (xdgHome, else home/.config)
//  4. home/.emptymon.*
//
// It returns the path and one of the Source* constants, or empty strings
// when nothing matches. An empty home skips steps 3 and 4 unless xdgHome is set.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := checkExplicit(explicit)
		if err != nil {
			return "", "", err
		}
		return path, SourceExplicit, nil
	}

	start := strings.TrimSpace(startDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	for {
		if path := firstExisting(dir, ".emptymon"); path != "" {
			return path, SourceProject, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home = strings.TrimSpace(home)
	xdg := strings.TrimSpace(xdgHome)
	if xdg == "" && home != "" {
		xdg = filepath.Join(home, ".config")
	}
	if xdg != "" {
		if path := firstExisting(filepath.Join(xdg, "emptymon"), "config"); path != "" {
			return path, SourceXDG, nil
		}
	}
	if home != "" {
		if path := firstExisting(home, ".emptymon"); path != "" {
			return path, SourceHome, nil
		}
	}
	return "", "", nil
}

func checkExplicit(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %q points to a directory", abs)
	}
	return abs, nil
}

// firstExisting は dir/stem.<ext> を configExts の順に探す
func firstExisting(dir, stem string) string {
	for _, ext := range configExts {
		candidate := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}
