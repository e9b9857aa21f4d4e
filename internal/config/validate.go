package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/emptymon/internal/engine/opts"
	"github.com/phyten/emptymon/internal/logger"
	"github.com/phyten/emptymon/internal/termcolor"
)

// NormalizeOutput canonicalises format, color and log level.
func NormalizeOutput(values OutputSettings) (OutputSettings, error) {
	var err error
	values.Format, err = engineopts.NormalizeOutput(values.Format)
	if err != nil {
		return values, err
	}
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		return values, err
	}
	values.Color = mode.String()
	values.Fields = strings.TrimSpace(values.Fields)
	if values.LogLevel != "" && !logger.ValidLevel(values.LogLevel) {
		return values, fmt.Errorf("invalid log_level: %s", values.LogLevel)
	}
	values.LogLevel = logger.NormalizeLevel(values.LogLevel)
	return values, nil
}
