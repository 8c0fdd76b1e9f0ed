package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validOutputs = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the config for invalid values and returns all errors found.
// Dangerous zero-values are clamped to safe defaults. Validation errors are
// logged as warnings but do not prevent the command from running.
func (c *Config) Validate() []error {
	var errs []error

	if c.Output != "" && !validOutputs[strings.ToLower(c.Output)] {
		errs = append(errs, fmt.Errorf("output %q is not valid (use text, json or yaml)", c.Output))
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	// Clamp rotation settings to a sane range
	if c.LogMaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("log_max_size_mb %d is below minimum 1, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 10
	} else if c.LogMaxSizeMB > 1024 {
		errs = append(errs, fmt.Errorf("log_max_size_mb %d exceeds maximum 1024, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 1024
	}

	if c.LogMaxBackups < 0 {
		errs = append(errs, fmt.Errorf("log_max_backups %d is negative, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 3
	} else if c.LogMaxBackups > 50 {
		errs = append(errs, fmt.Errorf("log_max_backups %d exceeds maximum 50, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 50
	}

	// Log validation errors as warnings
	for _, err := range errs {
		slog.Warn("config validation", "error", err)
	}

	return errs
}
