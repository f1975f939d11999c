package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validator is the interface for validating configuration.
type Validator interface {
	Validate() error
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates Config.
func (c *Config) Validate() error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if c.Version == "" {
		add("version", "version is required")
	}

	if c.Backend.URL == "" {
		add("backend.url", "backend url is required")
	} else if u, err := url.Parse(c.Backend.URL); err != nil {
		add("backend.url", fmt.Sprintf("invalid url: %v", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("backend.url", "must be an absolute http or https url")
	}

	if c.Backend.Timeout < 0 {
		add("backend.timeout", "timeout cannot be negative")
	}

	switch {
	case c.Export.Filename == "":
		add("export.filename", "filename is required")
	case filepath.Base(c.Export.Filename) != c.Export.Filename || c.Export.Filename == "." || c.Export.Filename == "..":
		add("export.filename", "filename must not contain path separators")
	}

	if c.Export.Dir == "" {
		add("export.dir", "directory is required")
	}

	if !validLevels[strings.ToLower(c.Logging.Level)] {
		add("logging.level", "must be one of trace, debug, info, warn, error")
	}

	if len(errs) > 0 {
		return &MultiValidationError{Errors: errs}
	}
	return nil
}
