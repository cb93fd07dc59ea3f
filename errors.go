package esincss

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrConfig indicates a malformed VariableOptions value
	ErrConfig = errors.New("invalid variable options")

	// ErrName indicates a variable name was rejected by the name pattern
	ErrName = errors.New("invalid variable name")
)

// ConfigError reports a custom name pattern that is not anchored at both ends.
type ConfigError struct {
	Pattern string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("custom variable name pattern %q must check the whole name (i.e. start with a `^` and end with a `$`)", e.Pattern)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// NameError reports a variable name that does not match the active pattern.
type NameError struct {
	Name    string
	Pattern string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("only CSS variable names matching %s are allowed\ndisallowed name: %q", e.Pattern, e.Name)
}

func (e *NameError) Unwrap() error {
	return ErrName
}
