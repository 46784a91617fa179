// Package errs defines the error kinds the rest of the module wraps
// with github.com/pkg/errors when they cross a package boundary.
package errs

import "fmt"

// FormatError marks an invalid record: a byte outside {A,C,G,T} (case
// insensitive), or a malformed FASTA/FASTQ line.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

// NewFormatError builds a FormatError with a formatted message.
func NewFormatError(format string, args ...interface{}) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// LengthError marks an internal contract violation: a packed comparison
// was asked to handle a slice longer than 8 bytes.
type LengthError struct {
	Msg string
}

func (e *LengthError) Error() string { return e.Msg }

// NewLengthError builds a LengthError with a formatted message.
func NewLengthError(format string, args ...interface{}) *LengthError {
	return &LengthError{Msg: fmt.Sprintf(format, args...)}
}

// ConfigError marks a rejected configuration parameter.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// IoError marks a failed upstream read or downstream write.
type IoError struct {
	Msg string
}

func (e *IoError) Error() string { return e.Msg }

// NewIoError builds an IoError with a formatted message.
func NewIoError(format string, args ...interface{}) *IoError {
	return &IoError{Msg: fmt.Sprintf(format, args...)}
}
