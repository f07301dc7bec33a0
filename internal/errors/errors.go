// Package errors provides standardized error handling for camsort.
// It defines the classification failure taxonomy, constants, and helper
// functions for consistent error creation, wrapping, and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Kind represents the kind of error.
type Kind int

const (
	Unknown Kind = iota
	// MetadataUnavailable means the metadata provider itself failed
	// (launch failure, malformed output, timeout). The file is treated
	// as having no tags.
	MetadataUnavailable
	// NoModelTag means metadata was read but carried no camera model tag.
	NoModelTag
	// UnmappedModel means a model tag was read but has no canonical mapping.
	UnmappedModel
	// DateUnresolvable means all capture date sources failed.
	DateUnresolvable
	// HashFailure means a file could not be read for digesting.
	HashFailure
	// DestinationCollision means a same-name, different-content file
	// already occupies the target path.
	DestinationCollision
	// FilesystemError is a generic I/O failure during move or create.
	FilesystemError
	// InvalidConfig means the configuration could not be used.
	InvalidConfig
)

// ClassifyError is the error type for all per-file classification failures.
// It carries the file path so log lines can locate the file.
type ClassifyError struct {
	msg  string
	path string
	kind Kind
	err  error
}

// New creates a ClassifyError of the given kind for a file.
func New(kind Kind, path, msg string) *ClassifyError {
	return &ClassifyError{msg: msg, path: path, kind: kind}
}

// Wrap creates a ClassifyError of the given kind wrapping an underlying error.
func Wrap(kind Kind, path, msg string, err error) *ClassifyError {
	return &ClassifyError{msg: msg, path: path, kind: kind, err: err}
}

// Newf creates an unclassified error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return &ClassifyError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Error returns the error message.
func (e *ClassifyError) Error() string {
	switch {
	case e.path != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	case e.path != "":
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error.
func (e *ClassifyError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error.
func (e *ClassifyError) Kind() Kind {
	return e.kind
}

// Path returns the file path associated with the error.
func (e *ClassifyError) Path() string {
	return e.path
}

// KindOf returns the Kind of err, or Unknown for foreign errors.
func KindOf(err error) Kind {
	var ce *ClassifyError
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return Unknown
}

// IsMetadataUnavailable checks whether err is a metadata provider failure.
func IsMetadataUnavailable(err error) bool {
	return KindOf(err) == MetadataUnavailable
}

// IsNoModelTag checks whether err reports an absent model tag.
func IsNoModelTag(err error) bool {
	return KindOf(err) == NoModelTag
}

// IsUnmappedModel checks whether err reports a model tag with no mapping.
func IsUnmappedModel(err error) bool {
	return KindOf(err) == UnmappedModel
}

// IsDateUnresolvable checks whether err reports a total date resolution failure.
func IsDateUnresolvable(err error) bool {
	return KindOf(err) == DateUnresolvable
}

// IsHashFailure checks whether err reports an unreadable file during digesting.
func IsHashFailure(err error) bool {
	return KindOf(err) == HashFailure
}

// IsDestinationCollision checks whether err reports a name collision with
// different content at the target path.
func IsDestinationCollision(err error) bool {
	return KindOf(err) == DestinationCollision
}

// IsFilesystemError checks whether err reports a generic I/O failure.
func IsFilesystemError(err error) bool {
	return KindOf(err) == FilesystemError
}

// IsInvalidConfig checks whether err reports unusable configuration.
func IsInvalidConfig(err error) bool {
	return KindOf(err) == InvalidConfig
}
