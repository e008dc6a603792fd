package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a package or version is not found.
	ErrNotFound = errors.New("not found")

	// ErrMalformedFeedEntry is wrapped by every MalformedFeedEntryError.
	ErrMalformedFeedEntry = errors.New("malformed feed entry")

	// ErrSchemaViolation is wrapped by every SchemaViolationError.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDigestMismatch is wrapped by every DigestMismatchError.
	ErrDigestMismatch = errors.New("digest mismatch")
)

// MalformedFeedEntryError is returned when a feed item lacks a required
// field, has an unsplittable title or an unparseable publication date.
type MalformedFeedEntryError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedFeedEntryError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("malformed feed entry: %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("malformed feed entry: %s: %s", e.Field, e.Reason)
}

func (e *MalformedFeedEntryError) Unwrap() error {
	return ErrMalformedFeedEntry
}

// SchemaViolationError is returned when a package description document is
// missing a required key, has a key of the wrong type, or carries a
// timestamp that does not parse. Path is the JSON path of the offending
// value, e.g. "urls[0].upload_time".
type SchemaViolationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema violation at %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Path, e.Reason)
}

func (e *SchemaViolationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSchemaViolation, e.Err}
	}
	return []error{ErrSchemaViolation}
}

// PackageNotFoundError is returned when the index has no document for the
// requested package, or for the requested version of it.
type PackageNotFoundError struct {
	Name    string
	Version string // empty when the lookup was not pinned
}

func (e *PackageNotFoundError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("pypi: package %s version %s not found", e.Name, e.Version)
	}
	return fmt.Sprintf("pypi: package %s not found", e.Name)
}

func (e *PackageNotFoundError) Unwrap() error {
	return ErrNotFound
}

// DigestMismatchError is returned when downloaded content does not match a
// published digest.
type DigestMismatchError struct {
	Algorithm string
	Want      string
	Got       string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("%s digest mismatch: want %s, got %s", e.Algorithm, e.Want, e.Got)
}

func (e *DigestMismatchError) Unwrap() error {
	return ErrDigestMismatch
}
