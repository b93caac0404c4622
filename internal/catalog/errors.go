package catalog

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrSourceNotConfigured is returned when a catalog has no source location.
var ErrSourceNotConfigured = errors.New("catalog source not configured")

var (
	// ErrPackNotFound is returned by lookups when no pack has the given id.
	ErrPackNotFound = errors.New("pack not found")

	// ErrUnitNotFound is returned by lookups when no unit matches the slug.
	ErrUnitNotFound = errors.New("unit not found")
)

// RetrievalError reports that the source document could not be read.
type RetrievalError struct {
	Kind     Kind
	Location string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s catalog from %s: %v", e.Kind, RedactLocation(e.Location), e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// RedactLocation drops the query string and credentials from a location so
// it can be logged. Published sheet URLs may carry access tokens there.
func RedactLocation(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return location
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}
