package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error kinds attached to errors with goerr.T and checked with goerr.HasTag
var (
	// ErrTagTransport marks a response whose status code is outside the 2xx class
	ErrTagTransport = goerr.NewTag("transport")
	// ErrTagNetwork marks connection-level failures (DNS, timeout, reset)
	ErrTagNetwork = goerr.NewTag("network")
	// ErrTagDecode marks a response body that is not valid transport-encoded content
	ErrTagDecode = goerr.NewTag("decode")
	// ErrTagIO marks local directory creation or file write failures
	ErrTagIO = goerr.NewTag("io")
	// ErrTagManifest marks an invalid manifest document or entry
	ErrTagManifest = goerr.NewTag("manifest")
	// ErrTagCanceled marks work abandoned because the run was interrupted
	ErrTagCanceled = goerr.NewTag("canceled")
)

// TransportError is returned when the remote host answers with a non-success status
type TransportError struct {
	Status int
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Status, e.URL)
}

// FetchExhaustedError is returned when every allowed fetch attempt for a path failed.
// Last holds the most recent underlying error and is reachable through errors.Is/As.
type FetchExhaustedError struct {
	Path     string
	Attempts int
	Last     error
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempts: %v", e.Path, e.Attempts, e.Last)
}

func (e *FetchExhaustedError) Unwrap() error {
	return e.Last
}

// Kind returns the tag name of the first known error kind found in err, or "unknown"
func Kind(err error) string {
	switch {
	case goerr.HasTag(err, ErrTagTransport):
		return "transport"
	case goerr.HasTag(err, ErrTagNetwork):
		return "network"
	case goerr.HasTag(err, ErrTagDecode):
		return "decode"
	case goerr.HasTag(err, ErrTagIO):
		return "io"
	case goerr.HasTag(err, ErrTagManifest):
		return "manifest"
	case goerr.HasTag(err, ErrTagCanceled):
		return "canceled"
	default:
		return "unknown"
	}
}
