package asset

import (
	"errors"
	"fmt"

	"github.com/valerio/go-jazz/jazz/resource"
	"github.com/valerio/go-jazz/jazz/stream"
)

// LoadError is the single failure a load operation reports. It carries the
// operation, the asset name and the underlying decoder error.
type LoadError struct {
	Op   string
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %q failed (%s): %v", e.Op, e.Name, e.Kind(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Kind names the error category, e.g. "TruncatedStream" or "ResourceNotFound".
func (e *LoadError) Kind() string {
	if errors.Is(e.Err, resource.ErrNotFound) {
		return "ResourceNotFound"
	}
	if k := stream.Kind(e.Err); k != "" {
		return k
	}
	return "IOError"
}

// ErrorKind returns the kind of a LoadError anywhere in err's chain, or "".
func ErrorKind(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind()
	}
	return ""
}
