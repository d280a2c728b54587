package presenter

import (
	"fmt"

	"github.com/yamlcore/yamlcore/internal/perr"
)

// OutputError wraps a write failure from the underlying io.Writer; the
// original error is preserved as Cause.
type OutputError struct {
	perr.Base
}

func (e *OutputError) Error() string { return e.Format() }

func outputErr(cause error) error {
	return &OutputError{perr.Base{Message: "presenter: write failed", Cause: cause}}
}

// JSONError is raised when Options.Style is JSON and the event stream
// contains something JSON cannot represent: an alias, a non-scalar map
// key, or a plain scalar that resolves to inf/nan.
type JSONError struct {
	perr.Base
}

func (e *JSONError) Error() string { return e.Format() }

func jsonErr(format string, args ...interface{}) error {
	return &JSONError{perr.Base{Message: fmt.Sprintf(format, args...)}}
}
