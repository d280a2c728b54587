package eventstream

import "github.com/yamlcore/yamlcore/internal/perr"

// StreamError is the single error kind an EventStream ever returns:
// whatever the lexer or parser failed on, unwrapped to its positioned
// message and rewrapped here so callers only need to handle one type at
// this layer.
type StreamError struct {
	perr.Base
}

func (e *StreamError) Error() string { return e.Format() }

// wrap folds any lower-layer error into a StreamError, carrying it as
// Cause unless it already looks positioned (has its own line/column, in
// which case that rendering is preserved instead of doubled up).
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StreamError); ok {
		return se
	}
	type positioned interface{ Format() string }
	if p, ok := err.(positioned); ok {
		return &StreamError{perr.Base{Message: p.Format()}}
	}
	return &StreamError{perr.Base{Message: "event stream error", Cause: err}}
}
