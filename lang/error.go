// Copyright © 2024 The col authors

package lang

import (
	"errors"
	"fmt"
)

// ErrNoMain is returned when a program has no definition named main.
var ErrNoMain = errors.New("no main function defined")

// StackOverflowError is the resource fault raised when evaluation nests
// deeper than the runtime's maximum stack height.  It is not a language
// level error and is never converted into bottom.
type StackOverflowError struct {
	Height int
	// Frame describes the call that could not be pushed.
	Frame CallFrame
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack height exceeded maximum: %d (calling %s)", e.Height, e.Frame.String())
}
