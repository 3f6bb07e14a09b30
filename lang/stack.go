// Copyright © 2024 The col authors

package lang

import (
	"fmt"
	"io"

	"github.com/bieber/col/parser/token"
)

// DefaultMaxDepth is the default limit on the height of a CallStack.
const DefaultMaxDepth = 10000

// CallStack records the functions currently being executed.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Source *token.Location
	Name   string
	Kind   FunKind
}

func (f *CallFrame) String() string {
	if f.Source != nil {
		return fmt.Sprintf("%s: %s (%s)", f.Source, f.Name, f.Kind)
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Kind)
}

// Height returns the number of frames on s.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a frame for fn onto s.  Push fails without modifying s if the
// push would exceed s.MaxHeight.
func (s *CallStack) Push(fn *Function) error {
	if s.MaxHeight > 0 && s.MaxHeight <= len(s.Frames) {
		return &StackOverflowError{Height: len(s.Frames) + 1, Frame: CallFrame{
			Source: fn.Source,
			Name:   fn.Name,
			Kind:   fn.Kind,
		}}
	}
	s.Frames = append(s.Frames, CallFrame{
		Source: fn.Source,
		Name:   fn.Name,
		Kind:   fn.Kind,
	})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset discards every frame on s.
func (s *CallStack) Reset() {
	for i := range s.Frames {
		s.Frames[i] = CallFrame{}
	}
	s.Frames = s.Frames[:0]
}

// DebugPrint writes the user function frames of s to w, most recent first.
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	var frames []*CallFrame
	for i := len(s.Frames) - 1; i >= 0; i-- {
		if s.Frames[i].Kind == KindUser {
			frames = append(frames, &s.Frames[i])
		}
	}
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames, %d user calls -- entrypoint last]:\n", len(s.Frames), len(frames))
	if err != nil {
		return n, err
	}
	const limit = 10
	for i, f := range frames {
		if i == limit {
			_n, err := fmt.Fprintf(w, "  ... %d more\n", len(frames)-limit)
			return n + _n, err
		}
		_n, err := fmt.Fprintf(w, "  %s\n", f)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
