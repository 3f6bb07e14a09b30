// Copyright © 2024 The col authors

package lang

// Execute applies fn to in and returns the result.  Execute never fails: an
// invalid application produces bottom.  Execute takes ownership of in.
//
// A bottom input (including a Sequence containing bottom) is never
// dispatched.  Any result containing bottom is collapsed to a plain bottom.
//
// Execute panics with a *StackOverflowError when the call stack limit is
// exceeded.  Use Run to recover it as an error.
func (rt *Runtime) Execute(fn *Function, in *Value) *Value {
	if in == nil || in.IsBottom() {
		return BottomValue()
	}
	if err := rt.Stack.Push(fn); err != nil {
		rt.overflow(err)
		panic(err)
	}
	defer rt.Stack.Pop()
	if rt.Profiler != nil && rt.Profiler.IsEnabled() {
		defer rt.Profiler.Start(fn)()
	}

	var out *Value
	switch fn.Kind {
	case KindUser:
		def, ok := rt.Table.Find(fn.Name)
		if !ok {
			rt.Logger.WithField("function", fn.Name).Debug("call to undefined function")
			return BottomValue()
		}
		return rt.Execute(def, in)
	case KindPrimitive:
		if fn.Index < 0 || fn.Index >= len(primitives) {
			return BottomValue()
		}
		out = primitives[fn.Index].Fn(rt, fn.Specializers(), in)
	case KindForm:
		if fn.Index < 0 || fn.Index >= len(forms) {
			return BottomValue()
		}
		out = forms[fn.Index].Fn(rt, fn.Arguments(), in)
	default:
		return BottomValue()
	}
	if out == nil || out.IsBottom() {
		return BottomValue()
	}
	return out
}
