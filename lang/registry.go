// Copyright © 2024 The col authors

package lang

// PrimitiveFn implements a primitive.  It receives the specializer constants
// bound at definition time, which it must not modify, and an input value it
// owns.
type PrimitiveFn func(rt *Runtime, spec []*Value, in *Value) *Value

// FormFn implements a functional form.  It receives the form's function
// arguments and an input value it owns, and calls rt.Execute to apply the
// arguments.
type FormFn func(rt *Runtime, args []*Function, in *Value) *Value

// Primitive is an entry in the primitive registry.
type Primitive struct {
	Name string
	// Usage is a short example of the input the primitive expects.
	Usage string
	Doc   string
	Fn    PrimitiveFn
}

// Form is an entry in the form registry.
type Form struct {
	Name  string
	Usage string
	Doc   string
	Fn    FormFn
}

// Primitives returns the primitive registry in dispatch order.
func Primitives() []*Primitive {
	return append([]*Primitive(nil), primitives...)
}

// Forms returns the form registry in dispatch order.
func Forms() []*Form {
	return append([]*Form(nil), forms...)
}

// LookupPrimitive returns the dispatch index of the primitive called name.
func LookupPrimitive(name string) (int, bool) {
	for i, p := range primitives {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// LookupForm returns the dispatch index of the form called name.
func LookupForm(name string) (int, bool) {
	for i, f := range forms {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// IsBuiltin returns true if name is a primitive or a form.  Definitions
// named after a builtin can never be called.
func IsBuiltin(name string) bool {
	if _, ok := LookupPrimitive(name); ok {
		return true
	}
	_, ok := LookupForm(name)
	return ok
}

// BuiltinDoc returns the usage and documentation of the primitive or form
// called name.
func BuiltinDoc(name string) (usage, doc string, ok bool) {
	if i, ok := LookupPrimitive(name); ok {
		return primitives[i].Usage, primitives[i].Doc, true
	}
	if i, ok := LookupForm(name); ok {
		return forms[i].Usage, forms[i].Doc, true
	}
	return "", "", false
}
