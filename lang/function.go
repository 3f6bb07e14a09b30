// Copyright © 2024 The col authors

package lang

import (
	"strings"

	"github.com/bieber/col/list"
	"github.com/bieber/col/parser/token"
)

// FunKind distinguishes the three kinds of function descriptor.
type FunKind uint

const (
	// KindPrimitive functions are implemented natively and may carry
	// constant specializers.
	KindPrimitive FunKind = iota
	// KindUser functions name another definition, resolved when called.
	KindUser
	// KindForm functions combine other functions.
	KindForm
)

func (k FunKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindUser:
		return "user"
	case KindForm:
		return "form"
	}
	return "invalid"
}

// Function is a function descriptor.  Descriptors are built by the parser and
// not modified afterwards.
type Function struct {
	Kind FunKind
	Name string
	// Index is the dispatch index into the primitive or form registry.
	Index int
	// Spec holds the specializer constants of a primitive.
	Spec *list.List[*Value]
	// Args holds the function arguments of a form.
	Args   *list.List[*Function]
	Source *token.Location
	// Doc is the comment preceding a definition.  It is only set on the
	// function bound by a definition.
	Doc string
}

// NewPrimitive returns a descriptor for the primitive registered at index.
func NewPrimitive(index int, spec ...*Value) *Function {
	return &Function{
		Kind:  KindPrimitive,
		Name:  primitives[index].Name,
		Index: index,
		Spec:  list.From(spec...),
	}
}

// NewForm returns a descriptor for the form registered at index.
func NewForm(index int, args ...*Function) *Function {
	return &Function{
		Kind:  KindForm,
		Name:  forms[index].Name,
		Index: index,
		Args:  list.From(args...),
	}
}

// NewUser returns a descriptor referring to the definition called name.
func NewUser(name string) *Function {
	return &Function{Kind: KindUser, Name: name}
}

// Copy returns a deep copy of fn.
func (fn *Function) Copy() *Function {
	cp := *fn
	if fn.Spec != nil {
		cp.Spec = fn.Spec.Copy((*Value).Copy)
	}
	if fn.Args != nil {
		cp.Args = fn.Args.Copy((*Function).Copy)
	}
	return &cp
}

// Specializers returns the specializer constants of fn as a slice.
func (fn *Function) Specializers() []*Value {
	return fn.Spec.Values()
}

// Arguments returns the form arguments of fn as a slice.
func (fn *Function) Arguments() []*Function {
	return fn.Args.Values()
}

// String renders fn in source syntax.
func (fn *Function) String() string {
	var buf strings.Builder
	fn.write(&buf)
	return buf.String()
}

func (fn *Function) write(buf *strings.Builder) {
	buf.WriteString(fn.Name)
	switch fn.Kind {
	case KindPrimitive:
		if fn.Spec.Len() == 0 {
			return
		}
		buf.WriteByte('(')
		for i, v := range fn.Spec.Values() {
			if i > 0 {
				buf.WriteString(", ")
			}
			v.write(buf)
		}
		buf.WriteByte(')')
	case KindForm:
		buf.WriteByte('{')
		for i, arg := range fn.Args.Values() {
			if i > 0 {
				buf.WriteString(", ")
			}
			arg.write(buf)
		}
		buf.WriteByte('}')
	}
}

// Walk calls visit for fn and every function nested inside it, depth first.
func (fn *Function) Walk(visit func(*Function)) {
	visit(fn)
	fn.Args.Each(func(arg *Function) bool {
		arg.Walk(visit)
		return true
	})
}
