// Copyright © 2024 The col authors

package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bieber/col/list"
)

// Type is the type of a Value.
type Type uint

// Possible Type values.
const (
	Bottom Type = iota
	Int
	Float
	Char
	String
	Bool
	Seq
	numTypes
)

func (t Type) String() string {
	typeStrings := [numTypes]string{
		Bottom: "Bottom",
		Int:    "Integer",
		Float:  "Float",
		Char:   "Character",
		String: "String",
		Bool:   "Boolean",
		Seq:    "Sequence",
	}
	if t >= numTypes {
		return "Invalid"
	}
	return typeStrings[t]
}

// Value is a col runtime value.  Only the payload field matching Type is
// meaningful.  A Value passed to Execute is owned by the callee, which may
// reuse or modify it while building its result.
type Value struct {
	Type  Type
	Int   int
	Float float64
	Char  rune
	Str   string
	Bool  bool
	Seq   *list.List[*Value]
}

// IntValue returns an Integer.
func IntValue(x int) *Value {
	return &Value{Type: Int, Int: x}
}

// FloatValue returns a Float.
func FloatValue(x float64) *Value {
	return &Value{Type: Float, Float: x}
}

// CharValue returns a Character.
func CharValue(c rune) *Value {
	return &Value{Type: Char, Char: c}
}

// StringValue returns a String.
func StringValue(s string) *Value {
	return &Value{Type: String, Str: s}
}

// BoolValue returns a Boolean.
func BoolValue(b bool) *Value {
	return &Value{Type: Bool, Bool: b}
}

// BottomValue returns a new bottom.
func BottomValue() *Value {
	return &Value{Type: Bottom}
}

// SeqValue returns a Sequence containing vals.  The Sequence takes ownership
// of vals.
func SeqValue(vals ...*Value) *Value {
	return SeqList(list.From(vals...))
}

// SeqList returns a Sequence backed by l.  A nil l produces an empty
// Sequence.
func SeqList(l *list.List[*Value]) *Value {
	if l == nil {
		l = list.New[*Value]()
	}
	return &Value{Type: Seq, Seq: l}
}

// Copy returns a deep copy of v.
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	cp := *v
	if v.Type == Seq {
		cp.Seq = v.Seq.Copy((*Value).Copy)
	}
	return &cp
}

// IsBottom returns true if v is bottom or is a Sequence containing bottom at
// any depth.
func (v *Value) IsBottom() bool {
	switch v.Type {
	case Bottom:
		return true
	case Seq:
		found := false
		v.Seq.Each(func(elem *Value) bool {
			found = elem.IsBottom()
			return !found
		})
		return found
	}
	return false
}

// IsNumber returns true if v is an Integer or a Float.
func (v *Value) IsNumber() bool {
	return v.Type == Int || v.Type == Float
}

// Len returns the number of elements in a Sequence, or zero for any other
// value.
func (v *Value) Len() int {
	if v.Type != Seq {
		return 0
	}
	return v.Seq.Len()
}

// Elems returns the elements of a Sequence as a slice.
func (v *Value) Elems() []*Value {
	if v.Type != Seq {
		return nil
	}
	return v.Seq.Values()
}

func (v *Value) float() float64 {
	if v.Type == Int {
		return float64(v.Int)
	}
	return v.Float
}

// Equal returns true if a and b are structurally equal.  Values of different
// types are never equal and any two bottoms are equal.
func Equal(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case Bottom:
		return true
	case Int:
		return a.Int == b.Int
	case Float:
		return a.Float == b.Float
	case Char:
		return a.Char == b.Char
	case String:
		return a.Str == b.Str
	case Bool:
		return a.Bool == b.Bool
	case Seq:
		if a.Seq.Len() != b.Seq.Len() {
			return false
		}
		ca, cb := a.Seq.Begin(), b.Seq.Begin()
		for ; ca.Valid(); ca.Next() {
			if !Equal(ca.Value(), cb.Value()) {
				return false
			}
			cb.Next()
		}
		return true
	}
	return false
}

// Order compares a and b, returning a negative number when a < b, zero when
// a == b and a positive number when a > b.  Integers and Floats compare with
// each other, Characters with Characters and Strings with Strings.  Order
// returns false for any other pairing.
func Order(a, b *Value) (int, bool) {
	switch {
	case a.Type == Int && b.Type == Int:
		return compare(a.Int, b.Int), true
	case a.IsNumber() && b.IsNumber():
		return compare(a.float(), b.float()), true
	case a.Type == Char && b.Type == Char:
		return compare(a.Char, b.Char), true
	case a.Type == String && b.Type == String:
		return strings.Compare(a.Str, b.Str), true
	}
	return 0, false
}

func compare[T int | float64 | rune](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String renders v in source syntax.
func (v *Value) String() string {
	var buf strings.Builder
	v.write(&buf)
	return buf.String()
}

func (v *Value) write(buf *strings.Builder) {
	switch v.Type {
	case Bottom:
		buf.WriteString("bottom")
	case Int:
		buf.WriteString(strconv.Itoa(v.Int))
	case Float:
		buf.WriteString(formatFloat(v.Float))
	case Char:
		buf.WriteByte('\'')
		buf.WriteString(escape(string(v.Char), '\''))
		buf.WriteByte('\'')
	case String:
		buf.WriteByte('"')
		buf.WriteString(escape(v.Str, '"'))
		buf.WriteByte('"')
	case Bool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case Seq:
		buf.WriteByte('<')
		first := true
		v.Seq.Each(func(elem *Value) bool {
			if !first {
				buf.WriteString(", ")
			}
			first = false
			elem.write(buf)
			return true
		})
		buf.WriteByte('>')
	default:
		buf.WriteString("<invalid>")
	}
}

// formatFloat renders x so that it lexes back as a float literal.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func escape(s string, quote rune) string {
	var buf strings.Builder
	for _, c := range s {
		switch c {
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case quote:
			buf.WriteByte('\\')
			buf.WriteRune(c)
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

// Display renders v the way print and println show it.  Strings and
// Characters are written without quotes.
func (v *Value) Display() string {
	switch v.Type {
	case String:
		return v.Str
	case Char:
		return string(v.Char)
	}
	return v.String()
}

// Inspect writes an indented tree describing v and the types of everything it
// contains.
func (v *Value) Inspect(w io.Writer, indent int) error {
	pad := strings.Repeat("  ", indent)
	if v.Type != Seq {
		_, err := fmt.Fprintf(w, "%s%s: %s\n", pad, v.Type, v)
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s (%d elements)\n", pad, v.Type, v.Seq.Len())
	if err != nil {
		return err
	}
	for c := v.Seq.Begin(); c.Valid(); c.Next() {
		if err := c.Value().Inspect(w, indent+1); err != nil {
			return err
		}
	}
	return nil
}
