// Copyright © 2024 The col authors

package lang

import (
	"io"
	"math"
	"strconv"
	"strings"
)

var primitives []*Primitive

func init() {
	primitives = []*Primitive{
		{Name: "+", Usage: "<x1, ..., xn>", Fn: primAdd, Doc: `
Returns the sum of a Sequence of numbers.  The result is an Integer until
the first Float operand, after which it is a Float.  The sum of <> is 0.
Integer overflow produces bottom.`},
		{Name: "-", Usage: "<x1, ..., xn>", Fn: primSubtract, Doc: `
Subtracts each successive number of a non-empty Sequence from the first.
The result is a Float if any operand is a Float.`},
		{Name: "*", Usage: "<x1, ..., xn>", Fn: primMultiply, Doc: `
Returns the product of a Sequence of numbers.  The result is a Float if
any operand is a Float.  The product of <> is 1.`},
		{Name: "/", Usage: "<x1, ..., xn>", Fn: primDivide, Doc: `
Divides the first number of a non-empty Sequence by each successive
number.  The result is always a Float.  Division by zero produces bottom.`},
		{Name: "mod", Usage: "<n1, ..., nk>", Fn: primMod, Doc: `
Takes the remainder of dividing the first of two or more Integers by the
second, then of that result by the third, and so on.  A zero divisor
produces bottom.`},
		{Name: "1+", Usage: "x", Fn: primOnePlus, Doc: `
Adds one to a number.`},
		{Name: "1-", Usage: "x", Fn: primOneMinus, Doc: `
Subtracts one from a number.`},
		{Name: "const", Usage: "const(n): x", Fn: primConst, Doc: `
Returns its specializer n for any input other than bottom.  Without a
specializer the result is bottom.`},
		{Name: "id", Usage: "x", Fn: primID, Doc: `
Returns its input.`},
		{Name: "eq", Usage: "<x1, ..., xn>", Fn: primEq, Doc: `
Returns true if every value of a Sequence of two or more values is equal
to the others.  Values of different types are never equal.`},
		{Name: "lt", Usage: "<x1, ..., xn>", Fn: primLt, Doc: `
Returns true if each value of a Sequence of two or more values is less
than the next.  Numbers, Characters and Strings can be ordered; any other
pairing produces bottom.`},
		{Name: "lte", Usage: "<x1, ..., xn>", Fn: primLte, Doc: `
Returns true if each value of a Sequence of two or more values is less
than or equal to the next.`},
		{Name: "gt", Usage: "<x1, ..., xn>", Fn: primGt, Doc: `
Returns true if each value of a Sequence of two or more values is greater
than the next.`},
		{Name: "gte", Usage: "<x1, ..., xn>", Fn: primGte, Doc: `
Returns true if each value of a Sequence of two or more values is greater
than or equal to the next.`},
		{Name: "not", Usage: "b", Fn: primNot, Doc: `
Negates a Boolean.`},
		{Name: "and", Usage: "<b1, ..., bn>", Fn: primAnd, Doc: `
Returns true if every element of a Sequence of Booleans is true.`},
		{Name: "or", Usage: "<b1, ..., bn>", Fn: primOr, Doc: `
Returns true if any element of a Sequence of Booleans is true.`},
		{Name: "int", Usage: "x", Fn: primInt, Doc: `
Converts a value to an Integer.  Floats are truncated, true is 1 and false
is 0, Characters become their code point, Strings are parsed as decimal
integers and Sequences become their length.  A String that is not an
integer produces bottom.`},
		{Name: "float", Usage: "x", Fn: primFloat, Doc: `
Converts a value to a Float using the same rules as int.  Strings are
parsed as decimal floating point numbers.`},
		{Name: "str", Usage: "x", Fn: primStr, Doc: `
Converts a value to a String.  Characters become one character Strings
and other values are rendered as they are written in source.`},
		{Name: "print", Usage: "s", Fn: primPrint, Doc: `
Writes a String to standard output and returns it unchanged.  Any other
input produces bottom.`},
		{Name: "println", Usage: "s", Fn: primPrintln, Doc: `
Writes a String followed by a newline to standard output and returns the
String unchanged.`},
		{Name: "readln", Usage: "x", Fn: primReadln, Doc: `
Ignores its input and reads one line from standard input, returning it
without the line terminator.  At the end of input the result is bottom.`},
		{Name: "head", Usage: "<x1, ..., xn>", Fn: primHead, Doc: `
Returns the first element of a Sequence, or <> for an empty Sequence.`},
		{Name: "tail", Usage: "<x1, ..., xn>", Fn: primTail, Doc: `
Returns every element of a Sequence but the first, or <> for an empty
Sequence.`},
		{Name: "length", Usage: "<x1, ..., xn>", Fn: primLength, Doc: `
Returns the number of elements in a Sequence.`},
		{Name: "append", Usage: "<<x1, ..., xn>, y>", Fn: primAppend, Doc: `
Adds y to the end of a Sequence.`},
		{Name: "prepend", Usage: "<y, <x1, ..., xn>>", Fn: primPrepend, Doc: `
Adds y to the front of a Sequence.`},
		{Name: "concat", Usage: "<s1, ..., sn>", Fn: primConcat, Doc: `
Joins a Sequence of Sequences into one Sequence, or a Sequence of Strings
into one String.`},
		{Name: "reverse", Usage: "<x1, ..., xn>", Fn: primReverse, Doc: `
Reverses the elements of a Sequence or the characters of a String.`},
		{Name: "null", Usage: "<x1, ..., xn>", Fn: primNull, Doc: `
Returns true if a Sequence is empty.`},
		{Name: "iota", Usage: "n", Fn: primIota, Doc: `
Returns the Sequence <1, 2, ..., n> for a non-negative Integer n.`},
	}
	for _, p := range primitives {
		p.Doc = strings.TrimSpace(p.Doc)
	}
}

// arith folds the numbers of a Sequence with iop while both operands are
// Integers and with fop once either is a Float.  When seed is nil the first
// element seeds the fold.  A nil fop rejects Float operands.
func arith(in *Value, seed *Value, iop func(a, b int) (int, bool), fop func(a, b float64) (float64, bool)) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	acc, ok := seed, true
	if acc == nil {
		acc, ok = in.Seq.PopFront()
		if !ok || !acc.IsNumber() {
			return BottomValue()
		}
	}
	for c := in.Seq.Begin(); c.Valid(); c.Next() {
		x := c.Value()
		if !x.IsNumber() {
			return BottomValue()
		}
		if acc.Type == Int && x.Type == Int {
			n, ok := iop(acc.Int, x.Int)
			if !ok {
				return BottomValue()
			}
			acc = IntValue(n)
			continue
		}
		if fop == nil {
			return BottomValue()
		}
		f, ok := fop(acc.float(), x.float())
		if !ok {
			return BottomValue()
		}
		acc = FloatValue(f)
	}
	if fop == nil && acc.Type != Int {
		return BottomValue()
	}
	return acc
}

func primAdd(rt *Runtime, spec []*Value, in *Value) *Value {
	return arith(in, IntValue(0),
		addInt,
		func(a, b float64) (float64, bool) { return a + b, true })
}

func primSubtract(rt *Runtime, spec []*Value, in *Value) *Value {
	return arith(in, nil,
		subInt,
		func(a, b float64) (float64, bool) { return a - b, true })
}

// addInt, subInt and mulInt report false when the result does not fit in an
// int.
func addInt(a, b int) (int, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int) (int, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) || c/b != a {
		return 0, false
	}
	return c, true
}

func primMultiply(rt *Runtime, spec []*Value, in *Value) *Value {
	return arith(in, IntValue(1),
		mulInt,
		func(a, b float64) (float64, bool) { return a * b, true })
}

func primDivide(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	first, ok := in.Seq.Front()
	if !ok || !first.IsNumber() {
		return BottomValue()
	}
	first.Type, first.Float = Float, first.float()
	div := func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return arith(in, nil, nil, div)
}

func primMod(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Len() < 2 {
		return BottomValue()
	}
	return arith(in, nil, func(a, b int) (int, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	}, nil)
}

func primOnePlus(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case Int:
		if in.Int == math.MaxInt {
			return BottomValue()
		}
		return IntValue(in.Int + 1)
	case Float:
		return FloatValue(in.Float + 1)
	}
	return BottomValue()
}

func primOneMinus(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case Int:
		if in.Int == math.MinInt {
			return BottomValue()
		}
		return IntValue(in.Int - 1)
	case Float:
		return FloatValue(in.Float - 1)
	}
	return BottomValue()
}

func primConst(rt *Runtime, spec []*Value, in *Value) *Value {
	if len(spec) == 0 {
		return BottomValue()
	}
	return spec[0].Copy()
}

func primID(rt *Runtime, spec []*Value, in *Value) *Value {
	return in
}

func primEq(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Len() < 2 {
		return BottomValue()
	}
	elems := in.Elems()
	for i := 1; i < len(elems); i++ {
		if !Equal(elems[i-1], elems[i]) {
			return BoolValue(false)
		}
	}
	return BoolValue(true)
}

// chain checks test against the ordering of each adjacent pair of elements.
func chain(in *Value, test func(int) bool) *Value {
	if in.Len() < 2 {
		return BottomValue()
	}
	elems := in.Elems()
	result := true
	for i := 1; i < len(elems); i++ {
		cmp, ok := Order(elems[i-1], elems[i])
		if !ok {
			return BottomValue()
		}
		if !test(cmp) {
			result = false
		}
	}
	return BoolValue(result)
}

func primLt(rt *Runtime, spec []*Value, in *Value) *Value {
	return chain(in, func(cmp int) bool { return cmp < 0 })
}

func primLte(rt *Runtime, spec []*Value, in *Value) *Value {
	return chain(in, func(cmp int) bool { return cmp <= 0 })
}

func primGt(rt *Runtime, spec []*Value, in *Value) *Value {
	return chain(in, func(cmp int) bool { return cmp > 0 })
}

func primGte(rt *Runtime, spec []*Value, in *Value) *Value {
	return chain(in, func(cmp int) bool { return cmp >= 0 })
}

func primNot(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Bool {
		return BottomValue()
	}
	return BoolValue(!in.Bool)
}

func logical(in *Value, empty bool) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	result := empty
	for c := in.Seq.Begin(); c.Valid(); c.Next() {
		if c.Value().Type != Bool {
			return BottomValue()
		}
		if c.Value().Bool != empty {
			result = !empty
		}
	}
	return BoolValue(result)
}

func primAnd(rt *Runtime, spec []*Value, in *Value) *Value {
	return logical(in, true)
}

func primOr(rt *Runtime, spec []*Value, in *Value) *Value {
	return logical(in, false)
}

func primInt(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case Int:
		return in
	case Float:
		return IntValue(int(in.Float))
	case Bool:
		if in.Bool {
			return IntValue(1)
		}
		return IntValue(0)
	case Char:
		return IntValue(int(in.Char))
	case String:
		n, err := strconv.Atoi(strings.TrimSpace(in.Str))
		if err != nil {
			return BottomValue()
		}
		return IntValue(n)
	case Seq:
		return IntValue(in.Seq.Len())
	}
	return BottomValue()
}

func primFloat(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case Float:
		return in
	case String:
		x, err := strconv.ParseFloat(strings.TrimSpace(in.Str), 64)
		if err != nil {
			return BottomValue()
		}
		return FloatValue(x)
	}
	n := primInt(rt, spec, in)
	if n.Type != Int {
		return n
	}
	return FloatValue(float64(n.Int))
}

func primStr(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case String:
		return in
	case Char:
		return StringValue(string(in.Char))
	}
	return StringValue(in.String())
}

func primPrint(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != String {
		return BottomValue()
	}
	if _, err := io.WriteString(rt.Stdout, in.Str); err != nil {
		rt.Logger.WithError(err).Warn("print failed")
		return BottomValue()
	}
	return in
}

func primPrintln(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != String {
		return BottomValue()
	}
	if _, err := io.WriteString(rt.Stdout, in.Str+"\n"); err != nil {
		rt.Logger.WithError(err).Warn("println failed")
		return BottomValue()
	}
	return in
}

func primReadln(rt *Runtime, spec []*Value, in *Value) *Value {
	line, err := rt.Stdin().ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err != io.EOF {
			rt.Logger.WithError(err).Warn("readln failed")
		}
		return BottomValue()
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return StringValue(line)
}

func primHead(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	first, ok := in.Seq.Front()
	if !ok {
		return SeqValue()
	}
	return first
}

func primTail(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	in.Seq.PopFront()
	return in
}

func primLength(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	return IntValue(in.Seq.Len())
}

func primAppend(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Len() != 2 {
		return BottomValue()
	}
	elems := in.Elems()
	if elems[0].Type != Seq {
		return BottomValue()
	}
	elems[0].Seq.PushBack(elems[1])
	return elems[0]
}

func primPrepend(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Len() != 2 {
		return BottomValue()
	}
	elems := in.Elems()
	if elems[1].Type != Seq {
		return BottomValue()
	}
	elems[1].Seq.PushFront(elems[0])
	return elems[1]
}

func primConcat(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	first, ok := in.Seq.Front()
	if !ok {
		return SeqValue()
	}
	switch first.Type {
	case Seq:
		out := SeqValue()
		for c := in.Seq.Begin(); c.Valid(); c.Next() {
			if c.Value().Type != Seq {
				return BottomValue()
			}
			c.Value().Seq.Each(func(x *Value) bool {
				out.Seq.PushBack(x)
				return true
			})
		}
		return out
	case String:
		var buf strings.Builder
		for c := in.Seq.Begin(); c.Valid(); c.Next() {
			if c.Value().Type != String {
				return BottomValue()
			}
			buf.WriteString(c.Value().Str)
		}
		return StringValue(buf.String())
	}
	return BottomValue()
}

func primReverse(rt *Runtime, spec []*Value, in *Value) *Value {
	switch in.Type {
	case Seq:
		out := SeqValue()
		for c := in.Seq.Begin(); c.Valid(); c.Next() {
			out.Seq.PushFront(c.Value())
		}
		return out
	case String:
		runes := []rune(in.Str)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return StringValue(string(runes))
	}
	return BottomValue()
}

func primNull(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Seq {
		return BottomValue()
	}
	return BoolValue(in.Seq.Len() == 0)
}

func primIota(rt *Runtime, spec []*Value, in *Value) *Value {
	if in.Type != Int || in.Int < 0 {
		return BottomValue()
	}
	out := SeqValue()
	for i := 1; i <= in.Int; i++ {
		out.Seq.PushBack(IntValue(i))
	}
	return out
}
