// Copyright © 2024 The col authors

package lang

import "strings"

var forms []*Form

func init() {
	forms = []*Form{
		{Name: "compose", Usage: "compose{f1, ..., fn}", Fn: formCompose, Doc: `
Applies fn to the input, then f(n-1) to that result, and so on until f1,
returning the output of f1.  With no arguments the input is returned
unchanged.`},
		{Name: "construct", Usage: "construct{f1, ..., fn}", Fn: formConstruct, Doc: `
Applies each function to its own copy of the input, in order, and returns
the results as a Sequence <f1:x, ..., fn:x>.`},
		{Name: "if", Usage: "if{cond, then, else}", Fn: formIf, Doc: `
Applies cond to the input.  If the result is true the input is passed to
then, if it is false the input is passed to else.  Any other condition
result produces bottom.  Exactly three arguments are required.`},
		{Name: "map", Usage: "map{f}", Fn: formMap, Doc: `
Applies f to every element of a Sequence input and returns a Sequence of
the results in the same order.`},
		{Name: "reduce", Usage: "reduce{f}", Fn: formReduce, Doc: `
Folds a Sequence from the left.  f is applied to <x1, x2>, then to
<result, x3> and so on.  A single element Sequence reduces to its element
and an empty Sequence produces bottom.`},
		{Name: "filter", Usage: "filter{p}", Fn: formFilter, Doc: `
Returns the elements of a Sequence input for which p returns true.  A
non-Boolean result from p produces bottom.`},
		{Name: "while", Usage: "while{p, f}", Fn: formWhile, Doc: `
Repeatedly applies f to the input for as long as p returns true for the
current value, then returns that value.  A non-Boolean result from p
produces bottom.`},
	}
	for _, f := range forms {
		f.Doc = strings.TrimSpace(f.Doc)
	}
}

func formCompose(rt *Runtime, args []*Function, in *Value) *Value {
	out := in
	for i := len(args) - 1; i >= 0; i-- {
		out = rt.Execute(args[i], out)
	}
	return out
}

func formConstruct(rt *Runtime, args []*Function, in *Value) *Value {
	out := SeqValue()
	for _, fn := range args {
		out.Seq.PushBack(rt.Execute(fn, in.Copy()))
	}
	return out
}

func formIf(rt *Runtime, args []*Function, in *Value) *Value {
	if len(args) != 3 {
		return BottomValue()
	}
	cond := rt.Execute(args[0], in.Copy())
	if cond.Type != Bool {
		return BottomValue()
	}
	if cond.Bool {
		return rt.Execute(args[1], in)
	}
	return rt.Execute(args[2], in)
}

func formMap(rt *Runtime, args []*Function, in *Value) *Value {
	if len(args) != 1 || in.Type != Seq {
		return BottomValue()
	}
	out := SeqValue()
	for c := in.Seq.Begin(); c.Valid(); c.Next() {
		out.Seq.PushBack(rt.Execute(args[0], c.Value().Copy()))
	}
	return out
}

func formReduce(rt *Runtime, args []*Function, in *Value) *Value {
	if len(args) != 1 || in.Type != Seq {
		return BottomValue()
	}
	acc, ok := in.Seq.PopFront()
	if !ok {
		return BottomValue()
	}
	for {
		next, ok := in.Seq.PopFront()
		if !ok {
			return acc
		}
		acc = rt.Execute(args[0], SeqValue(acc, next))
		if acc.Type == Bottom {
			return acc
		}
	}
}

func formFilter(rt *Runtime, args []*Function, in *Value) *Value {
	if len(args) != 1 || in.Type != Seq {
		return BottomValue()
	}
	out := SeqValue()
	for c := in.Seq.Begin(); c.Valid(); c.Next() {
		keep := rt.Execute(args[0], c.Value().Copy())
		if keep.Type != Bool {
			return BottomValue()
		}
		if keep.Bool {
			out.Seq.PushBack(c.Value())
		}
	}
	return out
}

func formWhile(rt *Runtime, args []*Function, in *Value) *Value {
	if len(args) != 2 {
		return BottomValue()
	}
	cur := in
	for {
		cond := rt.Execute(args[0], cur.Copy())
		if cond.Type != Bool {
			return BottomValue()
		}
		if !cond.Bool {
			return cur
		}
		cur = rt.Execute(args[1], cur)
		if cur.Type == Bottom {
			return cur
		}
	}
}
