// Copyright © 2024 The col authors

package lang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		val    *Value
		output string
	}{
		{BottomValue(), "bottom"},
		{IntValue(-12), "-12"},
		{FloatValue(2), "2.0"},
		{FloatValue(0.25), "0.25"},
		{FloatValue(1e21), "1e+21"},
		{CharValue('x'), "'x'"},
		{CharValue('\''), `'\''`},
		{StringValue("a\"b\n"), `"a\"b\n"`},
		{BoolValue(true), "true"},
		{SeqValue(), "<>"},
		{SeqValue(IntValue(1), SeqValue(StringValue("s"), BoolValue(false))), `<1, <"s", false>>`},
	}
	for i, test := range tests {
		assert.Equal(t, test.output, test.val.String(), "test %d", i)
	}
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "hi", StringValue("hi").Display())
	assert.Equal(t, "c", CharValue('c').Display())
	assert.Equal(t, `<"hi">`, SeqValue(StringValue("hi")).Display())
}

func TestValueCopy(t *testing.T) {
	orig := SeqValue(IntValue(1), SeqValue(IntValue(2)))
	cp := orig.Copy()
	require.True(t, Equal(orig, cp))

	// mutating the copy leaves the original alone at every depth
	inner, _ := cp.Seq.Back()
	inner.Seq.PushBack(IntValue(3))
	first, _ := cp.Seq.Front()
	first.Int = 100
	assert.Equal(t, "<1, <2>>", orig.String())
	assert.Equal(t, "<100, <2, 3>>", cp.String())
	assert.False(t, Equal(orig, cp))
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		a, b  *Value
		equal bool
	}{
		{IntValue(1), IntValue(1), true},
		{IntValue(1), FloatValue(1), false},
		{StringValue("a"), StringValue("a"), true},
		{CharValue('a'), StringValue("a"), false},
		{BottomValue(), BottomValue(), true},
		{SeqValue(), SeqValue(), true},
		{SeqValue(IntValue(1)), SeqValue(IntValue(1), IntValue(2)), false},
		{SeqValue(SeqValue(CharValue('a'))), SeqValue(SeqValue(CharValue('a'))), true},
		{SeqValue(SeqValue(CharValue('a'))), SeqValue(SeqValue(CharValue('b'))), false},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, Equal(test.a, test.b), "test %d", i)
		assert.Equal(t, test.equal, Equal(test.b, test.a), "test %d reversed", i)
	}
}

func TestValueIsBottom(t *testing.T) {
	assert.True(t, BottomValue().IsBottom())
	assert.False(t, IntValue(0).IsBottom())
	assert.False(t, SeqValue().IsBottom())
	assert.True(t, SeqValue(IntValue(1), BottomValue()).IsBottom())
	assert.True(t, SeqValue(SeqValue(SeqValue(BottomValue()))).IsBottom())
}

func TestValueOrder(t *testing.T) {
	cmp, ok := Order(IntValue(1), FloatValue(1.5))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)
	cmp, ok = Order(StringValue("b"), StringValue("a"))
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)
	cmp, ok = Order(CharValue('a'), CharValue('a'))
	assert.True(t, ok)
	assert.Equal(t, 0, cmp)
	_, ok = Order(CharValue('a'), StringValue("a"))
	assert.False(t, ok)
	_, ok = Order(BoolValue(true), BoolValue(false))
	assert.False(t, ok)
}

func TestValueInspect(t *testing.T) {
	var buf bytes.Buffer
	err := SeqValue(IntValue(1), SeqValue(StringValue("x"))).Inspect(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, `Sequence (2 elements)
  Integer: 1
  Sequence (1 elements)
    String: "x"
`, buf.String())
}
