// Copyright © 2024 The col authors

package profiler_test

import (
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	rt := loadRuntime(t, testCol)
	var labels []map[string]string
	var ppa interface{ Labels() map[string]string }
	// record the labels applied while each traced function runs
	spy := profiler.WithSkipFilter(func(fun *lang.Function) bool {
		if ppa != nil {
			labels = append(labels, ppa.Labels())
		}
		return false
	})
	p := profiler.NewPprofAnnotator(rt, nil, spy)
	ppa = p
	require.NoError(t, p.Enable())
	runMain(t, rt)

	require.Len(t, labels, 5)
	// recurse, recurse, recurse, add, add
	assert.Empty(t, labels[0])
	assert.Equal(t, map[string]string{"function": "recurse"}, labels[1])
	assert.Equal(t, map[string]string{"function": "recurse"}, labels[3])
	assert.Empty(t, labels[4])
	assert.Empty(t, p.Labels())
}
