package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeRegionKey_Sorts(t *testing.T) {
	k := MakeRegionKey("c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, k.Names())
	assert.Equal(t, 3, k.Len())
	assert.Equal(t, "(a, b, c)", k.String())
}

func TestMakeRegionKey_InputUntouched(t *testing.T) {
	names := []string{"z", "a"}
	_ = MakeRegionKey(names...)
	assert.Equal(t, []string{"z", "a"}, names)
}

func TestRegionKey_Comparable(t *testing.T) {
	a := MakeRegionKey("b", "a")
	b := MakeRegionKey("a", "b")
	assert.Equal(t, a, b)

	m := map[RegionKey]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestRegionKey_Zero(t *testing.T) {
	var k RegionKey
	assert.Nil(t, k.Names())
	assert.Equal(t, 0, k.Len())
	assert.False(t, k.Contains("a"))
}

func TestRegionKey_With(t *testing.T) {
	k := MakeRegionKey("a", "c").With("b")
	assert.Equal(t, []string{"a", "b", "c"}, k.Names())
	assert.True(t, k.Contains("b"))
	assert.False(t, k.Contains("d"))
}

func TestRegionKey_Compare(t *testing.T) {
	a := MakeRegionKey("a")
	ab := MakeRegionKey("a", "b")
	assert.Negative(t, a.Compare(ab))
	assert.Positive(t, ab.Compare(a))
	assert.Zero(t, a.Compare(MakeRegionKey("a")))
}

func TestGlobalKey_String(t *testing.T) {
	r := MakeRegionKey("a", "b")
	assert.Equal(t, "(a, b)", Plain(r).String())
	assert.Equal(t, "cluster:3(a, b)", ClusterScoped(3, r).String())
}

func TestGlobalKey_Distinct(t *testing.T) {
	r := MakeRegionKey("a")
	m := map[GlobalKey][]int{
		Plain(r):            {1},
		ClusterScoped(0, r): {2},
	}
	assert.Len(t, m, 2)
}
