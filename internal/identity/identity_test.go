package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct{ name string }

func TestOf(t *testing.T) {
	a, b := &node{"a"}, &node{"a"}

	ka, ok := Of(a)
	assert.True(t, ok)
	kb, _ := Of(b)
	assert.NotEqual(t, ka, kb, "equal values at different addresses are different nodes")

	again, _ := Of(a)
	assert.Equal(t, ka, again)

	for _, v := range []any{nil, 1, "s", node{"v"}, []any{}, (*node)(nil)} {
		_, ok := Of(v)
		assert.False(t, ok, "%#v must not have an identity", v)
	}
}

func TestOf_Slices(t *testing.T) {
	backing := []any{1, 2, 3}
	whole, _ := Of(backing)
	prefix, _ := Of(backing[:2])
	assert.NotEqual(t, whole, prefix)

	m := map[string]any{"k": 1}
	assert.True(t, Same(m, m))
}

func TestEqual(t *testing.T) {
	type pair struct{ a, b string }
	assert.True(t, Equal(pair{"x", "y"}, pair{"x", "y"}))
	assert.False(t, Equal(pair{"x", "y"}, pair{"x", "z"}))
	assert.False(t, Equal([]any{1}, []any{1}), "slices compare by identity only")
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 1))
}

func TestIsNil(t *testing.T) {
	var p *node
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(p))
	assert.False(t, IsNil(&node{}))
	assert.False(t, IsNil(0))
}

func TestSeen(t *testing.T) {
	seen := Seen{}
	n := &node{}
	assert.False(t, seen.Mark(n))
	assert.True(t, seen.Mark(n))
	assert.False(t, seen.Mark(1))
	assert.False(t, seen.Mark(1), "scalars are never recorded")
}
