package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTruthyCoercion(t *testing.T) {
	b, ok := IsTruthy(IntValue{Value: 0})
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = IsTruthy(IntValue{Value: 5})
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = IsTruthy(BoolValue{Value: true})
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = IsTruthy(StringValue{Value: "x"})
	assert.False(t, ok)
}

func TestDeepCopyObjectIsIndependent(t *testing.T) {
	o := NewObject()
	o.Members["n"] = IntValue{Value: 1}

	copied := DeepCopy(o).(*ObjectValue)
	copied.Members["n"] = IntValue{Value: 2}

	assert.Equal(t, IntValue{Value: 1}, o.Members["n"])
	assert.Equal(t, IntValue{Value: 2}, copied.Members["n"])
	assert.NotEqual(t, o.ID, copied.ID)
}

func TestDeepCopyPreservesSharedStructure(t *testing.T) {
	shared := NewObject()
	shared.Members["tag"] = StringValue{Value: "shared"}

	container := NewObject()
	container.Members["a"] = shared
	container.Members["b"] = shared

	copied := DeepCopy(container).(*ObjectValue)
	a := copied.Members["a"].(*ObjectValue)
	b := copied.Members["b"].(*ObjectValue)

	require.Same(t, a, b, "deep copy must preserve shared references via the memo map")
	assert.NotSame(t, shared, a)
}

func TestDeepCopyBreaksProtoCycle(t *testing.T) {
	a := NewObject()
	b := NewObject()
	a.Proto = b
	b.Proto = a

	// must terminate rather than recurse forever
	copied := DeepCopy(a).(*ObjectValue)
	assert.Same(t, copied, copied.Proto.Proto)
}
