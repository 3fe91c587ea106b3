package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameInsertionOrder(t *testing.T) {
	f := NewFrame()
	f.Define("b", IntValue{Value: 1})
	f.Define("a", IntValue{Value: 2})
	f.Define("b", IntValue{Value: 3}) // overwrite, must not move in order

	assert.Equal(t, []string{"b", "a"}, f.Names())
	v, ok := f.Get("b")
	require.True(t, ok)
	assert.Equal(t, IntValue{Value: 3}, v)
}

func TestLookupRestrictsToBelowLambdaFloorFirst(t *testing.T) {
	env := NewEnvironment() // frame 0: global
	env.FrameAt(0).Define("x", IntValue{Value: 100})

	env.Push() // frame 1: simulates a captured frame
	env.FrameAt(1).Define("x", IntValue{Value: 1})
	env.Push() // frame 2: simulates a lambda's own param frame

	// floor = 1: frames below index 1 are the "caller" frames.
	v, ok := env.Lookup("x", 1)
	require.True(t, ok)
	assert.Equal(t, IntValue{Value: 100}, v, "restricted pass should see the caller's x, not the captured one")
}

func TestLookupFallsThroughWhenNotFoundBelowFloor(t *testing.T) {
	env := NewEnvironment()
	env.Push()
	env.FrameAt(1).Define("y", IntValue{Value: 7})
	env.Push()

	v, ok := env.Lookup("y", 1)
	require.True(t, ok)
	assert.Equal(t, IntValue{Value: 7}, v)
}

func TestAssignWritesExistingBindingInPlace(t *testing.T) {
	env := NewEnvironment()
	env.FrameAt(0).Define("x", IntValue{Value: 1})
	env.Push()

	env.Assign("x", IntValue{Value: 2}, 0)

	v, ok := env.FrameAt(0).Get("x")
	require.True(t, ok)
	assert.Equal(t, IntValue{Value: 2}, v)
	assert.False(t, env.FrameAt(1).Has("x"))
}

func TestAssignDefinesInCurrentFrameWhenNew(t *testing.T) {
	env := NewEnvironment()
	env.Push()

	env.Assign("z", IntValue{Value: 9}, 0)

	assert.False(t, env.FrameAt(0).Has("z"))
	assert.True(t, env.FrameAt(1).Has("z"))
}

func TestCaptureSnapshotKeepsOnlyPrimitives(t *testing.T) {
	env := NewEnvironment()
	env.FrameAt(0).Define("n", IntValue{Value: 1})
	env.FrameAt(0).Define("s", StringValue{Value: "hi"})
	env.FrameAt(0).Define("obj", NewObject())

	snap := env.CaptureSnapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].Has("n"))
	assert.True(t, snap[0].Has("s"))
	assert.False(t, snap[0].Has("obj"))
}

func TestTruncateReturnsAndDropsFrames(t *testing.T) {
	env := NewEnvironment()
	env.Push()
	env.Push()
	require.Equal(t, 3, env.Depth())

	dropped := env.Truncate(1)
	assert.Len(t, dropped, 2)
	assert.Equal(t, 1, env.Depth())
}
