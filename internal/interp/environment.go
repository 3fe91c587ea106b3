package interp

// Frame is a single lexical scope's bindings: an insertion-ordered map from
// name to Value, per spec.md §3. Grounded on go-dws/pkg/ident.Map's
// ordered-map shape, simplified to plain (case-sensitive) string keys —
// Brew, unlike DWScript, has no case-insensitive identifier rule.
type Frame struct {
	names  []string
	values map[string]Value
}

// NewFrame creates an empty Frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]Value)}
}

// Get returns the value bound to name in this frame only.
func (f *Frame) Get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether name is bound in this frame.
func (f *Frame) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Set overwrites an existing binding. The caller must have already checked
// Has; Set does not track insertion order since the name is already known.
func (f *Frame) Set(name string, v Value) {
	f.values[name] = v
}

// Define creates or overwrites a binding, recording insertion order for new
// names.
func (f *Frame) Define(name string, v Value) {
	if _, exists := f.values[name]; !exists {
		f.names = append(f.names, name)
	}
	f.values[name] = v
}

// Names returns bindings in insertion order (used by lambda-capture
// snapshotting, which must be deterministic for tests).
func (f *Frame) Names() []string {
	return f.names
}

// PrimitiveSnapshot returns a new Frame containing only this frame's Int,
// Bool, and Str bindings, independently copied — the primitive-only capture
// rule of spec.md §4.2.
func (f *Frame) PrimitiveSnapshot() *Frame {
	snap := NewFrame()
	for _, name := range f.names {
		v := f.values[name]
		switch v.(type) {
		case IntValue, BoolValue, StringValue:
			snap.Define(name, v)
		}
	}
	return snap
}

func (f *Frame) deepCopy(memo map[*ObjectValue]*ObjectValue) *Frame {
	out := NewFrame()
	for _, name := range f.names {
		out.Define(name, deepCopy(f.values[name], memo))
	}
	return out
}

// Environment is the running stack of Frames, innermost on top.
// Grounded on go-dws/internal/interp/runtime.Environment's naming
// (Get/Set/Define), restructured from an outer-pointer chain into an
// explicit slice so operations can address a "lambda floor" index into the
// stack, as spec.md §4.2 requires.
type Environment struct {
	frames []*Frame
}

// NewEnvironment creates an Environment with a single (global) frame.
func NewEnvironment() *Environment {
	return &Environment{frames: []*Frame{NewFrame()}}
}

// Push adds a new, empty innermost frame.
func (e *Environment) Push() {
	e.frames = append(e.frames, NewFrame())
}

// Pop discards the innermost frame.
func (e *Environment) Pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

// PushFrame pushes an already-built frame (used to splice a closure's
// captured stack onto the live environment for the duration of a call).
func (e *Environment) PushFrame(f *Frame) {
	e.frames = append(e.frames, f)
}

// Depth returns the current number of frames.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// FrameAt returns the frame at absolute index i (0 = outermost).
func (e *Environment) FrameAt(i int) *Frame {
	return e.frames[i]
}

// Truncate drops every frame at index n and above, leaving n frames, and
// returns the dropped frames in a slice of their own, so later pushes onto
// the environment cannot overwrite it. Used to extract a lambda's updated
// continuation after its body finishes executing.
func (e *Environment) Truncate(n int) []*Frame {
	dropped := append([]*Frame(nil), e.frames[n:]...)
	e.frames = e.frames[:n]
	return dropped
}

// Lookup searches frames innermost-first for name. If lambdaFloor is
// positive, the initial pass is restricted to frames strictly below that
// index; if nothing is found there, the search falls through to the full
// stack. This two-pass shape is spec.md §4.2's lookup algorithm verbatim.
func (e *Environment) Lookup(name string, lambdaFloor int) (Value, bool) {
	if lambdaFloor > 0 {
		limit := lambdaFloor
		if limit > len(e.frames) {
			limit = len(e.frames)
		}
		for i := limit - 1; i >= 0; i-- {
			if v, ok := e.frames[i].Get(name); ok {
				return v, true
			}
		}
	}
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign writes v into name's existing binding, using the same two-pass,
// lambda-floor-aware search as Lookup, and defines it fresh in the current
// (topmost) frame if it is bound nowhere yet. Both plain assignment and
// alias-table writeback (internal/interp/alias.go) go through this single
// path, so a write always lands in whichever frame currently owns the name.
func (e *Environment) Assign(name string, v Value, lambdaFloor int) {
	if lambdaFloor > 0 {
		limit := lambdaFloor
		if limit > len(e.frames) {
			limit = len(e.frames)
		}
		for i := limit - 1; i >= 0; i-- {
			if e.frames[i].Has(name) {
				e.frames[i].Set(name, v)
				return
			}
		}
	}
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].Has(name) {
			e.frames[i].Set(name, v)
			return
		}
	}
	e.frames[len(e.frames)-1].Define(name, v)
}

// CaptureSnapshot builds a lambda's persistent captured stack: one
// primitive-only Frame per currently active frame, deep-copied so later
// mutation of the live environment is never observed by the closure except
// through its own continuation (spec.md §3 invariants, §4.2).
func (e *Environment) CaptureSnapshot() []*Frame {
	snap := make([]*Frame, len(e.frames))
	for i, f := range e.frames {
		snap[i] = f.PrimitiveSnapshot().deepCopy(make(map[*ObjectValue]*ObjectValue))
	}
	return snap
}
