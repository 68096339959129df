package emitter

import "fmt"

// AllocateLocalName introduces irName into scope, producing a collision-free
// emitted spelling. If irName (or, failing that, a numbered variant of it)
// is not already in UsedLocalNames, it is used verbatim; otherwise a
// numeric suffix is appended until the result is unique. The returned
// context's LocalNameMap and UsedLocalNames both reflect the allocation,
// preserving the invariant `usedLocalNames ⊇ range(localNameMap)`.
func (c EmitterContext) AllocateLocalName(irName string) (string, EmitterContext) {
	candidate := irName
	if candidate == "" {
		candidate = "_"
	}
	if !c.UsedLocalNames[candidate] {
		return c.bindLocalName(irName, candidate)
	}
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s_%d", candidate, i)
		if !c.UsedLocalNames[next] {
			return c.bindLocalName(irName, next)
		}
	}
}

func (c EmitterContext) bindLocalName(irName, emitted string) (string, EmitterContext) {
	c.LocalNameMap = cloneStringMap(c.LocalNameMap)
	c.UsedLocalNames = cloneStringSet(c.UsedLocalNames)
	c.LocalNameMap[irName] = emitted
	c.UsedLocalNames[emitted] = true
	return emitted, c
}

// ResolveIdentifier looks up irName in LocalNameMap, falling back to the
// name itself when no rewrite was recorded (e.g. module-level references
// that never went through AllocateLocalName).
func (c EmitterContext) ResolveIdentifier(irName string) string {
	if emitted, ok := c.LocalNameMap[irName]; ok {
		return emitted
	}
	return irName
}

// allocateSyntheticTemp allocates a compiler-synthesized temp name with the
// given prefix (e.g. "__arr", "__obj", "__assign", "__truthy") followed by
// the next monotonic temp id, skipping any id whose name is already in use
// and registering the result the same way a user-named local would be, so
// it can never collide with one.
func (c EmitterContext) allocateSyntheticTemp(prefix string) (string, EmitterContext) {
	id, c2 := c.nextTempID()
	name := fmt.Sprintf("%s%d", prefix, id)
	for c2.UsedLocalNames[name] {
		id, c2 = c2.nextTempID()
		name = fmt.Sprintf("%s%d", prefix, id)
	}
	return c2.bindSyntheticTemp(name)
}

func (c EmitterContext) bindSyntheticTemp(name string) (string, EmitterContext) {
	c.UsedLocalNames = cloneStringSet(c.UsedLocalNames)
	c.UsedLocalNames[name] = true
	return name, c
}

// NextArrayTemp allocates the next `__arr{n}` temp used by array-pattern
// destructuring (spec.md §4.4).
func (c EmitterContext) NextArrayTemp() (string, EmitterContext) {
	return c.allocateSyntheticTemp("__arr")
}

// NextObjectTemp allocates the next `__obj{n}` temp used by object-pattern
// destructuring.
func (c EmitterContext) NextObjectTemp() (string, EmitterContext) {
	return c.allocateSyntheticTemp("__obj")
}

// NextAssignTemp allocates the next `__assign{n}` temp used by destructuring
// assignment-expression lowering.
func (c EmitterContext) NextAssignTemp() (string, EmitterContext) {
	return c.allocateSyntheticTemp("__assign")
}

// NextItemTemp allocates the next `__item{n}` temp used by for-of
// destructuring.
func (c EmitterContext) NextItemTemp() (string, EmitterContext) {
	return c.allocateSyntheticTemp("__item")
}

// NextTruthyTemp allocates the next `__truthy{n}` temp used by the
// runtime-truthiness switch.
func (c EmitterContext) NextTruthyTemp() (string, EmitterContext) {
	return c.allocateSyntheticTemp("__truthy")
}

// NextNumberTruthyTemp allocates the next `__tsonic_truthy_num_{n}` pattern
// variable (spec.md §8 scenario 4), used to bind a statically-typed
// `number` operand once before testing it for truthiness, so a non-trivial
// operand expression (a call, a member access) is never evaluated twice.
func (c EmitterContext) NextNumberTruthyTemp() (string, EmitterContext) {
	id, c2 := c.nextTempID()
	name, c3 := c2.bindSyntheticTemp(fmt.Sprintf("__tsonic_truthy_num_%d", id+1))
	return name, c3
}

// ParamTempName returns the synthetic name assigned to the i'th complex
// (destructured) parameter in a method signature (spec.md §4.4).
func ParamTempName(i int) string {
	return fmt.Sprintf("__param%d", i)
}
