package ir

// Type is the tagged-variant IR type tree consumed by internal/emitter/types.go.
type Type interface {
	Node
	typeNode()
}

// PrimitiveName enumerates the TypeScript-level primitives the frontend
// distinguishes. "int" is a proof-pass refinement of "number" (see
// spec.md Open Questions on integer loop counters), not a surface TS type.
type PrimitiveName string

const (
	PrimBoolean   PrimitiveName = "boolean"
	PrimNumber    PrimitiveName = "number"
	PrimInt       PrimitiveName = "int"
	PrimString    PrimitiveName = "string"
	PrimChar      PrimitiveName = "char"
	PrimVoid      PrimitiveName = "void"
	PrimNull      PrimitiveName = "null"
	PrimUndefined PrimitiveName = "undefined"
	PrimAny       PrimitiveName = "any"
	PrimUnknown   PrimitiveName = "unknown"
)

// PrimitiveType is a built-in TypeScript primitive.
type PrimitiveType struct {
	Name PrimitiveName `json:"name"`
}

func (*PrimitiveType) Kind() Kind { return KindPrimitiveType }
func (*PrimitiveType) typeNode()  {}

// ClrTypeRef is attached to a ReferenceType when the frontend has resolved a
// CLR import to a concrete runtime symbol (see spec.md §4.7 Imports).
type ClrTypeRef struct {
	DeclaringType         string `json:"declaringType"`
	DeclaringAssemblyName string `json:"declaringAssemblyName"`
	MemberName            string `json:"memberName"`
}

// ReferenceType names a declared type: a local class/interface/alias/enum,
// or (via ResolvedClrType) a CLR type reached through an import.
type ReferenceType struct {
	ResolvedClrType *ClrTypeRef `json:"resolvedClrType,omitempty"`
	Name            string      `json:"name"`
	TypeArguments   []Type      `json:"typeArguments,omitempty"`
}

func (*ReferenceType) Kind() Kind { return KindReferenceType }
func (*ReferenceType) typeNode()  {}

// UnionType is a TypeScript union. Lowering rules for union shaping live in
// internal/emitter/types.go; the table drives nullable-suffix collapsing,
// literal-arm base-primitive collapsing, and the 2-8/>8 arm split between
// global::Tsonic.Runtime.Union<T1,...,Tn> and object.
type UnionType struct {
	Arms []Type `json:"arms"`
}

func (*UnionType) Kind() Kind { return KindUnionType }
func (*UnionType) typeNode()  {}

// ArrayType is `T[]`.
type ArrayType struct {
	Element Type `json:"element"`
}

func (*ArrayType) Kind() Kind { return KindArrayType }
func (*ArrayType) typeNode()  {}

// DictionaryType is a TypeScript index signature / Map-shaped type, lowered
// to System.Collections.Generic.Dictionary<TKey,TValue>.
type DictionaryType struct {
	Key   Type `json:"key"`
	Value Type `json:"value"`
}

func (*DictionaryType) Kind() Kind { return KindDictionaryType }
func (*DictionaryType) typeNode()  {}

// FunctionType is a TypeScript function type, lowered to Func<...>/Action<...>.
type FunctionType struct {
	ReturnType Type   `json:"returnType"`
	Params     []Type `json:"params"`
}

func (*FunctionType) Kind() Kind { return KindFunctionType }
func (*FunctionType) typeNode()  {}

// TypeParameterType references a type parameter in scope.
type TypeParameterType struct {
	Name string `json:"name"`
}

func (*TypeParameterType) Kind() Kind { return KindTypeParameterType }
func (*TypeParameterType) typeNode()  {}

// TupleType is a fixed-arity TypeScript tuple, lowered to a C# tuple type.
type TupleType struct {
	ElementNames []string `json:"elementNames,omitempty"` // "" when unnamed
	Elements     []Type   `json:"elements"`
}

func (*TupleType) Kind() Kind { return KindTupleType }
func (*TupleType) typeNode()  {}

// LiteralType is a TypeScript literal type narrowed from a single primitive
// value (e.g. `"ok"`, `1`, `true`). Lowering never reproduces the literal
// value itself — Base is the only field that drives emitted output, via the
// union literal-arm base-primitive collapsing rule (spec.md §4.2, §4.5 rule
// 4): a union whose non-nullish arms are all LiteralType sharing one Base
// emits as that base primitive rather than as global::Tsonic.Runtime.Union.
type LiteralType struct {
	Base PrimitiveName `json:"base"`
	Raw  string        `json:"raw,omitempty"` // source text, for diagnostics only
}

func (*LiteralType) Kind() Kind { return KindLiteralType }
func (*LiteralType) typeNode()  {}

// IsNullish reports whether t is exactly `null` or `undefined`.
func IsNullish(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && (p.Name == PrimNull || p.Name == PrimUndefined)
}
