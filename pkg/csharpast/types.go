package csharpast

// Predefined is the closed set of C# keyword type names.
type Predefined string

const (
	PredefBool    Predefined = "bool"
	PredefByte    Predefined = "byte"
	PredefSByte   Predefined = "sbyte"
	PredefShort   Predefined = "short"
	PredefUShort  Predefined = "ushort"
	PredefInt     Predefined = "int"
	PredefUInt    Predefined = "uint"
	PredefLong    Predefined = "long"
	PredefULong   Predefined = "ulong"
	PredefFloat   Predefined = "float"
	PredefDouble  Predefined = "double"
	PredefDecimal Predefined = "decimal"
	PredefChar    Predefined = "char"
	PredefString  Predefined = "string"
	PredefObject  Predefined = "object"
	PredefVoid    Predefined = "void"
)

// PredefinedType is one of the C# keyword types.
type PredefinedType struct {
	Name Predefined
}

func (*PredefinedType) Kind() NodeKind { return KindPredefinedType }
func (*PredefinedType) typeNode()      {}

// IdentifierType is a qualified name with optional type arguments, e.g.
// `global::Tsonic.Runtime.Union<T1, T2>`.
type IdentifierType struct {
	Name          string
	TypeArguments []Type
}

func (*IdentifierType) Kind() NodeKind { return KindIdentifierType }
func (*IdentifierType) typeNode()      {}

// NullableType is `T?`.
type NullableType struct {
	Element Type
}

func (*NullableType) Kind() NodeKind { return KindNullableType }
func (*NullableType) typeNode()      {}

// ArrayType is `T[]` (Rank > 1 produces `T[,]`-style multi-dimensional arrays).
type ArrayType struct {
	Element Type
	Rank    int
}

func (*ArrayType) Kind() NodeKind { return KindArrayType }
func (*ArrayType) typeNode()      {}

// PointerType is `T*`, reserved for `stackalloc`-adjacent lowerings.
type PointerType struct {
	Element Type
}

func (*PointerType) Kind() NodeKind { return KindPointerType }
func (*PointerType) typeNode()      {}

// TupleElement is one slot of a TupleType; Name == "" for unnamed elements.
type TupleElement struct {
	Type Type
	Name string
}

// TupleType is `(T1, T2)` or `(T1 a, T2 b)`.
type TupleType struct {
	Elements []TupleElement
}

func (*TupleType) Kind() NodeKind { return KindTupleType }
func (*TupleType) typeNode()      {}

// VarType is the implicit `var` type.
type VarType struct{}

func (VarType) Kind() NodeKind { return KindVarType }
func (VarType) typeNode()      {}

// RawType is an opaque escape hatch: verbatim C# type text. Forbidden except
// where lowering documents a reason and attaches a Comment (spec.md §3.1);
// its presence in a golden output for the supported subset is a test failure.
type RawType struct {
	Text string
}

func (*RawType) Kind() NodeKind { return KindRawType }
func (*RawType) typeNode()      {}

const (
	KindPredefinedType NodeKind = "PredefinedType"
	KindIdentifierType NodeKind = "IdentifierType"
	KindNullableType   NodeKind = "NullableType"
	KindArrayType      NodeKind = "ArrayType"
	KindPointerType    NodeKind = "PointerType"
	KindTupleType      NodeKind = "TupleType"
	KindVarType        NodeKind = "VarType"
	KindRawType        NodeKind = "RawType"
)
