package ir

// Attribute is a source-level decorator/annotation carried through to the
// Backend AST unchanged (spec.md §6.1: "Attributes carried on declarations
// pass through to the backend").
type Attribute struct {
	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments,omitempty"`
}

// TypeParam is one generic type parameter, with its optional constraint.
type TypeParam struct {
	Name       string `json:"name"`
	Constraint Type   `json:"constraint,omitempty"`
}

// Visibility is the TypeScript-level accessibility modifier.
type Visibility string

const (
	VisPublic    Visibility = "public"
	VisPrivate   Visibility = "private"
	VisProtected Visibility = "protected"
	VisInternal  Visibility = "internal"
)

// FunctionDeclaration is a top-level or nested named function, including
// generator functions (IsGenerator) and their bidirectional generics
// (YieldType/NextType, spec.md §4.6).
type FunctionDeclaration struct {
	stmtBase
	Name          string      `json:"name"`
	Attributes    []Attribute `json:"attributes,omitempty"`
	TypeParams    []TypeParam `json:"typeParams,omitempty"`
	Params        []Param     `json:"params"`
	ReturnType    Type        `json:"returnType,omitempty"`
	YieldType     Type        `json:"yieldType,omitempty"`
	NextType      Type        `json:"nextType,omitempty"`
	Body          *Block      `json:"body"`
	IsAsync       bool        `json:"isAsync"`
	IsGenerator   bool        `json:"isGenerator"`
	Exported      bool        `json:"exported"`
}

func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// ClassMember is any member of a ClassDeclaration.
type ClassMember interface {
	Node
	classMemberNode()
}

type classMemberBase struct{}

func (classMemberBase) classMemberNode() {}

// PropertyDeclaration is a class field, possibly with a destructuring
// pattern (static-field destructuring, spec.md §4.4).
type PropertyDeclaration struct {
	classMemberBase
	Name           string      `json:"name"`
	Attributes     []Attribute `json:"attributes,omitempty"`
	TypeAnnotation Type        `json:"typeAnnotation,omitempty"`
	Pattern        Pattern     `json:"pattern,omitempty"`
	Initializer    Expression  `json:"initializer,omitempty"`
	Visibility     Visibility  `json:"visibility"`
	IsStatic       bool        `json:"isStatic"`
	IsReadonly     bool        `json:"isReadonly"`
	IsOptional     bool        `json:"isOptional"`
}

func (*PropertyDeclaration) Kind() Kind { return KindPropertyDecl }

// MethodDeclaration is a class method, including accessors (Kind field
// distinguishes "method"/"get"/"set") and generators.
type MethodDeclaration struct {
	classMemberBase
	Name         string      `json:"name"`
	AccessorKind string      `json:"accessorKind,omitempty"` // "", "get", "set"
	Attributes   []Attribute `json:"attributes,omitempty"`
	TypeParams   []TypeParam `json:"typeParams,omitempty"`
	Params       []Param     `json:"params"`
	ReturnType   Type        `json:"returnType,omitempty"`
	YieldType    Type        `json:"yieldType,omitempty"`
	NextType     Type        `json:"nextType,omitempty"`
	Body         *Block      `json:"body"`
	Visibility   Visibility  `json:"visibility"`
	IsStatic     bool        `json:"isStatic"`
	IsAsync      bool        `json:"isAsync"`
	IsGenerator  bool        `json:"isGenerator"`
	IsAbstract   bool        `json:"isAbstract"`
}

func (*MethodDeclaration) Kind() Kind { return KindMethodDecl }

// ConstructorDeclaration is a class constructor.
type ConstructorDeclaration struct {
	classMemberBase
	Params []Param `json:"params"`
	Body   *Block  `json:"body"`
}

func (*ConstructorDeclaration) Kind() Kind { return KindConstructorDecl }

// ClassDeclaration is `class Name<T> extends Base implements I1, I2 { ... }`.
// SelfTypeConstraint is set by the validator when the class relies on a
// structural "this"-returning interface, realized in C# via a CRTP-style
// self-type generic constraint (spec.md §4.7).
type ClassDeclaration struct {
	stmtBase
	Name               string        `json:"name"`
	Attributes         []Attribute   `json:"attributes,omitempty"`
	TypeParams         []TypeParam   `json:"typeParams,omitempty"`
	Extends            *ReferenceType `json:"extends,omitempty"`
	Implements         []*ReferenceType `json:"implements,omitempty"`
	Members            []ClassMember `json:"members"`
	IsAbstract         bool          `json:"isAbstract"`
	SelfTypeConstraint bool          `json:"selfTypeConstraint"`
	Exported           bool          `json:"exported"`
}

func (*ClassDeclaration) Kind() Kind { return KindClassDeclaration }

// InterfaceMember is a member of an InterfaceDeclaration.
type InterfaceMember struct {
	Name         string      `json:"name"`
	AccessorKind string      `json:"accessorKind,omitempty"` // "", "get", "set"
	Params       []Param     `json:"params,omitempty"`       // non-nil => method signature
	ReturnType   Type        `json:"returnType,omitempty"`
	TypeAnnotation Type      `json:"typeAnnotation,omitempty"` // property signature type
	IsOptional   bool        `json:"isOptional"`
}

// InterfaceDeclaration is `interface Name<T> extends I1, I2 { ... }`.
type InterfaceDeclaration struct {
	stmtBase
	Name       string             `json:"name"`
	TypeParams []TypeParam        `json:"typeParams,omitempty"`
	Extends    []*ReferenceType   `json:"extends,omitempty"`
	Members    []InterfaceMember  `json:"members"`
	Exported   bool               `json:"exported"`
}

func (*InterfaceDeclaration) Kind() Kind { return KindInterfaceDecl }

// EnumMember is one `Name [= value]` entry.
type EnumMember struct {
	Name  string     `json:"name"`
	Value Expression `json:"value,omitempty"`
}

// EnumDeclaration is `enum Name { A, B = 2, C }`.
type EnumDeclaration struct {
	stmtBase
	Name     string       `json:"name"`
	Members  []EnumMember `json:"members"`
	Exported bool         `json:"exported"`
}

func (*EnumDeclaration) Kind() Kind { return KindEnumDeclaration }

// TypeAliasDeclaration is `type Name<T> = ...`. Structural object-type
// aliases lower to a sealed class/struct (spec.md §4.7); non-structural
// aliases lower to a comment.
type TypeAliasDeclaration struct {
	stmtBase
	Name            string             `json:"name"`
	TypeParams      []TypeParam        `json:"typeParams,omitempty"`
	AliasedType     Type               `json:"aliasedType"`
	IsStructural    bool               `json:"isStructural"`
	StructMembers   []InterfaceMember  `json:"structMembers,omitempty"`
	EmitAsStruct    bool               `json:"emitAsStruct"`
	Exported        bool               `json:"exported"`
}

func (*TypeAliasDeclaration) Kind() Kind { return KindTypeAliasDecl }

// ImportSpecifier is one named import inside an ImportDeclaration.
type ImportSpecifier struct {
	ClrRef    *ClrTypeRef `json:"clrRef,omitempty"`
	Imported  string      `json:"imported"`
	Local     string      `json:"local"`
}

// ImportDeclaration is `import {a, b as c} from "source"`.
type ImportDeclaration struct {
	Source             string            `json:"source"`
	ResolvedNamespace   string            `json:"resolvedNamespace,omitempty"`
	Specifiers          []ImportSpecifier `json:"specifiers"`
	IsLocal             bool              `json:"isLocal"`
	IsClr               bool              `json:"isClr"`
}

func (*ImportDeclaration) Kind() Kind { return KindImportDeclaration }
