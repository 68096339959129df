package csharpast

// TypeDeclarationKind distinguishes the four declarable type shapes.
type TypeDeclarationKind string

const (
	TypeClass     TypeDeclarationKind = "class"
	TypeStruct    TypeDeclarationKind = "struct"
	TypeInterface TypeDeclarationKind = "interface"
	TypeEnum      TypeDeclarationKind = "enum"
)

// EnumMember is one `Name [= Value]` entry of an enum declaration.
type EnumMember struct {
	Name  string
	Value Expression // nil when the compiler should assign the value
}

// TypeDeclaration is a class/struct/interface/enum declaration. It may
// appear directly under a NamespaceDeclaration or nested inside another
// TypeDeclaration's Members, so it implements both NamespaceMember and
// Member.
type TypeDeclaration struct {
	DeclKind    TypeDeclarationKind
	Attributes  []Attribute
	Modifiers   []Modifier
	Name        string
	TypeParams  []TypeParamConstraint
	BaseTypes   []Type // base class/interfaces for class/struct/interface; unused for enum
	Members     []Member
	EnumMembers []EnumMember // populated only when DeclKind == TypeEnum
}

func (*TypeDeclaration) Kind() NodeKind       { return KindTypeDeclaration }
func (*TypeDeclaration) namespaceMemberNode() {}
func (*TypeDeclaration) memberNode()          {}

const (
	KindTypeDeclaration NodeKind = "TypeDeclaration"
)
