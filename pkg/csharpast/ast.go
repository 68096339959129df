// Package csharpast defines the Backend AST: a typed C# syntax model used as
// the sole intermediate form between lowering (internal/emitter) and
// printing (pkg/csprinter). It is a closed, tagged-variant node set — every
// node carries a NodeKind discriminator and is immutable once constructed.
package csharpast

// NodeKind discriminates every Backend AST node. The printer's switch over
// NodeKind is exhaustive by construction: an unrecognized kind reaching the
// printer is an internal compiler error (see pkg/csprinter.ErrUnknownKind).
type NodeKind string

// Node is the base interface implemented by every Backend AST node.
type Node interface {
	Kind() NodeKind
}

// Expression is any Backend AST node that produces a value when printed.
// No Expression variant ever embeds a Statement, with the single documented
// exception of Lambda, which may carry a Block body (spec.md §3.1).
type Expression interface {
	Node
	expressionNode()
}

// Statement is any Backend AST node that prints as a C# statement.
type Statement interface {
	Node
	statementNode()
}

// Pattern is a C# pattern-matching pattern. Only Is, SwitchExpression, and
// CasePatternLabel ever carry a Pattern (spec.md §3.1 invariant).
type Pattern interface {
	Node
	patternNode()
}

// Type is a C# type reference.
type Type interface {
	Node
	typeNode()
}

// Using is one `using X;` or `using X = Y;` directive.
type Using struct {
	Namespace string
	Alias     string // "" unless this is a using-alias directive
}

// CompilationUnit is one emitted C# source file's root: an optional header
// comment, the file's `using` directives (in any order — the printer sorts
// them by namespace when it renders the unit), and exactly one namespace
// declaration.
type CompilationUnit struct {
	Header    string
	Usings    []Using
	Namespace *NamespaceDeclaration
}

func (*CompilationUnit) Kind() NodeKind { return KindCompilationUnit }

// NamespaceMember is anything that can appear directly inside a namespace
// block: a type declaration, a global method (only legal inside a static
// container's generated class, never at true namespace scope — callers
// enforce that), a prelude block of raw text, or a blank line for spacing.
type NamespaceMember interface {
	Node
	namespaceMemberNode()
}

// NamespaceDeclaration is `namespace N.M { ... }`.
type NamespaceDeclaration struct {
	Name    string
	Members []NamespaceMember
}

func (*NamespaceDeclaration) Kind() NodeKind { return KindNamespaceDeclaration }

// BlankLine is a deliberate vertical gap between members, printed as a
// single empty line. It exists so lowering can control member spacing
// without the printer guessing when to add one.
type BlankLine struct{}

func (BlankLine) Kind() NodeKind       { return KindBlankLine }
func (BlankLine) namespaceMemberNode() {}
func (BlankLine) memberNode()          {}

// Comment is a single-line `// text` comment emitted as a member or
// statement in its own right (used by lowering to annotate a RawType/RawExpression
// escape hatch per spec.md §3.1).
type Comment struct {
	Text string
}

func (*Comment) Kind() NodeKind       { return KindComment }
func (*Comment) namespaceMemberNode() {}
func (*Comment) memberNode()          {}
func (*Comment) statementNode()       {}

const (
	KindCompilationUnit     NodeKind = "CompilationUnit"
	KindNamespaceDeclaration NodeKind = "NamespaceDeclaration"
	KindBlankLine           NodeKind = "BlankLine"
	KindComment             NodeKind = "Comment"
)
