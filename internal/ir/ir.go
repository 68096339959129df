// Package ir defines the intermediate representation this engine consumes.
//
// The IR is produced by an upstream TypeScript frontend (type checker, IR
// builder, numeric proof pass) and is treated here as an external data shape:
// this package owns only the Go-side model of that shape and a decoder for
// its wire format, never the analysis that produces it.
package ir

// Kind discriminates every tagged-variant node in the IR tree. Unlike the
// Backend AST (pkg/csharpast), lowering never fails on an unrecognized IR
// Kind by panicking mid-tree: unknown IR is a frontend contract violation and
// is reported as an ICE at the point a lowering function switches on it.
type Kind string

// Node is the base interface implemented by every IR tree node.
type Node interface {
	Kind() Kind
}

// Position is a zero-indexed source location, carried through for diagnostics.
type Position struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Expression is any IR node that produces a value.
type Expression interface {
	Node
	// InferredType returns the frontend's inferred type for this expression,
	// or nil when the frontend could not (or chose not to) infer one. Most
	// lowerings degrade gracefully when this is nil; boolean-context
	// lowering does not (see internal/emitter/boolean.go).
	InferredType() Type
	Position() Position
	expressionNode()
}

// Statement is any IR node that performs an action but produces no value.
type Statement interface {
	Node
	Position() Position
	statementNode()
}

// Pattern is a destructuring target: a variable declarator, a parameter, a
// for-of loop head, or an assignment-expression left-hand side.
type Pattern interface {
	Node
	Position() Position
	patternNode()
}

// Module is one source file's worth of lowered-to-be IR.
//
// IsStaticContainer modules have no module-level `this`: every top-level
// `const`/`let`/function becomes a static field/method on a generated class
// named ClassName (see internal/emitter/declarations.go, LowerModule).
// Non-static-container modules contribute their top-level type declarations
// directly as namespace members.
type Module struct {
	FilePath          string              `json:"filePath"`
	Namespace         string              `json:"namespace"`
	ClassName         string              `json:"className"`
	IsStaticContainer bool                `json:"isStaticContainer"`
	Imports           []*ImportDeclaration `json:"imports"`
	Body              []Statement         `json:"body"`
	Exports           []string            `json:"exports"`
}

const (
	// Expression kinds.
	KindNumericLiteral     Kind = "NumericLiteral"
	KindStringLiteral      Kind = "StringLiteral"
	KindBooleanLiteral     Kind = "BooleanLiteral"
	KindNullLiteral        Kind = "NullLiteral"
	KindIdentifier         Kind = "Identifier"
	KindThisExpression     Kind = "ThisExpression"
	KindMemberAccess       Kind = "MemberAccess"
	KindElementAccess      Kind = "ElementAccess"
	KindCallExpression     Kind = "CallExpression"
	KindNewExpression      Kind = "NewExpression"
	KindBinaryExpression   Kind = "BinaryExpression"
	KindLogicalExpression  Kind = "LogicalExpression"
	KindUnaryExpression    Kind = "UnaryExpression"
	KindUpdateExpression   Kind = "UpdateExpression"
	KindConditionalExpr    Kind = "ConditionalExpression"
	KindAssignmentExpr     Kind = "AssignmentExpression"
	KindTemplateLiteral    Kind = "TemplateLiteral"
	KindObjectLiteral      Kind = "ObjectLiteral"
	KindArrayLiteral       Kind = "ArrayLiteral"
	KindArrowFunction      Kind = "ArrowFunctionExpression"
	KindFunctionExpression Kind = "FunctionExpression"
	KindSpreadElement      Kind = "SpreadElement"
	KindTypeOfExpression   Kind = "TypeOfExpression"
	KindAwaitExpression    Kind = "AwaitExpression"
	KindYieldExpression    Kind = "YieldExpression"
	KindParenthesized      Kind = "ParenthesizedExpression"

	// Statement kinds.
	KindBlockStatement      Kind = "BlockStatement"
	KindVariableStatement   Kind = "VariableStatement"
	KindExpressionStatement Kind = "ExpressionStatement"
	KindIfStatement         Kind = "IfStatement"
	KindForStatement        Kind = "ForStatement"
	KindForOfStatement      Kind = "ForOfStatement"
	KindForInStatement      Kind = "ForInStatement"
	KindWhileStatement      Kind = "WhileStatement"
	KindDoWhileStatement    Kind = "DoWhileStatement"
	KindSwitchStatement     Kind = "SwitchStatement"
	KindTryStatement        Kind = "TryStatement"
	KindThrowStatement      Kind = "ThrowStatement"
	KindReturnStatement     Kind = "ReturnStatement"
	KindBreakStatement      Kind = "BreakStatement"
	KindContinueStatement   Kind = "ContinueStatement"
	KindEmptyStatement      Kind = "EmptyStatement"

	// Declaration kinds (also Statements: top-level or nested declarations).
	KindFunctionDeclaration Kind = "FunctionDeclaration"
	KindClassDeclaration    Kind = "ClassDeclaration"
	KindInterfaceDecl       Kind = "InterfaceDeclaration"
	KindEnumDeclaration     Kind = "EnumDeclaration"
	KindTypeAliasDecl       Kind = "TypeAliasDeclaration"
	KindPropertyDecl        Kind = "PropertyDeclaration"
	KindMethodDecl          Kind = "MethodDeclaration"
	KindConstructorDecl     Kind = "ConstructorDeclaration"
	KindImportDeclaration   Kind = "ImportDeclaration"

	// Pattern kinds.
	KindIdentifierPattern Kind = "IdentifierPattern"
	KindArrayPattern      Kind = "ArrayPattern"
	KindObjectPattern     Kind = "ObjectPattern"

	// Type kinds.
	KindPrimitiveType      Kind = "PrimitiveType"
	KindReferenceType      Kind = "ReferenceType"
	KindUnionType          Kind = "UnionType"
	KindArrayType          Kind = "ArrayType"
	KindDictionaryType     Kind = "DictionaryType"
	KindFunctionType       Kind = "FunctionType"
	KindTypeParameterType  Kind = "TypeParameterType"
	KindTupleType          Kind = "TupleType"
	KindLiteralType        Kind = "LiteralType"
)
