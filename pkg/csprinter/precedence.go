package csprinter

import "github.com/tsonic-lang/backend/pkg/csharpast"

// Precedence levels per spec.md §4.1. Higher binds tighter.
const (
	PrecLambdaThrow    = 0
	PrecAssignment     = 1
	PrecTernary        = 2
	PrecNullCoalesce   = 3
	PrecLogicalOr      = 4
	PrecLogicalAnd     = 5
	PrecBitwiseOr      = 6
	PrecXor            = 7
	PrecBitwiseAnd     = 8
	PrecEquality       = 9
	PrecRelational     = 10
	PrecShift          = 11
	PrecAdditive       = 12
	PrecMultiplicative = 13
	PrecUnary          = 14
	PrecPostfix        = 15
	PrecPrimary        = 16
)

var binaryOperatorPrecedence = map[string]int{
	"=": PrecAssignment, "+=": PrecAssignment, "-=": PrecAssignment,
	"*=": PrecAssignment, "/=": PrecAssignment, "%=": PrecAssignment,
	"&=": PrecAssignment, "|=": PrecAssignment, "^=": PrecAssignment,
	"<<=": PrecAssignment, ">>=": PrecAssignment, "??=": PrecAssignment,

	"??": PrecNullCoalesce,
	"||": PrecLogicalOr,
	"&&": PrecLogicalAnd,
	"|":  PrecBitwiseOr,
	"^":  PrecXor,
	"&":  PrecBitwiseAnd,

	"==": PrecEquality, "!=": PrecEquality,

	"<": PrecRelational, ">": PrecRelational,
	"<=": PrecRelational, ">=": PrecRelational,
	"is": PrecRelational, "as": PrecRelational,

	"<<": PrecShift, ">>": PrecShift, ">>>": PrecShift,

	"+": PrecAdditive, "-": PrecAdditive,

	"*": PrecMultiplicative, "/": PrecMultiplicative, "%": PrecMultiplicative,
}

// rightAssociativeOperators contains every operator whose right operand at
// the same precedence as its parent is NOT parenthesized (assignment
// chains: `a = b = c`).
var rightAssociativeOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, "??=": true,
}

// binaryOperatorPrecedenceOf returns the precedence of a binary operator
// token, defaulting to PrecPrimary for any operator not in the table (there
// is none outside the Backend AST's closed operator set, but a safe
// fallback avoids a spurious ICE here — malformed operator text is instead
// caught wherever it is constructed).
func binaryOperatorPrecedenceOf(op string) int {
	if p, ok := binaryOperatorPrecedence[op]; ok {
		return p
	}
	return PrecPrimary
}

// exprPrecedence returns the precedence of an Expression node for
// parenthesization purposes.
func exprPrecedence(e csharpast.Expression) int {
	switch n := e.(type) {
	case *csharpast.Assignment:
		return binaryOperatorPrecedenceOf(n.Operator)
	case *csharpast.Conditional:
		return PrecTernary
	case *csharpast.Binary:
		return binaryOperatorPrecedenceOf(n.Operator)
	case *csharpast.As:
		return PrecRelational
	case *csharpast.Is:
		return PrecRelational
	case *csharpast.PrefixUnary:
		return PrecUnary
	case *csharpast.Cast:
		return PrecUnary
	case *csharpast.Await:
		return PrecUnary
	case *csharpast.PostfixUnary:
		return PrecPostfix
	case *csharpast.SuppressNullableWarning:
		return PrecPostfix
	case *csharpast.MemberAccess, *csharpast.ElementAccess, *csharpast.Invocation,
		*csharpast.ObjectCreation, *csharpast.ArrayCreation, *csharpast.StackAllocArrayCreation,
		*csharpast.Identifier, *csharpast.Literal, *csharpast.Parenthesized,
		*csharpast.Default, *csharpast.Typeof, *csharpast.InterpolatedString,
		*csharpast.SwitchExpression:
		return PrecPrimary
	case *csharpast.Lambda, *csharpast.Throw:
		return PrecLambdaThrow
	default:
		return PrecPrimary
	}
}

// isPrimary reports whether e never needs parenthesizing as a receiver of
// member/element access.
func isPrimary(e csharpast.Expression) bool {
	return exprPrecedence(e) >= PrecPrimary
}
