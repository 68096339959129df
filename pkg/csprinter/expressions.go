package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintExpression renders a Backend AST expression to C# text.
func PrintExpression(e csharpast.Expression) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ice, ok := r.(*ICE); ok {
				err = ice
				return
			}
			panic(r)
		}
	}()
	var sb strings.Builder
	writeExpression(&sb, e)
	return sb.String(), nil
}

// writeExprWrapped writes e, parenthesizing it when its precedence is below
// minPrec, or (when orEqualWrap is set) equal to minPrec — used for the
// right operand of a left-associative binary operator.
func writeExprWrapped(sb *strings.Builder, e csharpast.Expression, minPrec int, orEqualWrap bool) {
	p := exprPrecedence(e)
	wrap := p < minPrec || (orEqualWrap && p == minPrec)
	if wrap {
		sb.WriteByte('(')
		writeExpression(sb, e)
		sb.WriteByte(')')
	} else {
		writeExpression(sb, e)
	}
}

// writeReceiver writes a member/element-access receiver, wrapping it when
// it is not primary (spec.md §4.1: "member/element access on a non-primary
// requires wrapping the receiver").
func writeReceiver(sb *strings.Builder, e csharpast.Expression) {
	writeExprWrapped(sb, e, PrecPrimary, false)
}

func writeBinaryLike(sb *strings.Builder, left, right csharpast.Expression, op string, prec int) {
	rightAssoc := rightAssociativeOperators[op]
	writeExprWrapped(sb, left, prec, false)
	sb.WriteByte(' ')
	sb.WriteString(op)
	sb.WriteByte(' ')
	writeExprWrapped(sb, right, prec, !rightAssoc)
}

func writeExpression(sb *strings.Builder, e csharpast.Expression) {
	switch n := e.(type) {
	case *csharpast.Literal:
		sb.WriteString(n.Text)

	case *csharpast.Identifier:
		sb.WriteString(EscapeIdentifier(n.Name))

	case *csharpast.Parenthesized:
		sb.WriteByte('(')
		writeExpression(sb, n.Inner)
		sb.WriteByte(')')

	case *csharpast.MemberAccess:
		writeReceiver(sb, n.Receiver)
		if n.Conditional {
			sb.WriteString("?.")
		} else {
			sb.WriteByte('.')
		}
		sb.WriteString(EscapeIdentifier(n.Name))

	case *csharpast.ElementAccess:
		writeReceiver(sb, n.Receiver)
		if n.Conditional {
			sb.WriteString("?[")
		} else {
			sb.WriteByte('[')
		}
		writeExpression(sb, n.Index)
		sb.WriteByte(']')

	case *csharpast.Invocation:
		writeReceiver(sb, n.Callee)
		if len(n.TypeArguments) > 0 {
			sb.WriteByte('<')
			for i, t := range n.TypeArguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeType(sb, t)
			}
			sb.WriteByte('>')
		}
		sb.WriteByte('(')
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpression(sb, a)
		}
		sb.WriteByte(')')

	case *csharpast.ObjectCreation:
		sb.WriteString("new ")
		writeType(sb, n.Type)
		sb.WriteByte('(')
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpression(sb, a)
		}
		sb.WriteByte(')')
		if len(n.Initializers) > 0 {
			sb.WriteString(" { ")
			for i, m := range n.Initializers {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(EscapeIdentifier(m.Name))
				sb.WriteString(" = ")
				writeExpression(sb, m.Value)
			}
			sb.WriteString(" }")
		}

	case *csharpast.ArrayCreation:
		sb.WriteString("new ")
		writeType(sb, n.ElementType)
		if n.Size != nil && len(n.Elements) == 0 {
			sb.WriteByte('[')
			writeExpression(sb, n.Size)
			sb.WriteByte(']')
			return
		}
		sb.WriteString("[]")
		sb.WriteString(" { ")
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpression(sb, el)
		}
		sb.WriteString(" }")

	case *csharpast.StackAllocArrayCreation:
		sb.WriteString("stackalloc ")
		writeType(sb, n.ElementType)
		sb.WriteByte('[')
		writeExpression(sb, n.Size)
		sb.WriteByte(']')

	case *csharpast.Assignment:
		writeBinaryLike(sb, n.Target, n.Value, n.Operator, binaryOperatorPrecedenceOf(n.Operator))

	case *csharpast.Binary:
		writeBinaryLike(sb, n.Left, n.Right, n.Operator, binaryOperatorPrecedenceOf(n.Operator))

	case *csharpast.PrefixUnary:
		sb.WriteString(n.Operator)
		if isAlphaOperator(n.Operator) {
			sb.WriteByte(' ')
		}
		writeExprWrapped(sb, n.Operand, PrecUnary, false)

	case *csharpast.PostfixUnary:
		writeExprWrapped(sb, n.Operand, PrecPostfix, false)
		sb.WriteString(n.Operator)

	case *csharpast.Conditional:
		writeExprWrapped(sb, n.Test, PrecTernary, false)
		sb.WriteString(" ? ")
		writeExpression(sb, n.WhenTrue)
		sb.WriteString(" : ")
		writeExprWrapped(sb, n.WhenFalse, PrecTernary, false)

	case *csharpast.Cast:
		sb.WriteByte('(')
		writeType(sb, n.Type)
		sb.WriteByte(')')
		var operand strings.Builder
		writeExprWrapped(&operand, n.Operand, PrecUnary, false)
		rendered := operand.String()
		if strings.HasPrefix(rendered, "-") {
			sb.WriteByte('(')
			sb.WriteString(rendered)
			sb.WriteByte(')')
		} else {
			sb.WriteString(rendered)
		}

	case *csharpast.As:
		writeExprWrapped(sb, n.Operand, PrecRelational, false)
		sb.WriteString(" as ")
		writeType(sb, n.Type)

	case *csharpast.Is:
		writeExprWrapped(sb, n.Operand, PrecRelational, false)
		sb.WriteString(" is ")
		writePattern(sb, n.Pattern)

	case *csharpast.Default:
		sb.WriteString("default")
		if n.Type != nil {
			sb.WriteByte('(')
			writeType(sb, n.Type)
			sb.WriteByte(')')
		}

	case *csharpast.Await:
		sb.WriteString("await ")
		writeExprWrapped(sb, n.Operand, PrecUnary, false)

	case *csharpast.Lambda:
		if n.IsAsync {
			sb.WriteString("async ")
		}
		writeLambdaParams(sb, n.Params)
		sb.WriteString(" => ")
		if n.Block != nil {
			writeBlock(sb, n.Block, 0)
		} else {
			writeExpression(sb, n.ExprBody)
		}

	case *csharpast.InterpolatedString:
		sb.WriteString(`$"`)
		for _, part := range n.Parts {
			if part.Expr == nil {
				sb.WriteString(escapeInterpolatedText(part.Text))
				continue
			}
			var exprText strings.Builder
			writeExpression(&exprText, part.Expr)
			rendered := exprText.String()
			sb.WriteByte('{')
			if strings.Contains(rendered, ":") {
				sb.WriteByte('(')
				sb.WriteString(rendered)
				sb.WriteByte(')')
			} else {
				sb.WriteString(rendered)
			}
			if part.Format != "" {
				sb.WriteByte(':')
				sb.WriteString(part.Format)
			}
			sb.WriteByte('}')
		}
		sb.WriteByte('"')

	case *csharpast.Throw:
		sb.WriteString("throw ")
		writeExpression(sb, n.Argument)

	case *csharpast.SuppressNullableWarning:
		writeExprWrapped(sb, n.Operand, PrecPostfix, false)
		sb.WriteByte('!')

	case *csharpast.Typeof:
		sb.WriteString("typeof(")
		writeType(sb, n.Type)
		sb.WriteByte(')')

	case *csharpast.SwitchExpression:
		writeReceiver(sb, n.Discriminant)
		sb.WriteString(" switch\n{\n")
		for i, arm := range n.Arms {
			sb.WriteString(indentStr(1))
			writePattern(sb, arm.Pattern)
			if arm.Guard != nil {
				sb.WriteString(" when ")
				writeExpression(sb, arm.Guard)
			}
			sb.WriteString(" => ")
			writeExpression(sb, arm.Result)
			if i < len(n.Arms)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('}')

	default:
		iceUnknownKind("expression", string(e.Kind()))
	}
}

func writeLambdaParams(sb *strings.Builder, params []csharpast.LambdaParam) {
	if len(params) == 1 && params[0].Type == nil {
		sb.WriteString(EscapeIdentifier(params[0].Name))
		return
	}
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Type != nil {
			writeType(sb, p.Type)
			sb.WriteByte(' ')
		}
		sb.WriteString(EscapeIdentifier(p.Name))
	}
	sb.WriteByte(')')
}

func isAlphaOperator(op string) bool {
	if op == "" {
		return false
	}
	c := op[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// escapeInterpolatedText escapes literal `{`/`}` braces (doubled, per C#
// interpolated-string syntax) in a text run of an interpolated string.
// Quote/backslash/control-character escaping is already applied by lowering
// when it built the Literal/InterpolatedPart text.
func escapeInterpolatedText(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	return s
}
