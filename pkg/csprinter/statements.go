package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// indentStr returns level indentation steps of 4 spaces each (spec.md §4.1).
func indentStr(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("    ", level)
}

// PrintStatement renders a single Backend AST statement to C# text at the
// given indentation level (0 = no leading indent on the first line).
func PrintStatement(s csharpast.Statement, indent int) (out string, err error) {
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
	writeStatement(&sb, s, indent)
	return sb.String(), nil
}

func writeBlock(sb *strings.Builder, blk *csharpast.Block, indent int) {
	sb.WriteString("{\n")
	for _, s := range blk.Statements {
		sb.WriteString(indentStr(indent + 1))
		writeStatement(sb, s, indent+1)
		sb.WriteByte('\n')
	}
	sb.WriteString(indentStr(indent))
	sb.WriteByte('}')
}

func writeTypedParamList(sb *strings.Builder, params []csharpast.LambdaParam) {
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

func writeStatement(sb *strings.Builder, s csharpast.Statement, indent int) {
	switch n := s.(type) {
	case *csharpast.Block:
		writeBlock(sb, n, indent)

	case *csharpast.LocalDeclaration:
		writeType(sb, n.Type)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		if n.Init != nil {
			sb.WriteString(" = ")
			writeExpression(sb, n.Init)
		}
		sb.WriteByte(';')

	case *csharpast.LocalFunction:
		if n.IsAsync {
			sb.WriteString("async ")
		}
		writeType(sb, n.ReturnType)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		writeTypedParamList(sb, n.Params)
		sb.WriteByte(' ')
		writeBlock(sb, n.Body, indent)

	case *csharpast.ExpressionStatement:
		writeExpression(sb, n.Expr)
		sb.WriteByte(';')

	case *csharpast.If:
		sb.WriteString("if (")
		writeExpression(sb, n.Test)
		sb.WriteString(") ")
		writeBlock(sb, n.Then, indent)
		if n.Else != nil {
			sb.WriteByte('\n')
			sb.WriteString(indentStr(indent))
			sb.WriteString("else ")
			switch e := n.Else.(type) {
			case *csharpast.If:
				writeStatement(sb, e, indent)
			case *csharpast.Block:
				writeBlock(sb, e, indent)
			default:
				iceUnknownKind("if-else-arm", string(n.Else.Kind()))
			}
		}

	case *csharpast.While:
		sb.WriteString("while (")
		writeExpression(sb, n.Test)
		sb.WriteString(") ")
		writeBlock(sb, n.Body, indent)

	case *csharpast.DoWhile:
		sb.WriteString("do ")
		writeBlock(sb, n.Body, indent)
		sb.WriteString(" while (")
		writeExpression(sb, n.Test)
		sb.WriteString(");")

	case *csharpast.For:
		sb.WriteString("for (")
		if n.Init != nil {
			writeStatement(sb, n.Init, indent)
		} else {
			sb.WriteByte(';')
		}
		sb.WriteByte(' ')
		if n.Test != nil {
			writeExpression(sb, n.Test)
		}
		sb.WriteString("; ")
		if n.Update != nil {
			writeExpression(sb, n.Update)
		}
		sb.WriteString(") ")
		writeBlock(sb, n.Body, indent)

	case *csharpast.Foreach:
		if n.IsAwait {
			sb.WriteString("await ")
		}
		sb.WriteString("foreach (")
		writeType(sb, n.ElementType)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		sb.WriteString(" in ")
		writeExpression(sb, n.Source)
		sb.WriteString(") ")
		writeBlock(sb, n.Body, indent)

	case *csharpast.Switch:
		sb.WriteString("switch (")
		writeExpression(sb, n.Discriminant)
		sb.WriteString(")\n")
		sb.WriteString(indentStr(indent))
		sb.WriteString("{\n")
		for _, sec := range n.Sections {
			for _, lbl := range sec.Labels {
				sb.WriteString(indentStr(indent + 1))
				if lbl == nil {
					sb.WriteString("default:\n")
					continue
				}
				sb.WriteString("case ")
				writePattern(sb, lbl.Pattern)
				if lbl.Guard != nil {
					sb.WriteString(" when ")
					writeExpression(sb, lbl.Guard)
				}
				sb.WriteString(":\n")
			}
			for _, bodyStmt := range sec.Body {
				sb.WriteString(indentStr(indent + 2))
				writeStatement(sb, bodyStmt, indent+2)
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(indentStr(indent))
		sb.WriteByte('}')

	case *csharpast.Try:
		sb.WriteString("try ")
		writeBlock(sb, n.Block, indent)
		for _, c := range n.Catches {
			sb.WriteByte('\n')
			sb.WriteString(indentStr(indent))
			sb.WriteString("catch ")
			if c.Type != nil {
				sb.WriteByte('(')
				writeType(sb, c.Type)
				if c.Name != "" {
					sb.WriteByte(' ')
					sb.WriteString(EscapeIdentifier(c.Name))
				}
				sb.WriteString(") ")
			}
			writeBlock(sb, c.Body, indent)
		}
		if n.Finally != nil {
			sb.WriteByte('\n')
			sb.WriteString(indentStr(indent))
			sb.WriteString("finally ")
			writeBlock(sb, n.Finally, indent)
		}

	case *csharpast.ThrowStatement:
		sb.WriteString("throw")
		if n.Argument != nil {
			sb.WriteByte(' ')
			writeExpression(sb, n.Argument)
		}
		sb.WriteByte(';')

	case *csharpast.Return:
		sb.WriteString("return")
		if n.Argument != nil {
			sb.WriteByte(' ')
			writeExpression(sb, n.Argument)
		}
		sb.WriteByte(';')

	case csharpast.Break:
		sb.WriteString("break;")

	case csharpast.Continue:
		sb.WriteString("continue;")

	case csharpast.Empty:
		sb.WriteByte(';')

	case *csharpast.YieldReturn:
		sb.WriteString("yield return ")
		writeExpression(sb, n.Argument)
		sb.WriteByte(';')

	case csharpast.YieldBreak:
		sb.WriteString("yield break;")

	case *csharpast.Comment:
		sb.WriteString("// ")
		sb.WriteString(n.Text)

	default:
		iceUnknownKind("statement", string(s.Kind()))
	}
}
