package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintMember renders a single type member to C# text at the given
// indentation level.
func PrintMember(m csharpast.Member, indent int) (out string, err error) {
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
	writeMember(&sb, m, indent)
	return sb.String(), nil
}

func writeAttributes(sb *strings.Builder, attrs []csharpast.Attribute, indent int) {
	for _, a := range attrs {
		sb.WriteString(indentStr(indent))
		sb.WriteByte('[')
		sb.WriteString(EscapeQualifiedName(a.Name))
		if len(a.Arguments) > 0 {
			sb.WriteByte('(')
			for i, arg := range a.Arguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeExpression(sb, arg)
			}
			sb.WriteByte(')')
		}
		sb.WriteString("]\n")
	}
}

func writeModifiers(sb *strings.Builder, mods []csharpast.Modifier) {
	for _, m := range mods {
		sb.WriteString(string(m))
		sb.WriteByte(' ')
	}
}

func writeParameterList(sb *strings.Builder, params []csharpast.Parameter) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Modifier != csharpast.ParamNone {
			sb.WriteString(string(p.Modifier))
			sb.WriteByte(' ')
		}
		writeType(sb, p.Type)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(p.Name))
		if p.Default != nil {
			sb.WriteString(" = ")
			writeExpression(sb, p.Default)
		}
	}
	sb.WriteByte(')')
}

func writeTypeParamList(sb *strings.Builder, tps []csharpast.TypeParamConstraint) {
	if len(tps) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, tp := range tps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(EscapeIdentifier(tp.Name))
	}
	sb.WriteByte('>')
}

func writeTypeParamConstraints(sb *strings.Builder, tps []csharpast.TypeParamConstraint, indent int) {
	for _, tp := range tps {
		if len(tp.Constraints) == 0 {
			continue
		}
		sb.WriteByte('\n')
		sb.WriteString(indentStr(indent + 1))
		sb.WriteString("where ")
		sb.WriteString(EscapeIdentifier(tp.Name))
		sb.WriteString(" : ")
		for i, c := range tp.Constraints {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, c)
		}
	}
}

func writeMember(sb *strings.Builder, m csharpast.Member, indent int) {
	switch n := m.(type) {
	case csharpast.BlankLine:
		// caller handles the blank line itself; nothing to print.

	case *csharpast.Comment:
		sb.WriteString(indentStr(indent))
		sb.WriteString("// ")
		sb.WriteString(n.Text)

	case *csharpast.Field:
		writeAttributes(sb, n.Attributes, indent)
		sb.WriteString(indentStr(indent))
		writeModifiers(sb, n.Modifiers)
		writeType(sb, n.Type)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		if n.Init != nil {
			sb.WriteString(" = ")
			writeExpression(sb, n.Init)
		}
		sb.WriteByte(';')

	case *csharpast.Property:
		writeAttributes(sb, n.Attributes, indent)
		sb.WriteString(indentStr(indent))
		writeModifiers(sb, n.Modifiers)
		writeType(sb, n.Type)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		sb.WriteString(" { ")
		if n.HasGetter {
			if n.GetterBody != nil {
				sb.WriteString("get ")
				writeBlock(sb, n.GetterBody, indent)
				sb.WriteByte(' ')
			} else {
				sb.WriteString("get; ")
			}
		}
		if n.HasSetter {
			setterKeyword := "set"
			if n.IsInitOnly {
				setterKeyword = "init"
			}
			if n.SetterBody != nil {
				sb.WriteString(setterKeyword)
				sb.WriteByte(' ')
				writeBlock(sb, n.SetterBody, indent)
				sb.WriteByte(' ')
			} else {
				sb.WriteString(setterKeyword)
				sb.WriteString("; ")
			}
		}
		sb.WriteByte('}')
		if n.Initializer != nil {
			sb.WriteString(" = ")
			writeExpression(sb, n.Initializer)
			sb.WriteByte(';')
		}

	case *csharpast.Method:
		writeAttributes(sb, n.Attributes, indent)
		sb.WriteString(indentStr(indent))
		writeModifiers(sb, n.Modifiers)
		writeType(sb, n.ReturnType)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		writeTypeParamList(sb, n.TypeParams)
		writeParameterList(sb, n.Params)
		writeTypeParamConstraints(sb, n.TypeParams, indent)
		if n.Body == nil {
			sb.WriteByte(';')
			return
		}
		sb.WriteByte(' ')
		writeBlock(sb, n.Body, indent)

	case *csharpast.Constructor:
		writeAttributes(sb, n.Attributes, indent)
		sb.WriteString(indentStr(indent))
		writeModifiers(sb, n.Modifiers)
		sb.WriteString(EscapeIdentifier(n.Name))
		writeParameterList(sb, n.Params)
		if n.Initializer != nil {
			sb.WriteString(" : ")
			if n.Initializer.CallsBase {
				sb.WriteString("base(")
			} else {
				sb.WriteString("this(")
			}
			for i, a := range n.Initializer.Arguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeExpression(sb, a)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(' ')
		writeBlock(sb, n.Body, indent)

	case *csharpast.Delegate:
		writeAttributes(sb, n.Attributes, indent)
		sb.WriteString(indentStr(indent))
		writeModifiers(sb, n.Modifiers)
		sb.WriteString("delegate ")
		writeType(sb, n.ReturnType)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Name))
		writeTypeParamList(sb, n.TypeParams)
		writeParameterList(sb, n.Params)
		sb.WriteByte(';')

	case *csharpast.TypeDeclaration:
		writeTypeDeclaration(sb, n, indent)

	default:
		iceUnknownKind("member", string(m.Kind()))
	}
}

func writeMembers(sb *strings.Builder, members []csharpast.Member, indent int) {
	for _, m := range members {
		if _, ok := m.(csharpast.BlankLine); ok {
			sb.WriteByte('\n')
			continue
		}
		writeMember(sb, m, indent)
		sb.WriteByte('\n')
	}
}
