package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintTypeDeclaration renders a class/struct/interface/enum declaration to
// C# text at the given indentation level.
func PrintTypeDeclaration(t *csharpast.TypeDeclaration, indent int) (out string, err error) {
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
	writeTypeDeclaration(&sb, t, indent)
	return sb.String(), nil
}

func writeTypeDeclaration(sb *strings.Builder, n *csharpast.TypeDeclaration, indent int) {
	writeAttributes(sb, n.Attributes, indent)
	sb.WriteString(indentStr(indent))
	writeModifiers(sb, n.Modifiers)
	sb.WriteString(string(n.DeclKind))
	sb.WriteByte(' ')
	sb.WriteString(EscapeIdentifier(n.Name))

	writeTypeParamList(sb, n.TypeParams)

	if len(n.BaseTypes) > 0 {
		sb.WriteString(" : ")
		for i, bt := range n.BaseTypes {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, bt)
		}
	}
	writeTypeParamConstraints(sb, n.TypeParams, indent)
	sb.WriteByte('\n')
	sb.WriteString(indentStr(indent))
	sb.WriteString("{\n")

	if n.DeclKind == csharpast.TypeEnum {
		for i, em := range n.EnumMembers {
			sb.WriteString(indentStr(indent + 1))
			sb.WriteString(EscapeIdentifier(em.Name))
			if em.Value != nil {
				sb.WriteString(" = ")
				writeExpression(sb, em.Value)
			}
			if i < len(n.EnumMembers)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
	} else {
		writeMembers(sb, n.Members, indent+1)
	}

	sb.WriteString(indentStr(indent))
	sb.WriteByte('}')
}
