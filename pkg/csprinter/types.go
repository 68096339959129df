package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintType renders a Backend AST type to C# text.
func PrintType(t csharpast.Type) (out string, err error) {
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
	writeType(&sb, t)
	return sb.String(), nil
}

func writeType(sb *strings.Builder, t csharpast.Type) {
	switch n := t.(type) {
	case *csharpast.PredefinedType:
		sb.WriteString(string(n.Name))
	case *csharpast.IdentifierType:
		sb.WriteString(EscapeQualifiedName(n.Name))
		if len(n.TypeArguments) > 0 {
			sb.WriteByte('<')
			for i, arg := range n.TypeArguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeType(sb, arg)
			}
			sb.WriteByte('>')
		}
	case *csharpast.NullableType:
		writeType(sb, n.Element)
		sb.WriteByte('?')
	case *csharpast.ArrayType:
		writeType(sb, n.Element)
		sb.WriteByte('[')
		if n.Rank > 1 {
			sb.WriteString(strings.Repeat(",", n.Rank-1))
		}
		sb.WriteByte(']')
	case *csharpast.PointerType:
		writeType(sb, n.Element)
		sb.WriteByte('*')
	case *csharpast.TupleType:
		sb.WriteByte('(')
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, el.Type)
			if el.Name != "" {
				sb.WriteByte(' ')
				sb.WriteString(EscapeIdentifier(el.Name))
			}
		}
		sb.WriteByte(')')
	case csharpast.VarType:
		sb.WriteString("var")
	case *csharpast.RawType:
		sb.WriteString(n.Text)
	default:
		iceUnknownKind("type", string(t.Kind()))
	}
}

