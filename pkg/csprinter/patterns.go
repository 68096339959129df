package csprinter

import (
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintPattern renders a Backend AST pattern to C# text.
func PrintPattern(p csharpast.Pattern) (out string, err error) {
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
	writePattern(&sb, p)
	return sb.String(), nil
}

func writePattern(sb *strings.Builder, p csharpast.Pattern) {
	switch n := p.(type) {
	case *csharpast.TypePattern:
		writeType(sb, n.Type)

	case *csharpast.DeclarationPattern:
		writeType(sb, n.Type)
		sb.WriteByte(' ')
		sb.WriteString(EscapeIdentifier(n.Designator))

	case *csharpast.VarPattern:
		sb.WriteString("var ")
		sb.WriteString(EscapeIdentifier(n.Designator))

	case *csharpast.ConstantPattern:
		writeExpression(sb, n.Value)

	case csharpast.DiscardPattern:
		sb.WriteByte('_')

	case *csharpast.NegatedPattern:
		sb.WriteString("not ")
		writePattern(sb, n.Inner)

	default:
		iceUnknownKind("pattern", string(p.Kind()))
	}
}
