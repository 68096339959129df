package csprinter

import (
	"sort"
	"strings"

	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// PrintCompilationUnit renders a full C# source file: header, `using`
// directives, and the top-level namespace block. This is the printer's
// top-level entry point; internal/orchestrate calls it once per module.
func PrintCompilationUnit(cu *csharpast.CompilationUnit) (out string, err error) {
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

	if cu.Header != "" {
		sb.WriteString(cu.Header)
		sb.WriteString("\n\n")
	}

	usings := make([]csharpast.Using, len(cu.Usings))
	copy(usings, cu.Usings)
	sort.Slice(usings, func(i, j int) bool {
		return usingSortKey(usings[i]) < usingSortKey(usings[j])
	})
	for _, u := range usings {
		sb.WriteString("using ")
		if u.Alias != "" {
			sb.WriteString(EscapeIdentifier(u.Alias))
			sb.WriteString(" = ")
		}
		sb.WriteString(EscapeQualifiedName(u.Namespace))
		sb.WriteString(";\n")
	}
	if len(usings) > 0 {
		sb.WriteByte('\n')
	}

	if cu.Namespace != nil {
		writeNamespace(&sb, cu.Namespace)
	}

	return sb.String(), nil
}

func usingSortKey(u csharpast.Using) string {
	return u.Namespace
}

func writeNamespace(sb *strings.Builder, ns *csharpast.NamespaceDeclaration) {
	sb.WriteString("namespace ")
	sb.WriteString(EscapeQualifiedName(ns.Name))
	sb.WriteByte('\n')
	sb.WriteString("{\n")
	for _, m := range ns.Members {
		switch n := m.(type) {
		case csharpast.BlankLine:
			sb.WriteByte('\n')
		case *csharpast.Comment:
			sb.WriteString(indentStr(1))
			sb.WriteString("// ")
			sb.WriteString(n.Text)
			sb.WriteByte('\n')
		case *csharpast.TypeDeclaration:
			writeTypeDeclaration(sb, n, 1)
			sb.WriteByte('\n')
		default:
			iceUnknownKind("namespace member", string(m.Kind()))
		}
	}
	sb.WriteString("}\n")
}
