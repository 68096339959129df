package csprinter

import "strings"

// csharpKeywords is the set of C# reserved keywords that require `@`
// escaping when used as an identifier. Predefined type keywords are
// included here too, but EscapeTypeIdentifier (used only in type position)
// does not escape them, per spec.md §4.1.
var csharpKeywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true,
	"else": true, "enum": true, "event": true, "explicit": true,
	"extern": true, "false": true, "finally": true, "fixed": true,
	"float": true, "for": true, "foreach": true, "goto": true, "if": true,
	"implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true,
	"operator": true, "out": true, "override": true, "params": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true,
	"string": true, "struct": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "uint": true,
	"ulong": true, "unchecked": true, "unsafe": true, "ushort": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

// predefinedTypeKeywords is the subset of csharpKeywords that are also
// valid bare type names; EscapeTypeIdentifier leaves these unescaped.
var predefinedTypeKeywords = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "short": true, "ushort": true,
	"int": true, "uint": true, "long": true, "ulong": true, "float": true,
	"double": true, "decimal": true, "char": true, "string": true,
	"object": true, "void": true,
}

// EscapeIdentifier prefixes name with `@` if it collides with a C#
// reserved keyword.
func EscapeIdentifier(name string) string {
	if csharpKeywords[name] {
		return "@" + name
	}
	return name
}

// EscapeTypeIdentifier is like EscapeIdentifier but never escapes a
// predefined type keyword (`int`, `string`, ...) since those are valid,
// unescaped in type position.
func EscapeTypeIdentifier(name string) string {
	if predefinedTypeKeywords[name] {
		return name
	}
	return EscapeIdentifier(name)
}

// EscapeQualifiedName escapes every segment of a dotted or `::`-qualified
// name, preserving a leading `global::` prefix verbatim.
func EscapeQualifiedName(name string) string {
	const globalPrefix = "global::"
	prefix := ""
	rest := name
	if strings.HasPrefix(name, globalPrefix) {
		prefix = globalPrefix
		rest = name[len(globalPrefix):]
	}
	segments := strings.Split(rest, ".")
	for i, seg := range segments {
		segments[i] = EscapeTypeIdentifier(seg)
	}
	return prefix + strings.Join(segments, ".")
}
