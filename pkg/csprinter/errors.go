// Package csprinter renders a pkg/csharpast Backend AST to C# source text.
// Every exported Print* function is pure and deterministic: the same node
// always renders to byte-identical text, independent of host locale, time,
// or randomness.
package csprinter

import "fmt"

// ICE is an internal compiler error: an invariant violation the printer
// assumes can never happen for a well-formed Backend AST (an unrecognized
// NodeKind reaching a print switch, most commonly). It is fatal — callers
// should abort the compilation for the offending module rather than try to
// recover a partial result.
type ICE struct {
	Code    string
	Message string
}

func (e *ICE) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newICE(code, format string, args ...any) *ICE {
	return &ICE{Code: code, Message: fmt.Sprintf(format, args...)}
}

// iceUnknownKind panics with an ICE for a NodeKind the printer's switch did
// not recognize. Every print function's default case calls this; the panic
// is recovered once, at whichever exported Print* entry point started the
// rendering.
func iceUnknownKind(category, kind string) {
	panic(newICE("TSNB001", "printer: unknown %s kind %q", category, kind))
}
