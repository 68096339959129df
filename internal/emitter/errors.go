// Package emitter lowers proof-annotated IR (internal/ir) into the Backend
// AST (pkg/csharpast). It is the core translation engine between the
// frontend's intermediate representation and the printer.
package emitter

import "fmt"

// ICE is an internal compiler error: a violation of an invariant the
// emitter assumes of itself or of the frontend (e.g. an unknown IR kind, or
// a contract the validator was supposed to have enforced upstream — an
// object rest-pattern missing its synthetic shape, an arrow function in a
// static context lacking an inferable return type). ICEs are fatal: the
// caller recovers exactly one panic at the orchestration boundary
// (internal/orchestrate) and aborts that module's compilation.
type ICE struct {
	Code    string
	Message string
}

func (e *ICE) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ice(code, format string, args ...any) *ICE {
	return &ICE{Code: code, Message: fmt.Sprintf(format, args...)}
}

func panicICE(code, format string, args ...any) {
	panic(ice(code, format, args...))
}

// EmitError is a per-module recoverable error value: a lowered declaration
// that cannot be represented in the supported C# subset, tagged with its
// module. No lowering path in this package returns one; internal/orchestrate
// reports each failing module as an orchestrate.ModuleError (a recovered ICE
// or a printer error) while its sibling modules still complete.
type EmitError struct {
	Code    string
	Message string
	Module  string
}

func (e *EmitError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s: %s: %s", e.Module, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newEmitError(module, code, format string, args ...any) *EmitError {
	return &EmitError{Module: module, Code: code, Message: fmt.Sprintf(format, args...)}
}
