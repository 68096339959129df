package tsonicbackend

import (
	"fmt"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/internal/orchestrate"
)

// ModuleError is one module's recoverable emit failure (spec.md §7):
// internal/orchestrate.ModuleError re-exported under this package's own
// type so callers never need to import internal/orchestrate themselves.
type ModuleError struct {
	Module string
	Err    error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Module, e.Err)
}

// Result is the engine's output: the emitted file map plus any per-module
// recoverable errors. A non-empty Errors is the failure signal (spec.md §7;
// SPEC_FULL.md §7) — every module that lowered cleanly still contributes its
// file regardless of its siblings' failures.
type Result struct {
	Files  map[string]string
	Errors []ModuleError
}

func fromOrchestrateResult(r orchestrate.Result) Result {
	out := Result{Files: r.Files}
	if len(r.Errors) > 0 {
		out.Errors = make([]ModuleError, len(r.Errors))
		for i, e := range r.Errors {
			out.Errors[i] = ModuleError{Module: e.Module, Err: e.Err}
		}
	}
	return out
}

// LowerModules runs the lowering pipeline over already-decoded IR modules
// (internal/ir.Module), the entry point for callers within this module that
// already hold parsed fixtures — golden/end-to-end tests in particular, per
// SPEC_FULL.md §8's literal-Go-struct fixture convention.
func LowerModules(opts Options, modules []*ir.Module) (Result, error) {
	eopts, err := opts.toEmitterOptions()
	if err != nil {
		return Result{}, err
	}
	return fromOrchestrateResult(orchestrate.Lower(eopts, modules)), nil
}

// Lower decodes each element of moduleDocuments as one frontend-emitted IR
// module (internal/ir.DecodeModule's wire format) and runs the lowering
// pipeline over the batch. This is the genuinely external entry point: a
// caller outside this module has no way to construct an internal/ir.Module
// value directly, only the JSON bytes the frontend actually emits.
func Lower(opts Options, moduleDocuments [][]byte) (Result, error) {
	modules := make([]*ir.Module, len(moduleDocuments))
	for i, doc := range moduleDocuments {
		m, err := ir.DecodeModule(doc)
		if err != nil {
			return Result{}, fmt.Errorf("tsonicbackend: decoding module %d: %w", i, err)
		}
		modules[i] = m
	}
	return LowerModules(opts, modules)
}
