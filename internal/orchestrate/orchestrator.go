// Package orchestrate drives the per-module lowering pipeline (spec.md
// §4.8): it builds each module's initial EmitterContext, runs
// internal/emitter over its declarations, assembles the resulting
// CompilationUnit, prints it, and assembles the whole run into a
// deterministic file map — plus any cross-cutting `__tsonic_*` marker units
// the run required.
package orchestrate

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/tsonic-lang/backend/internal/emitter"
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
	"github.com/tsonic-lang/backend/pkg/csprinter"
)

// generatedHeaderTimestamp is a fixed string, not wall-clock time (spec.md
// §6.2: "byte-identical file map, stable across invocations and host
// locale").
const generatedHeaderTimestamp = "1970-01-01T00:00:00Z"

// ModuleError is one module's recoverable emit failure (spec.md §7): an ICE
// recovered at module granularity so sibling modules still complete.
type ModuleError struct {
	Module string
	Err    error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Module, e.Err)
}

// Result is the orchestrator's output: the emitted file map plus any
// per-module recoverable errors (spec.md §4.8: "an ordered mapping from
// relative file path to C# source text, plus an errors channel"). Failure is
// signaled by a non-empty Errors slice, not a boolean field (SPEC_FULL.md
// §7); every module that lowered cleanly still contributes its file
// regardless of its siblings' failures.
type Result struct {
	Files  map[string]string
	Errors []ModuleError
}

type moduleOutput struct {
	path               string
	text               string
	usesModuleContainer bool
	failure            *ModuleError
}

// Lower fans out module-level lowering across a bounded worker pool (spec.md
// §5: "parallelism is safe at module granularity because modules do not
// share mutable state"; SPEC_FULL.md §5: "bounded by runtime.GOMAXPROCS").
// Each module's own pipeline — context build, declaration lowering, print —
// stays strictly sequential; the pool only parallelizes across modules.
// Results land in outputs[i], keeping the file map's build order independent
// of goroutine completion order (spec.md §5 determinism requirement).
func Lower(opts *emitter.Options, modules []*ir.Module) Result {
	outputs := make([]moduleOutput, len(modules))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(modules) {
		workers = len(modules)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outputs[i] = lowerModule(opts, modules[i])
			}
		}()
	}
	for i := range modules {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	files := map[string]string{}
	var errs []ModuleError
	needsModuleContainerAttr := false
	for _, out := range outputs {
		if out.failure != nil {
			errs = append(errs, *out.failure)
			continue
		}
		files[out.path] = out.text
		if out.usesModuleContainer {
			needsModuleContainerAttr = true
		}
	}

	if needsModuleContainerAttr {
		files["__tsonic_module_containers.g.cs"] = renderModuleContainerAttribute()
	}

	return Result{Files: files, Errors: errs}
}

// lowerModule runs one module's pipeline (spec.md §4.8 steps 1-4), recovering
// an emitter ICE into a ModuleError so a single malformed module cannot take
// down the whole run.
func lowerModule(opts *emitter.Options, m *ir.Module) (out moduleOutput) {
	defer func() {
		if r := recover(); r != nil {
			if ice, ok := r.(*emitter.ICE); ok {
				out = moduleOutput{failure: &ModuleError{Module: m.FilePath, Err: ice}}
				return
			}
			panic(r)
		}
	}()

	// localTypes is derived from the module's own declarations (spec.md
	// §4.8 step 1); opts.ModuleMap supplies type tables for OTHER modules'
	// types referenced from here (cross-file imports, plus the synthetic
	// `__tsonic_anonymous_types` entry — spec.md §9), consulted separately
	// by internal/emitter's lookupLocalType, so the two are never merged.
	localTypes := emitter.DeriveLocalTypes(m.Body)
	ctx := emitter.NewModuleContext(opts, m.IsStaticContainer, localTypes)

	cu := emitter.LowerModule(ctx, m)
	cu.Header = renderHeader(m.FilePath)

	text, err := csprinter.PrintCompilationUnit(cu)
	if err != nil {
		return moduleOutput{failure: &ModuleError{Module: m.FilePath, Err: err}}
	}

	return moduleOutput{
		path:                modulePath(m),
		text:                text,
		usesModuleContainer: m.IsStaticContainer,
	}
}

func renderHeader(sourcePath string) string {
	return fmt.Sprintf("// Generated from %s\n// Generated at %s\n// WARNING: do not edit by hand", sourcePath, generatedHeaderTimestamp)
}

// modulePath derives the deterministic relative output path for a module
// (spec.md §4.8 step 4: "a deterministic path derived from the module's
// filePath and namespace"): the module's own filePath with its source
// extension replaced by `.g.cs`.
func modulePath(m *ir.Module) string {
	return trimSourceExt(m.FilePath) + ".g.cs"
}

func trimSourceExt(p string) string {
	for _, ext := range []string{".tsx", ".ts"} {
		if len(p) > len(ext) && p[len(p)-len(ext):] == ext {
			return p[:len(p)-len(ext)]
		}
	}
	return p
}

// renderModuleContainerAttribute is the single cross-cutting marker unit
// shared by every module that lowered to a static container (spec.md §4.7:
// "the orchestrator emits... a single `__tsonic_module_containers.g.cs`
// containing the marker attribute definition when at least one module used
// it").
func renderModuleContainerAttribute() string {
	cu := &csharpast.CompilationUnit{
		Header: renderHeader("(generated)"),
		Namespace: &csharpast.NamespaceDeclaration{
			Name: "Tsonic.Internal",
			Members: []csharpast.NamespaceMember{
				&csharpast.TypeDeclaration{
					DeclKind:  csharpast.TypeClass,
					Modifiers: []csharpast.Modifier{csharpast.ModPublic, csharpast.ModSealed},
					Name:      "ModuleContainerAttribute",
					BaseTypes: []csharpast.Type{&csharpast.IdentifierType{Name: "System.Attribute"}},
					Attributes: []csharpast.Attribute{
						{Name: "System.AttributeUsage", Arguments: []csharpast.Expression{
							&csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "System.AttributeTargets"}, Name: "Class"},
						}},
					},
				},
			},
		},
	}
	text, err := csprinter.PrintCompilationUnit(cu)
	if err != nil {
		panic(err)
	}
	return text
}
