package emitter

import (
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// LocalTypeKind discriminates what a name in localTypes/moduleMap resolves
// to.
type LocalTypeKind int

const (
	LocalTypeInterface LocalTypeKind = iota
	LocalTypeClass
	LocalTypeAlias
	LocalTypeEnum
)

func (k LocalTypeKind) String() string {
	switch k {
	case LocalTypeInterface:
		return "interface"
	case LocalTypeClass:
		return "class"
	case LocalTypeAlias:
		return "typeAlias"
	case LocalTypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// LocalTypeInfo is one entry of EmitterContext.LocalTypes: enough shape
// information to resolve a property access or alias chain without
// re-deriving it from the IR declaration each time.
type LocalTypeInfo struct {
	Kind           LocalTypeKind
	TypeParameters []string
	AliasedType    ir.Type          // populated only when Kind == LocalTypeAlias
	Members        map[string]ir.Type // property/field name -> declared type
}

// ModuleMapEntry describes an externally-resolved module, including the
// synthetic `__tsonic_anonymous_types` entry the frontend uses to carry
// anonymous object-literal shapes (spec.md §9 Open Question).
type ModuleMapEntry struct {
	Namespace        string
	ClassName        string
	FilePath         string
	HasTypeCollision bool
	LocalTypes       map[string]*LocalTypeInfo
}

// Options is the emitter's configuration surface (spec.md §6.3). No field
// outside this struct affects emitted output.
type Options struct {
	RootNamespace    string
	Indent           int // 2 or 4; defaults to 4; not read by the printer, which always indents 4 spaces
	ModuleMap        map[string]*ModuleMapEntry
	PublicLocalTypes map[string]bool
}

// EmitterContext is the immutable record threaded through every lowering
// function. Lowering functions are modeled as pure: they take an
// EmitterContext by value and return (ast, EmitterContext) — entering a
// lexical scope clones the maps that invariant requires isolated per
// scope; leaving a scope means simply discarding the cloned context and
// continuing with the snapshot taken before entry (spec.md §3.2, §5).
type EmitterContext struct {
	Options *Options

	IndentLevel int
	IsStatic    bool
	IsAsync     bool

	tempVarID int

	LocalNameMap   map[string]string
	UsedLocalNames map[string]bool

	TypeParameters       map[string]bool
	TypeParameterNameMap map[string]string

	ReturnType ir.Type

	LocalTypes       map[string]*LocalTypeInfo
	PublicLocalTypes map[string]bool

	GeneratorExchangeVar    string
	GeneratorIteratorFn     string
	GeneratorReturnValueVar string

	// PendingGeneratorTypes accumulates the exchange-record/wrapper-class
	// pairs produced by lowering a generator function *expression* (spec.md
	// §4.6): since the Backend AST has no local-type-declaration statement,
	// the declaration lowering (internal/emitter/declarations.go) that
	// started the pass hoists them as sibling members of the enclosing
	// class. Reset at the start of each top-level declaration.
	PendingGeneratorTypes []*csharpast.TypeDeclaration
}

// NewModuleContext builds the initial context for a module's lowering pass
// (spec.md §4.8 step 1): rootNamespace and isStaticContainer come from the
// module, localTypes is prepopulated from its top-level declarations by the
// caller (internal/orchestrate), every other map starts empty.
func NewModuleContext(opts *Options, isStaticContainer bool, localTypes map[string]*LocalTypeInfo) EmitterContext {
	if localTypes == nil {
		localTypes = map[string]*LocalTypeInfo{}
	}
	return EmitterContext{
		Options:              opts,
		IsStatic:             isStaticContainer,
		LocalNameMap:         map[string]string{},
		UsedLocalNames:       map[string]bool{},
		TypeParameters:       map[string]bool{},
		TypeParameterNameMap: map[string]string{},
		LocalTypes:           localTypes,
		PublicLocalTypes:     opts.PublicLocalTypes,
	}
}

// DeriveLocalTypes scans a module's top-level declarations and builds the
// localTypes table NewModuleContext expects (spec.md §4.8 step 1: "a
// localTypes table prepopulated from the module's top-level declarations").
// Only the four declaration forms that introduce a named type contribute an
// entry; everything else (functions, variables, imports) is irrelevant to
// type-name resolution.
func DeriveLocalTypes(body []ir.Statement) map[string]*LocalTypeInfo {
	out := map[string]*LocalTypeInfo{}
	for _, s := range body {
		switch n := s.(type) {
		case *ir.ClassDeclaration:
			out[n.Name] = &LocalTypeInfo{
				Kind:           LocalTypeClass,
				TypeParameters: typeParamNames(n.TypeParams),
				Members:        classMemberTypes(n.Members),
			}
		case *ir.InterfaceDeclaration:
			out[n.Name] = &LocalTypeInfo{
				Kind:           LocalTypeInterface,
				TypeParameters: typeParamNames(n.TypeParams),
				Members:        interfaceMemberTypes(n.Members),
			}
		case *ir.EnumDeclaration:
			out[n.Name] = &LocalTypeInfo{Kind: LocalTypeEnum}
		case *ir.TypeAliasDeclaration:
			out[n.Name] = &LocalTypeInfo{
				Kind:           LocalTypeAlias,
				TypeParameters: typeParamNames(n.TypeParams),
				AliasedType:    n.AliasedType,
			}
		}
	}
	return out
}

func typeParamNames(params []ir.TypeParam) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func classMemberTypes(members []ir.ClassMember) map[string]ir.Type {
	out := map[string]ir.Type{}
	for _, m := range members {
		if p, ok := m.(*ir.PropertyDeclaration); ok && p.TypeAnnotation != nil {
			out[p.Name] = p.TypeAnnotation
		}
	}
	return out
}

func interfaceMemberTypes(members []ir.InterfaceMember) map[string]ir.Type {
	out := map[string]ir.Type{}
	for _, m := range members {
		if m.Params == nil && m.TypeAnnotation != nil {
			out[m.Name] = m.TypeAnnotation
		}
	}
	return out
}

func cloneStringSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// EnterScope returns a context suitable for a nested lexical scope (function
// body, lambda body, block, loop body, generator body): the name-allocation
// maps are cloned so that names introduced inside the scope do not leak to
// the caller's snapshot. The caller continues using its own (unmodified)
// context after the nested lowering returns — this is the "snapshot outer;
// restore on return" discipline spec.md §5 requires.
func (c EmitterContext) EnterScope() EmitterContext {
	c.LocalNameMap = cloneStringMap(c.LocalNameMap)
	c.UsedLocalNames = cloneStringSet(c.UsedLocalNames)
	c.TypeParameters = cloneStringSet(c.TypeParameters)
	c.TypeParameterNameMap = cloneStringMap(c.TypeParameterNameMap)
	return c
}

// EnterFunction is EnterScope plus the reset of the per-function temp
// counter (spec.md §3.2: "tempVarId... resets per top-level declaration").
func (c EmitterContext) EnterFunction(returnType ir.Type, isAsync bool) EmitterContext {
	c = c.EnterScope()
	c.tempVarID = 0
	c.ReturnType = returnType
	c.IsAsync = isAsync
	c.GeneratorExchangeVar = ""
	c.GeneratorIteratorFn = ""
	c.GeneratorReturnValueVar = ""
	return c
}

// WithIndent returns a context one nesting level deeper.
func (c EmitterContext) WithIndent() EmitterContext {
	c.IndentLevel++
	return c
}

// WithTypeParameters registers a set of IR type-parameter names (already
// mapped to their emitted spelling) as in scope, cloning first so the
// binding does not leak to sibling declarations (spec.md §3.2 invariant).
func (c EmitterContext) WithTypeParameters(params []ir.TypeParam) EmitterContext {
	c.TypeParameters = cloneStringSet(c.TypeParameters)
	c.TypeParameterNameMap = cloneStringMap(c.TypeParameterNameMap)
	for _, p := range params {
		c.TypeParameters[p.Name] = true
		c.TypeParameterNameMap[p.Name] = p.Name
	}
	return c
}

// nextTempID returns a fresh monotonic id and the context reflecting the
// allocation.
func (c EmitterContext) nextTempID() (int, EmitterContext) {
	id := c.tempVarID
	c.tempVarID++
	return id, c
}
