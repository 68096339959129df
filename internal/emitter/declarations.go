package emitter

import (
	"strconv"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// LowerModule lowers one frontend module into its Backend AST compilation
// unit (spec.md §4.7/§4.8): imports become `using` directives, and every
// top-level declaration becomes a namespace member. A module whose
// IsStaticContainer flag is set (the module exports loose functions and/or
// top-level variable bindings, which C# cannot place directly in a
// namespace) gets those wrapped in a single generated static class named
// after Module.ClassName; a module that only exports classes/interfaces/
// enums/type aliases emits them as direct namespace members instead.
func LowerModule(ctx EmitterContext, m *ir.Module) *csharpast.CompilationUnit {
	usings := lowerImports(m.Imports)

	var members []csharpast.NamespaceMember
	if m.IsStaticContainer {
		var classMembers []csharpast.Member
		for _, s := range m.Body {
			declCtx := ctx
			declCtx.PendingGeneratorTypes = nil
			mem, pending := lowerTopLevelAsClassMember(declCtx, s)
			classMembers = append(classMembers, mem...)
			for _, p := range pending {
				classMembers = append(classMembers, p)
			}
		}
		members = append(members, &csharpast.TypeDeclaration{
			DeclKind:  csharpast.TypeClass,
			Modifiers: []csharpast.Modifier{csharpast.ModPublic, csharpast.ModStatic},
			Name:      m.ClassName,
			Members:   classMembers,
		})
	} else {
		for _, s := range m.Body {
			declCtx := ctx
			declCtx.PendingGeneratorTypes = nil
			mem, pending := lowerTopLevelDeclaration(declCtx, s)
			members = append(members, mem...)
			for _, p := range pending {
				members = append(members, p)
			}
		}
	}

	return &csharpast.CompilationUnit{
		Usings:    usings,
		Namespace: &csharpast.NamespaceDeclaration{Name: m.Namespace, Members: members},
	}
}

func lowerImports(imports []*ir.ImportDeclaration) []csharpast.Using {
	var usings []csharpast.Using
	seen := map[string]bool{}
	for _, imp := range imports {
		if imp.ResolvedNamespace == "" || seen[imp.ResolvedNamespace] {
			continue
		}
		seen[imp.ResolvedNamespace] = true
		usings = append(usings, csharpast.Using{Namespace: imp.ResolvedNamespace})
	}
	return usings
}

func lowerVisibility(v ir.Visibility) csharpast.Modifier {
	switch v {
	case ir.VisPrivate:
		return csharpast.ModPrivate
	case ir.VisProtected:
		return csharpast.ModProtected
	case ir.VisInternal:
		return csharpast.ModInternal
	default:
		return csharpast.ModPublic
	}
}

// lowerTopLevelDeclaration lowers one statement of a non-static-container
// module's body. Only declaration forms that can appear directly inside a
// C# namespace are legal here (spec.md §4.7); a FunctionDeclaration or
// VariableStatement reaching a non-static-container module is a frontend
// contract violation (loose functions/bindings require the synthetic static
// class, i.e. Module.IsStaticContainer).
func lowerTopLevelDeclaration(ctx EmitterContext, s ir.Statement) ([]csharpast.NamespaceMember, []*csharpast.TypeDeclaration) {
	switch n := s.(type) {
	case *ir.ClassDeclaration:
		return []csharpast.NamespaceMember{lowerClassDeclaration(ctx, n)}, nil
	case *ir.InterfaceDeclaration:
		return []csharpast.NamespaceMember{lowerInterfaceDeclaration(ctx, n)}, nil
	case *ir.EnumDeclaration:
		return []csharpast.NamespaceMember{lowerEnumDeclaration(ctx, n)}, nil
	case *ir.TypeAliasDeclaration:
		return lowerTypeAliasDeclaration(ctx, n), nil
	case *ir.ImportDeclaration:
		return nil, nil
	default:
		panicICE("TSNB060", "emitter: unsupported top-level declaration kind %q in a non-static-container module", s.Kind())
		return nil, nil
	}
}

// lowerTopLevelAsClassMember lowers one statement of a static-container
// module's body into member(s) of the generated wrapper class. Generator
// support types (exchange record/wrapper class) produced along the way are
// included in the first result as sibling members of the same class (C#
// permits nested type declarations); the second result is always nil.
func lowerTopLevelAsClassMember(ctx EmitterContext, s ir.Statement) ([]csharpast.Member, []*csharpast.TypeDeclaration) {
	switch n := s.(type) {
	case *ir.FunctionDeclaration:
		return lowerFunctionDeclarationMember(ctx, n), nil
	case *ir.VariableStatement:
		return lowerTopLevelVariableMembers(ctx, n), nil
	case *ir.ClassDeclaration:
		return []csharpast.Member{lowerClassDeclaration(ctx, n)}, nil
	case *ir.InterfaceDeclaration:
		return []csharpast.Member{lowerInterfaceDeclaration(ctx, n)}, nil
	case *ir.EnumDeclaration:
		return []csharpast.Member{lowerEnumDeclaration(ctx, n)}, nil
	case *ir.TypeAliasDeclaration:
		nsMembers := lowerTypeAliasDeclaration(ctx, n)
		out := make([]csharpast.Member, len(nsMembers))
		for i, m := range nsMembers {
			out[i] = m.(csharpast.Member)
		}
		return out, nil
	case *ir.ImportDeclaration:
		return nil, nil
	default:
		panicICE("TSNB061", "emitter: unsupported static-container top-level declaration kind %q", s.Kind())
		return nil, nil
	}
}

// lowerTopLevelVariableMembers lowers an exported top-level `const`/`let`
// binding into one or more static fields of the module's wrapper class.
// Destructuring bindings expand into one field per bound name, backed by a
// shared private field holding the one-time-evaluated initializer.
func lowerTopLevelVariableMembers(ctx EmitterContext, n *ir.VariableStatement) []csharpast.Member {
	var members []csharpast.Member
	for _, decl := range n.Declarators {
		members = append(members, lowerTopLevelVariableDeclarator(ctx, decl)...)
	}
	return members
}

func lowerTopLevelVariableDeclarator(ctx EmitterContext, decl ir.Declarator) []csharpast.Member {
	mods := []csharpast.Modifier{csharpast.ModPublic, csharpast.ModStatic}
	if id, ok := decl.Pattern.(*ir.IdentifierPattern); ok {
		var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
		if decl.TypeAnnotation != nil {
			t = LowerType(ctx, decl.TypeAnnotation)
		} else if decl.Init != nil {
			if it := decl.Init.InferredType(); it != nil {
				t = LowerType(ctx, it)
			}
		}
		var init csharpast.Expression
		var pending []*csharpast.TypeDeclaration
		if decl.Init != nil {
			var initCtx EmitterContext
			init, initCtx = LowerExpression(ctx, decl.Init)
			pending = initCtx.PendingGeneratorTypes[len(ctx.PendingGeneratorTypes):]
		}
		members := []csharpast.Member{&csharpast.Field{Modifiers: append(append([]csharpast.Modifier{}, mods...), csharpast.ModReadonly), Type: t, Name: id.Name, Init: init}}
		for _, p := range pending {
			members = append(members, p)
		}
		return members
	}

	backingName := "__" + freshBackingSuffix(decl.Pattern)
	var backingType csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
	if decl.Init != nil {
		if it := decl.Init.InferredType(); it != nil {
			backingType = LowerType(ctx, it)
		}
	}
	var init csharpast.Expression
	if decl.Init != nil {
		init, _ = LowerExpression(ctx, decl.Init)
	}
	backing := &csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPrivate, csharpast.ModStatic, csharpast.ModReadonly}, Type: backingType, Name: backingName, Init: init}
	stmts, _ := LowerLocalDestructure(ctx, decl.Pattern, declaredType(decl), &csharpast.Identifier{Name: backingName})
	members := []csharpast.Member{backing}
	for _, s := range stmts {
		if ld, ok := s.(*csharpast.LocalDeclaration); ok {
			members = append(members, &csharpast.Field{Modifiers: mods, Type: ld.Type, Name: ld.Name, Init: ld.Init})
		}
	}
	return members
}

func declaredType(decl ir.Declarator) ir.Type {
	if decl.TypeAnnotation != nil {
		return decl.TypeAnnotation
	}
	if decl.Init != nil {
		return decl.Init.InferredType()
	}
	return nil
}

var backingSuffixCounter int

func freshBackingSuffix(p ir.Pattern) string {
	backingSuffixCounter++
	return "destructured" + strconv.Itoa(backingSuffixCounter)
}

// wrapInTask wraps a lowered return type in `Task`/`Task<T>` for an async
// member's CLR signature (spec.md §4.7: "an async function/method's emitted
// return type is always Task or Task<T>, never the bare awaited type").
func wrapInTask(t csharpast.Type) csharpast.Type {
	if pt, ok := t.(*csharpast.PredefinedType); ok && pt.Name == csharpast.PredefVoid {
		return &csharpast.IdentifierType{Name: "System.Threading.Tasks.Task"}
	}
	return &csharpast.IdentifierType{Name: "System.Threading.Tasks.Task", TypeArguments: []csharpast.Type{t}}
}

// lowerMethodParams lowers a function/method/constructor parameter list into
// fully-typed Parameter slots (unlike lowerLambdaParams, every slot carries
// an explicit type — C# member signatures cannot omit one). A destructured
// parameter is given the synthetic name `__param{i}`; its expansion
// statements are returned as prelude to be injected as the first statements
// of the body (spec.md §4.4).
func lowerMethodParams(ctx EmitterContext, params []ir.Param) ([]csharpast.Parameter, []csharpast.Statement, EmitterContext) {
	out := make([]csharpast.Parameter, len(params))
	var prelude []csharpast.Statement
	for i, p := range params {
		name, stmts, ctx2 := lowerParamPattern(ctx, p, i)
		ctx = ctx2
		prelude = append(prelude, stmts...)

		var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
		if p.TypeAnnotation != nil {
			t = LowerType(ctx, p.TypeAnnotation)
		}
		mod := csharpast.ParamNone
		if p.IsRest {
			mod = csharpast.ParamParams
			t = &csharpast.ArrayType{Element: t, Rank: 1}
		} else if p.IsOptional {
			t = &csharpast.NullableType{Element: t}
		}

		var def csharpast.Expression
		if p.Default != nil {
			d, ctx3 := LowerExpression(ctx, p.Default)
			ctx = ctx3
			def = d
		} else if p.IsOptional {
			def = &csharpast.Default{}
		}
		out[i] = csharpast.Parameter{Type: t, Name: name, Default: def, Modifier: mod}
	}
	return out, prelude, ctx
}

// lowerSignatureParams lowers an abstract/interface member's parameter list,
// which carries no default/destructuring/body to drive collision-free
// naming off of — the declared name is used verbatim, falling back to
// `arg{i}` for an unnamed (purely structural) parameter.
func lowerSignatureParams(ctx EmitterContext, params []ir.Param) []csharpast.Parameter {
	out := make([]csharpast.Parameter, len(params))
	for i, p := range params {
		name := "arg" + strconv.Itoa(i)
		if id, ok := p.Pattern.(*ir.IdentifierPattern); ok {
			name = id.Name
		}
		var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
		if p.TypeAnnotation != nil {
			t = LowerType(ctx, p.TypeAnnotation)
		}
		if p.IsOptional {
			t = &csharpast.NullableType{Element: t}
		}
		out[i] = csharpast.Parameter{Type: t, Name: name}
	}
	return out
}

func lowerTypeParamConstraints(ctx EmitterContext, params []ir.TypeParam) []csharpast.TypeParamConstraint {
	out := make([]csharpast.TypeParamConstraint, 0, len(params))
	for _, p := range params {
		var constraints []csharpast.Type
		if p.Constraint != nil {
			constraints = append(constraints, LowerType(ctx, p.Constraint))
		}
		out = append(out, csharpast.TypeParamConstraint{Name: p.Name, Constraints: constraints})
	}
	return out
}

// lowerFunctionDeclarationMember lowers a top-level `function` declaration
// into static member(s) of the module's wrapper class. A generator function
// becomes a method returning the `{name}_Generator` wrapper type, plus the
// exchange record and wrapper class themselves nested as sibling class
// members (C#, unlike a function body, permits nested type declarations).
func lowerFunctionDeclarationMember(ctx EmitterContext, n *ir.FunctionDeclaration) []csharpast.Member {
	mods := []csharpast.Modifier{csharpast.ModPublic, csharpast.ModStatic}

	if n.IsGenerator {
		params, prelude, ctx2 := lowerMethodParams(ctx, n.Params)
		innerIterator, supportTypes, ctx3 := lowerGenerator(ctx2, n.Name, n.YieldType, n.ReturnType, n.NextType, n.Body, n.IsAsync)
		_ = ctx3
		wrapperName := n.Name + "_Generator"
		exchangeName := n.Name + "_exchange"
		body := buildGeneratorEntryBody(exchangeName, wrapperName, prelude, innerIterator, n.ReturnType)
		method := &csharpast.Method{
			Modifiers:  mods,
			ReturnType: &csharpast.IdentifierType{Name: wrapperName},
			Name:       n.Name,
			Params:     params,
			Body:       body,
		}
		members := []csharpast.Member{method}
		for _, t := range supportTypes {
			members = append(members, t)
		}
		return members
	}

	if n.IsAsync {
		mods = append(mods, csharpast.ModAsync)
	}
	fnCtx := ctx.EnterFunction(n.ReturnType, n.IsAsync)
	params, prelude, fnCtx2 := lowerMethodParams(fnCtx, n.Params)
	body, fnCtx3 := LowerBlock(fnCtx2, n.Body)
	body.Statements = append(append([]csharpast.Statement{}, prelude...), body.Statements...)
	var retType csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefVoid}
	if n.ReturnType != nil {
		retType = LowerType(fnCtx3, n.ReturnType)
	}
	if n.IsAsync {
		retType = wrapInTask(retType)
	}
	method := &csharpast.Method{
		Modifiers:  mods,
		ReturnType: retType,
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(fnCtx3, n.TypeParams),
		Params:     params,
		Body:       body,
	}
	members := []csharpast.Member{method}
	for _, t := range fnCtx3.PendingGeneratorTypes {
		members = append(members, t)
	}
	return members
}

// lowerLocalFunctionDeclaration lowers a nested (non-top-level) `function`
// statement into a LocalFunction (spec.md §4.7/§4.8). Nested class,
// interface, enum, and type-alias declarations have no Backend AST
// statement to lower into (C# forbids a local type declaration anywhere a
// Statement is expected) and are therefore unsupported — the validator is
// expected to have already rejected them upstream, and statements.go's
// default case raises TSNB040 if one reaches this package regardless. A
// nested generator function's supporting exchange record/wrapper class are
// bubbled to ctx.PendingGeneratorTypes for the enclosing top-level
// declaration to hoist, exactly as for a generator function expression.
func lowerLocalFunctionDeclaration(ctx EmitterContext, n *ir.FunctionDeclaration) (csharpast.Statement, EmitterContext) {
	if n.IsGenerator {
		lambdaParams, prelude, ctx2 := lowerLambdaParams(ctx, n.Params)
		innerIterator, supportTypes, ctx3 := lowerGenerator(ctx2, n.Name, n.YieldType, n.ReturnType, n.NextType, n.Body, n.IsAsync)
		ctx3.PendingGeneratorTypes = append(ctx3.PendingGeneratorTypes, supportTypes...)
		wrapperName := n.Name + "_Generator"
		exchangeName := n.Name + "_exchange"
		body := buildGeneratorEntryBody(exchangeName, wrapperName, prelude, innerIterator, n.ReturnType)
		return &csharpast.LocalFunction{
			Name:       n.Name,
			ReturnType: &csharpast.IdentifierType{Name: wrapperName},
			Params:     lambdaParams,
			Body:       body,
		}, ctx3
	}

	fnCtx := ctx.EnterFunction(n.ReturnType, n.IsAsync)
	lambdaParams, prelude, fnCtx2 := lowerLambdaParams(fnCtx, n.Params)
	body, fnCtx3 := LowerBlock(fnCtx2, n.Body)
	body.Statements = append(append([]csharpast.Statement{}, prelude...), body.Statements...)
	var retType csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefVoid}
	if n.ReturnType != nil {
		retType = LowerType(fnCtx3, n.ReturnType)
	}
	if n.IsAsync {
		retType = wrapInTask(retType)
	}
	return &csharpast.LocalFunction{
		Name:       n.Name,
		ReturnType: retType,
		Params:     lambdaParams,
		Body:       body,
		IsAsync:    n.IsAsync,
	}, fnCtx3
}

// lowerClassDeclaration lowers a class into a TypeDeclaration, merging any
// get/set MethodDeclaration pairs that share a name into a single Property
// (spec.md §4.7 — the frontend IR models accessors as separate members, the
// way a TypeScript class does, but C# requires exactly one property
// declaration per name).
func lowerClassDeclaration(ctx EmitterContext, n *ir.ClassDeclaration) *csharpast.TypeDeclaration {
	mods := []csharpast.Modifier{csharpast.ModInternal}
	if n.Exported {
		mods = []csharpast.Modifier{csharpast.ModPublic}
	}
	if n.IsAbstract {
		mods = append(mods, csharpast.ModAbstract)
	}

	classCtx := ctx.WithTypeParameters(n.TypeParams)

	var base []csharpast.Type
	if n.Extends != nil {
		base = append(base, LowerType(classCtx, n.Extends))
	}
	for _, i := range n.Implements {
		base = append(base, LowerType(classCtx, i))
	}

	return &csharpast.TypeDeclaration{
		DeclKind:   csharpast.TypeClass,
		Modifiers:  mods,
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(classCtx, n.TypeParams),
		BaseTypes:  base,
		Members:    lowerClassMembers(classCtx, n.Name, n.Members),
	}
}

func lowerClassMembers(ctx EmitterContext, className string, members []ir.ClassMember) []csharpast.Member {
	getters := map[string]*ir.MethodDeclaration{}
	setters := map[string]*ir.MethodDeclaration{}
	for _, m := range members {
		if md, ok := m.(*ir.MethodDeclaration); ok {
			switch md.AccessorKind {
			case "get":
				getters[md.Name] = md
			case "set":
				setters[md.Name] = md
			}
		}
	}

	emitted := map[string]bool{}
	var out []csharpast.Member
	for _, m := range members {
		if md, ok := m.(*ir.MethodDeclaration); ok && md.AccessorKind != "" {
			if emitted[md.Name] {
				continue
			}
			emitted[md.Name] = true
			out = append(out, lowerAccessorPair(ctx, getters[md.Name], setters[md.Name]))
			continue
		}
		out = append(out, lowerClassMember(ctx, className, m)...)
	}
	return out
}

func lowerClassMember(ctx EmitterContext, className string, m ir.ClassMember) []csharpast.Member {
	switch n := m.(type) {
	case *ir.PropertyDeclaration:
		return lowerPropertyMember(ctx, n)
	case *ir.MethodDeclaration:
		return lowerMethodMember(ctx, n)
	case *ir.ConstructorDeclaration:
		return []csharpast.Member{lowerConstructorMember(ctx, className, n)}
	default:
		panicICE("TSNB062", "emitter: unknown IR class member kind %q", m.Kind())
		return nil
	}
}

// lowerPropertyMember lowers a field declaration. A destructuring field
// pattern (rare — a static-field destructuring declaration, spec.md §4.4)
// expands into a readonly backing field `__{name}` plus one field per bound
// name, all carrying the declared visibility (and `static` when the field
// is static).
func lowerPropertyMember(ctx EmitterContext, n *ir.PropertyDeclaration) []csharpast.Member {
	mods := []csharpast.Modifier{lowerVisibility(n.Visibility)}
	if n.IsStatic {
		mods = append(mods, csharpast.ModStatic)
	}

	if id, ok := n.Pattern.(*ir.IdentifierPattern); ok || n.Pattern == nil {
		name := n.Name
		if ok {
			name = id.Name
		}
		var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
		if n.TypeAnnotation != nil {
			t = LowerType(ctx, n.TypeAnnotation)
		}
		if n.IsOptional {
			t = &csharpast.NullableType{Element: t}
		}
		var init csharpast.Expression
		var pending []*csharpast.TypeDeclaration
		if n.Initializer != nil {
			var initCtx EmitterContext
			init, initCtx = LowerExpression(ctx, n.Initializer)
			pending = initCtx.PendingGeneratorTypes[len(ctx.PendingGeneratorTypes):]
		}
		if n.IsReadonly {
			mods = append(mods, csharpast.ModReadonly)
		}
		out := []csharpast.Member{&csharpast.Field{Modifiers: mods, Type: t, Name: name, Init: init}}
		for _, p := range pending {
			out = append(out, p)
		}
		return out
	}

	backingName := "__" + n.Name
	var backingType csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
	if n.Initializer != nil {
		if it := n.Initializer.InferredType(); it != nil {
			backingType = LowerType(ctx, it)
		}
	}
	var init csharpast.Expression
	if n.Initializer != nil {
		init, _ = LowerExpression(ctx, n.Initializer)
	}
	backingMods := append(append([]csharpast.Modifier{}, mods...), csharpast.ModReadonly)
	backing := &csharpast.Field{Modifiers: backingMods, Type: backingType, Name: backingName, Init: init}

	var declType ir.Type
	if n.Initializer != nil {
		declType = n.Initializer.InferredType()
	}
	stmts, _ := LowerLocalDestructure(ctx, n.Pattern, declType, &csharpast.Identifier{Name: backingName})
	out := []csharpast.Member{backing}
	for _, s := range stmts {
		if ld, ok := s.(*csharpast.LocalDeclaration); ok {
			out = append(out, &csharpast.Field{Modifiers: mods, Type: ld.Type, Name: ld.Name, Init: ld.Init})
		}
	}
	return out
}

func methodReturnType(ctx EmitterContext, n *ir.MethodDeclaration) csharpast.Type {
	var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefVoid}
	if n.ReturnType != nil {
		t = LowerType(ctx, n.ReturnType)
	}
	if n.IsAsync {
		t = wrapInTask(t)
	}
	return t
}

// lowerMethodMember lowers one method (constructors and get/set accessors
// are handled by their own dedicated lowering functions and never reach
// here).
func lowerMethodMember(ctx EmitterContext, n *ir.MethodDeclaration) []csharpast.Member {
	mods := []csharpast.Modifier{lowerVisibility(n.Visibility)}
	if n.IsStatic {
		mods = append(mods, csharpast.ModStatic)
	}

	if n.IsAbstract {
		mods = append(mods, csharpast.ModAbstract)
		return []csharpast.Member{&csharpast.Method{
			Modifiers:  mods,
			ReturnType: methodReturnType(ctx, n),
			Name:       n.Name,
			TypeParams: lowerTypeParamConstraints(ctx, n.TypeParams),
			Params:     lowerSignatureParams(ctx, n.Params),
		}}
	}

	if n.IsGenerator {
		return lowerGeneratorMethodMember(ctx, n, mods)
	}

	if n.IsAsync {
		mods = append(mods, csharpast.ModAsync)
	}
	methodCtx := ctx.WithTypeParameters(n.TypeParams)
	fnCtx := methodCtx.EnterFunction(n.ReturnType, n.IsAsync)
	params, prelude, fnCtx2 := lowerMethodParams(fnCtx, n.Params)
	body, fnCtx3 := LowerBlock(fnCtx2, n.Body)
	body.Statements = append(append([]csharpast.Statement{}, prelude...), body.Statements...)
	retType := methodReturnType(fnCtx3, n)

	method := &csharpast.Method{
		Modifiers:  mods,
		ReturnType: retType,
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(fnCtx3, n.TypeParams),
		Params:     params,
		Body:       body,
	}
	members := []csharpast.Member{method}
	for _, t := range fnCtx3.PendingGeneratorTypes {
		members = append(members, t)
	}
	return members
}

// lowerGeneratorMethodMember lowers a generator method, nesting its exchange
// record and wrapper class as sibling members of the SAME enclosing class —
// unlike a generator inside a plain function body, a class permits nested
// type declarations, so no PendingGeneratorTypes bubbling is needed here.
func lowerGeneratorMethodMember(ctx EmitterContext, n *ir.MethodDeclaration, mods []csharpast.Modifier) []csharpast.Member {
	methodCtx := ctx.WithTypeParameters(n.TypeParams)
	params, prelude, ctx2 := lowerMethodParams(methodCtx, n.Params)
	innerIterator, supportTypes, ctx3 := lowerGenerator(ctx2, n.Name, n.YieldType, n.ReturnType, n.NextType, n.Body, n.IsAsync)
	_ = ctx3
	wrapperName := n.Name + "_Generator"
	exchangeName := n.Name + "_exchange"
	body := buildGeneratorEntryBody(exchangeName, wrapperName, prelude, innerIterator, n.ReturnType)
	method := &csharpast.Method{
		Modifiers:  mods,
		ReturnType: &csharpast.IdentifierType{Name: wrapperName},
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(methodCtx, n.TypeParams),
		Params:     params,
		Body:       body,
	}
	members := []csharpast.Member{method}
	for _, t := range supportTypes {
		members = append(members, t)
	}
	return members
}

// lowerAccessorPair merges a TS getter/setter pair declared on a class into
// a single C# Property. Either getter or setter may be nil (a write-only or
// read-only accessor); at least one is always non-nil.
func lowerAccessorPair(ctx EmitterContext, getter, setter *ir.MethodDeclaration) csharpast.Member {
	var mods []csharpast.Modifier
	var t csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefObject}
	var getBody, setBody *csharpast.Block
	name := ""

	if getter != nil {
		name = getter.Name
		mods = []csharpast.Modifier{lowerVisibility(getter.Visibility)}
		if getter.IsStatic {
			mods = append(mods, csharpast.ModStatic)
		}
		if getter.ReturnType != nil {
			t = LowerType(ctx, getter.ReturnType)
		}
		fnCtx := ctx.EnterFunction(getter.ReturnType, false)
		b, _ := LowerBlock(fnCtx, getter.Body)
		getBody = b
	}
	if setter != nil {
		name = setter.Name
		if mods == nil {
			mods = []csharpast.Modifier{lowerVisibility(setter.Visibility)}
			if setter.IsStatic {
				mods = append(mods, csharpast.ModStatic)
			}
		}
		if getter == nil && len(setter.Params) > 0 && setter.Params[0].TypeAnnotation != nil {
			t = LowerType(ctx, setter.Params[0].TypeAnnotation)
		}
		fnCtx := ctx.EnterFunction(nil, false)
		if len(setter.Params) > 0 {
			if id, ok := setter.Params[0].Pattern.(*ir.IdentifierPattern); ok {
				fnCtx.LocalNameMap = cloneStringMap(fnCtx.LocalNameMap)
				fnCtx.UsedLocalNames = cloneStringSet(fnCtx.UsedLocalNames)
				fnCtx.LocalNameMap[id.Name] = "value"
				fnCtx.UsedLocalNames["value"] = true
			}
		}
		b, _ := LowerBlock(fnCtx, setter.Body)
		setBody = b
	}

	return &csharpast.Property{
		Modifiers:  mods,
		Type:       t,
		Name:       name,
		HasGetter:  getter != nil,
		HasSetter:  setter != nil,
		GetterBody: getBody,
		SetterBody: setBody,
	}
}

func lowerConstructorMember(ctx EmitterContext, className string, n *ir.ConstructorDeclaration) *csharpast.Constructor {
	fnCtx := ctx.EnterFunction(nil, false)
	params, prelude, fnCtx2 := lowerMethodParams(fnCtx, n.Params)
	body, fnCtx3 := LowerBlock(fnCtx2, n.Body)
	_ = fnCtx3
	body.Statements = append(append([]csharpast.Statement{}, prelude...), body.Statements...)
	return &csharpast.Constructor{
		Modifiers: []csharpast.Modifier{csharpast.ModPublic},
		Name:      className,
		Params:    params,
		Body:      body,
	}
}

// lowerInterfaceDeclaration lowers an interface into a TypeDeclaration with
// signature-only members (no bodies).
func lowerInterfaceDeclaration(ctx EmitterContext, n *ir.InterfaceDeclaration) *csharpast.TypeDeclaration {
	mods := []csharpast.Modifier{csharpast.ModInternal}
	if n.Exported {
		mods = []csharpast.Modifier{csharpast.ModPublic}
	}
	ctx2 := ctx.WithTypeParameters(n.TypeParams)
	var base []csharpast.Type
	for _, e := range n.Extends {
		base = append(base, LowerType(ctx2, e))
	}
	members := make([]csharpast.Member, 0, len(n.Members))
	for _, m := range n.Members {
		members = append(members, lowerInterfaceMember(ctx2, m))
	}
	return &csharpast.TypeDeclaration{
		DeclKind:   csharpast.TypeInterface,
		Modifiers:  mods,
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(ctx2, n.TypeParams),
		BaseTypes:  base,
		Members:    members,
	}
}

// lowerInterfaceMember lowers one structural-interface member, also reused
// for a structural type alias's StructMembers (spec.md §4.2/§4.7).
func lowerInterfaceMember(ctx EmitterContext, m ir.InterfaceMember) csharpast.Member {
	if m.Params != nil {
		var retType csharpast.Type = &csharpast.PredefinedType{Name: csharpast.PredefVoid}
		if m.ReturnType != nil {
			retType = LowerType(ctx, m.ReturnType)
		}
		return &csharpast.Method{ReturnType: retType, Name: m.Name, Params: lowerSignatureParams(ctx, m.Params)}
	}
	t := csharpast.Type(&csharpast.PredefinedType{Name: csharpast.PredefObject})
	if m.TypeAnnotation != nil {
		t = LowerType(ctx, m.TypeAnnotation)
	}
	if m.IsOptional {
		t = &csharpast.NullableType{Element: t}
	}
	switch m.AccessorKind {
	case "get":
		return &csharpast.Property{Type: t, Name: m.Name, HasGetter: true}
	case "set":
		return &csharpast.Property{Type: t, Name: m.Name, HasSetter: true}
	default:
		return &csharpast.Property{Type: t, Name: m.Name, HasGetter: true, HasSetter: true}
	}
}

func lowerEnumDeclaration(ctx EmitterContext, n *ir.EnumDeclaration) *csharpast.TypeDeclaration {
	mods := []csharpast.Modifier{csharpast.ModInternal}
	if n.Exported {
		mods = []csharpast.Modifier{csharpast.ModPublic}
	}
	members := make([]csharpast.EnumMember, len(n.Members))
	for i, m := range n.Members {
		var v csharpast.Expression
		if m.Value != nil {
			v, _ = LowerExpression(ctx, m.Value)
		}
		members[i] = csharpast.EnumMember{Name: m.Name, Value: v}
	}
	return &csharpast.TypeDeclaration{DeclKind: csharpast.TypeEnum, Modifiers: mods, Name: n.Name, EnumMembers: members}
}

// lowerTypeAliasDeclaration lowers a type alias. A structural object-type
// alias (spec.md §4.2 Open Question resolution: "structural aliases the
// frontend marks EmitAsStruct lower to a C# struct, others to a sealed
// class") becomes a class/struct declaration; a non-structural alias
// (union, primitive, mapped/conditional type, etc.) has no CLR type of its
// own to declare and is erased, leaving a one-line comment marking where it
// stood so a reader of the emitted source isn't left wondering where the
// name went.
func lowerTypeAliasDeclaration(ctx EmitterContext, n *ir.TypeAliasDeclaration) []csharpast.NamespaceMember {
	if !n.IsStructural {
		return []csharpast.NamespaceMember{&csharpast.Comment{Text: "type alias " + n.Name + " (non-structural, erased)"}}
	}

	declKind := csharpast.TypeClass
	if n.EmitAsStruct {
		declKind = csharpast.TypeStruct
	}
	mods := []csharpast.Modifier{csharpast.ModInternal}
	if n.Exported {
		mods = []csharpast.Modifier{csharpast.ModPublic}
	}
	if declKind == csharpast.TypeClass {
		mods = append(mods, csharpast.ModSealed)
	}
	ctx2 := ctx.WithTypeParameters(n.TypeParams)
	members := make([]csharpast.Member, 0, len(n.StructMembers))
	for _, m := range n.StructMembers {
		members = append(members, lowerInterfaceMember(ctx2, m))
	}
	return []csharpast.NamespaceMember{&csharpast.TypeDeclaration{
		DeclKind:   declKind,
		Modifiers:  mods,
		Name:       n.Name,
		TypeParams: lowerTypeParamConstraints(ctx2, n.TypeParams),
		Members:    members,
	}}
}
