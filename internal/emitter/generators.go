package emitter

import (
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// lowerGenerator builds the exchange record, wrapper class, and inner
// iterator local function for a generator body (spec.md §4.6): an exchange
// record carrying the value passed back into `next(value)` (Input) and the
// value produced by `yield` (Output), a `{name}_Generator` wrapper class
// exposing Next/Return/Throw, and an inner local function doing the actual
// iteration. name is the generator's declared name, used to derive
// `{name}_exchange`/`{name}_Generator`.
// ctx must already reflect the enclosing function/method/lambda's own
// parameter bindings (i.e. the caller has already run lowerLambdaParams or
// lowerMethodParams on the same parameter list and threaded the resulting
// context through) — the inner iterator local function declares no
// parameters of its own and instead closes over the outer parameters by
// name, since buildGeneratorConstruct always invokes it as `__iterator()`
// with zero arguments.
func lowerGenerator(ctx EmitterContext, name string, yieldType, returnType, nextType ir.Type, body *ir.Block, isAsync bool) (*csharpast.LocalFunction, []*csharpast.TypeDeclaration, EmitterContext) {
	exchangeName := name + "_exchange"
	wrapperName := name + "_Generator"

	yieldCS := LowerType(ctx, yieldType)
	nextCS := LowerType(ctx, nextType)
	returnIsVoid := returnType == nil || isVoidType(returnType)
	var returnCS csharpast.Type
	if !returnIsVoid {
		returnCS = LowerType(ctx, returnType)
	}

	exchangeRecord := &csharpast.TypeDeclaration{
		DeclKind:  csharpast.TypeClass,
		Modifiers: []csharpast.Modifier{csharpast.ModInternal},
		Name:      exchangeName,
		Members: []csharpast.Member{
			&csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPublic}, Type: &csharpast.NullableType{Element: nextCS}, Name: "Input"},
			&csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPublic}, Type: yieldCS, Name: "Output"},
		},
	}

	fnCtx := ctx.EnterFunction(yieldType, isAsync)
	fnCtx.GeneratorExchangeVar = "exchange"
	fnCtx.GeneratorIteratorFn = "__iterator"
	fnCtx.GeneratorReturnValueVar = "__returnValue"

	iterBody, fnCtx2 := LowerBlock(fnCtx, body)
	if !returnIsVoid {
		iterBody.Statements = append(iterBody.Statements, csharpast.YieldBreak{})
	}

	elemType := csharpast.Type(&csharpast.IdentifierType{Name: exchangeName})
	enumerableName := "System.Collections.Generic.IEnumerable"
	if isAsync {
		enumerableName = "System.Collections.Generic.IAsyncEnumerable"
	}
	innerIterator := &csharpast.LocalFunction{
		Name:       "__iterator",
		ReturnType: &csharpast.IdentifierType{Name: enumerableName, TypeArguments: []csharpast.Type{elemType}},
		Body:       iterBody,
		IsAsync:    isAsync,
	}

	wrapperClass := buildGeneratorWrapperClass(wrapperName, exchangeName, yieldCS, returnCS, returnIsVoid, isAsync)

	return innerIterator, []*csharpast.TypeDeclaration{exchangeRecord, wrapperClass}, fnCtx2
}

// buildGeneratorEntryBody assembles the three statements shared by every
// generator entry point (top-level function, method, local function
// declaration, function expression): the exchange instance, the inner
// iterator local function, and the return of the constructed wrapper.
// paramPrelude (destructuring statements for complex parameters, per
// spec.md §4.4) runs first, before the exchange is even constructed.
func buildGeneratorEntryBody(exchangeName, wrapperName string, paramPrelude []csharpast.Statement, innerIterator *csharpast.LocalFunction, returnType ir.Type) *csharpast.Block {
	stmts := append([]csharpast.Statement{}, paramPrelude...)
	stmts = append(stmts,
		&csharpast.LocalDeclaration{Type: &csharpast.IdentifierType{Name: exchangeName}, Name: "exchange", Init: &csharpast.ObjectCreation{Type: &csharpast.IdentifierType{Name: exchangeName}}},
		innerIterator,
		&csharpast.Return{Argument: buildGeneratorConstruct(wrapperName, returnType)},
	)
	return &csharpast.Block{Statements: stmts}
}

// buildGeneratorWrapperClass builds the `{name}_Generator` class per
// spec.md §4.6: Next/Return/Throw operations driving the inner enumerator,
// plus a ReturnValue property when TReturn is non-void.
func buildGeneratorWrapperClass(wrapperName, exchangeName string, yieldCS, returnCS csharpast.Type, returnIsVoid, isAsync bool) *csharpast.TypeDeclaration {
	enumeratorName := "System.Collections.Generic.IEnumerator"
	if isAsync {
		enumeratorName = "System.Collections.Generic.IAsyncEnumerator"
	}
	enumeratorType := csharpast.Type(&csharpast.IdentifierType{Name: enumeratorName, TypeArguments: []csharpast.Type{&csharpast.IdentifierType{Name: exchangeName}}})
	resultType := &csharpast.IdentifierType{Name: runtimeNamespace + ".IteratorResult", TypeArguments: []csharpast.Type{yieldCS}}

	stateField := &csharpast.Field{
		Modifiers: []csharpast.Modifier{csharpast.ModPrivate},
		Type:      &csharpast.IdentifierType{Name: runtimeNamespace + ".GeneratorState"},
		Name:      "_state",
		Init:      &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Pending"},
	}
	enumeratorField := &csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPrivate, csharpast.ModReadonly}, Type: enumeratorType, Name: "_enumerator"}
	exchangeField := &csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPrivate, csharpast.ModReadonly}, Type: &csharpast.IdentifierType{Name: exchangeName}, Name: "_exchange"}

	ctorParams := []csharpast.Parameter{
		{Type: enumeratorType, Name: "iterator"},
		{Type: &csharpast.IdentifierType{Name: exchangeName}, Name: "exchange"},
	}
	ctorBody := []csharpast.Statement{
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_enumerator"}, Operator: "=", Value: &csharpast.Identifier{Name: "iterator"}}},
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_exchange"}, Operator: "=", Value: &csharpast.Identifier{Name: "exchange"}}},
	}
	var returnGetterField *csharpast.Field
	if !returnIsVoid {
		funcType := &csharpast.IdentifierType{Name: "System.Func", TypeArguments: []csharpast.Type{returnCS}}
		returnGetterField = &csharpast.Field{Modifiers: []csharpast.Modifier{csharpast.ModPrivate, csharpast.ModReadonly}, Type: funcType, Name: "_getReturnValue"}
		ctorParams = append(ctorParams, csharpast.Parameter{Type: funcType, Name: "getReturnValue"})
		ctorBody = append(ctorBody, &csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_getReturnValue"}, Operator: "=", Value: &csharpast.Identifier{Name: "getReturnValue"}}})
	}

	ctor := &csharpast.Constructor{Modifiers: []csharpast.Modifier{csharpast.ModPublic}, Name: wrapperName, Params: ctorParams, Body: &csharpast.Block{Statements: ctorBody}}

	members := []csharpast.Member{stateField, enumeratorField, exchangeField}
	if returnGetterField != nil {
		members = append(members, returnGetterField)
	}
	members = append(members, ctor,
		buildNextMethod(resultType, isAsync),
		buildReturnMethod(resultType, isAsync),
		buildThrowMethod(resultType, isAsync),
	)
	if !returnIsVoid {
		members = append(members, &csharpast.Property{
			Modifiers: []csharpast.Modifier{csharpast.ModPublic}, Type: returnCS, Name: "ReturnValue",
			HasGetter:  true,
			GetterBody: &csharpast.Block{Statements: []csharpast.Statement{&csharpast.Return{Argument: &csharpast.Invocation{Callee: &csharpast.Identifier{Name: "_getReturnValue"}}}}},
		})
	}

	return &csharpast.TypeDeclaration{
		DeclKind:  csharpast.TypeClass,
		Modifiers: []csharpast.Modifier{csharpast.ModInternal},
		Name:      wrapperName,
		Members:   members,
	}
}

func asyncModifiers(isAsync bool) []csharpast.Modifier {
	mods := []csharpast.Modifier{csharpast.ModPublic}
	if isAsync {
		mods = append(mods, csharpast.ModAsync)
	}
	return mods
}

func doneResult(resultType csharpast.Type) csharpast.Expression {
	return &csharpast.ObjectCreation{Type: resultType, Initializers: []csharpast.ObjectInitMember{
		{Name: "Value", Value: &csharpast.Default{}},
		{Name: "Done", Value: &csharpast.Literal{Text: "true"}},
	}}
}

func buildNextMethod(resultType csharpast.Type, isAsync bool) *csharpast.Method {
	moveNextName := "MoveNext"
	if isAsync {
		moveNextName = "MoveNextAsync"
	}
	var moveCall csharpast.Expression = &csharpast.Invocation{Callee: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "_enumerator"}, Name: moveNextName}}
	if isAsync {
		moveCall = &csharpast.Await{Operand: moveCall}
	}
	body := []csharpast.Statement{
		&csharpast.If{
			Test: &csharpast.Binary{Left: &csharpast.Identifier{Name: "_state"}, Operator: "==", Right: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Done"}},
			Then: &csharpast.Block{Statements: []csharpast.Statement{&csharpast.Return{Argument: doneResult(resultType)}}},
		},
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "_exchange"}, Name: "Input"}, Operator: "=", Value: &csharpast.Identifier{Name: "value"}}},
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_state"}, Operator: "=", Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Running"}}},
		&csharpast.If{
			Test: moveCall,
			Then: &csharpast.Block{Statements: []csharpast.Statement{&csharpast.Return{Argument: &csharpast.ObjectCreation{Type: resultType, Initializers: []csharpast.ObjectInitMember{
				{Name: "Value", Value: &csharpast.MemberAccess{Receiver: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "_enumerator"}, Name: "Current"}, Name: "Output"}},
				{Name: "Done", Value: &csharpast.Literal{Text: "false"}},
			}}}}},
			Else: &csharpast.Block{Statements: []csharpast.Statement{
				&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_state"}, Operator: "=", Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Done"}}},
				&csharpast.Return{Argument: doneResult(resultType)},
			}},
		},
	}
	return &csharpast.Method{
		Modifiers:  asyncModifiers(isAsync),
		ReturnType: resultType,
		Name:       "Next",
		Params:     []csharpast.Parameter{{Type: &csharpast.NullableType{Element: &csharpast.PredefinedType{Name: csharpast.PredefObject}}, Name: "value", Default: &csharpast.Default{}}},
		Body:       &csharpast.Block{Statements: body},
	}
}

func buildReturnMethod(resultType csharpast.Type, isAsync bool) *csharpast.Method {
	disposeName := "Dispose"
	if isAsync {
		disposeName = "DisposeAsync"
	}
	var dispose csharpast.Expression = &csharpast.Invocation{Callee: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "_enumerator"}, Name: disposeName}}
	if isAsync {
		dispose = &csharpast.Await{Operand: dispose}
	}
	body := []csharpast.Statement{
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_state"}, Operator: "=", Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Done"}}},
		&csharpast.ExpressionStatement{Expr: dispose},
		&csharpast.Return{Argument: doneResult(resultType)},
	}
	return &csharpast.Method{
		Modifiers:  asyncModifiers(isAsync),
		ReturnType: resultType,
		Name:       "Return",
		Params:     []csharpast.Parameter{{Type: &csharpast.NullableType{Element: &csharpast.PredefinedType{Name: csharpast.PredefObject}}, Name: "value", Default: &csharpast.Default{}}},
		Body:       &csharpast.Block{Statements: body},
	}
}

func buildThrowMethod(resultType csharpast.Type, isAsync bool) *csharpast.Method {
	disposeName := "Dispose"
	if isAsync {
		disposeName = "DisposeAsync"
	}
	var dispose csharpast.Expression = &csharpast.Invocation{Callee: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "_enumerator"}, Name: disposeName}}
	if isAsync {
		dispose = &csharpast.Await{Operand: dispose}
	}
	rethrow := &csharpast.If{
		Test: &csharpast.Is{Operand: &csharpast.Identifier{Name: "e"}, Pattern: &csharpast.DeclarationPattern{Type: &csharpast.IdentifierType{Name: "System.Exception"}, Designator: "ex"}},
		Then: &csharpast.Block{Statements: []csharpast.Statement{&csharpast.ThrowStatement{Argument: &csharpast.Identifier{Name: "ex"}}}},
		Else: &csharpast.Block{Statements: []csharpast.Statement{&csharpast.ThrowStatement{Argument: &csharpast.ObjectCreation{
			Type: &csharpast.IdentifierType{Name: "System.Exception"},
			Arguments: []csharpast.Expression{&csharpast.Binary{
				Left: &csharpast.Invocation{
					Callee: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "e"}, Name: "ToString"},
				},
				Operator: "??",
				Right:    &csharpast.Literal{Text: `"Unknown error"`},
			}},
		}}}},
	}
	body := []csharpast.Statement{
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.Identifier{Name: "_state"}, Operator: "=", Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".GeneratorState"}, Name: "Done"}}},
		&csharpast.ExpressionStatement{Expr: dispose},
		rethrow,
		&csharpast.Return{Argument: doneResult(resultType)},
	}
	return &csharpast.Method{
		Modifiers:  asyncModifiers(isAsync),
		ReturnType: resultType,
		Name:       "Throw",
		Params:     []csharpast.Parameter{{Type: &csharpast.PredefinedType{Name: csharpast.PredefObject}, Name: "e"}},
		Body:       &csharpast.Block{Statements: body},
	}
}

func buildGeneratorConstruct(wrapperName string, returnType ir.Type) csharpast.Expression {
	args := []csharpast.Expression{
		&csharpast.Invocation{Callee: &csharpast.Identifier{Name: "__iterator"}},
		&csharpast.Identifier{Name: "exchange"},
	}
	if returnType != nil && !isVoidType(returnType) {
		args = append(args, &csharpast.Lambda{ExprBody: &csharpast.Identifier{Name: "__returnValue"}})
	}
	return &csharpast.ObjectCreation{Type: &csharpast.IdentifierType{Name: wrapperName}, Arguments: args}
}

// lowerGeneratorExpression lowers a generator function *expression* to a
// lambda that, each time it is invoked, constructs a fresh exchange instance
// and a fresh iterator and returns the wrapper around them — calling a
// generator function produces a new, independently-iterable generator
// object on every call (spec.md §4.6). The supporting exchange record and
// wrapper class cannot be declared inline (no Backend AST statement
// introduces a local type), so they are appended to
// ctx.PendingGeneratorTypes for the enclosing declaration lowering
// (internal/emitter/declarations.go) to hoist as sibling members of the
// enclosing class.
func lowerGeneratorExpression(ctx EmitterContext, n *ir.FunctionExpression) (csharpast.Expression, EmitterContext) {
	name := n.Name
	if name == "" {
		name = "anonymous"
	}
	lambdaParams, prelude, ctx2 := lowerLambdaParams(ctx, n.Params)
	innerIterator, decls, ctx3 := lowerGenerator(ctx2, name, n.YieldType, n.ReturnType, n.NextType, n.Body, n.IsAsync)
	ctx3.PendingGeneratorTypes = append(ctx3.PendingGeneratorTypes, decls...)

	exchangeName := name + "_exchange"
	wrapperName := name + "_Generator"
	block := buildGeneratorEntryBody(exchangeName, wrapperName, prelude, innerIterator, n.ReturnType)
	lambda := &csharpast.Lambda{Block: block, Params: lambdaParams}
	if needsDelegateReification(ctx, n.ReturnType, n.Params) {
		paramTypes := make([]ir.Type, len(n.Params))
		for i, p := range n.Params {
			paramTypes[i] = p.TypeAnnotation
		}
		funcType := lowerFunctionType(ctx3, &ir.FunctionType{ReturnType: &ir.ReferenceType{Name: wrapperName}, Params: paramTypes})
		return &csharpast.Cast{Type: funcType, Operand: lambda}, ctx3
	}
	return lambda, ctx3
}

// lowerGeneratorYield lowers a yield expression reached directly through
// LowerExpression's generic dispatch (i.e. outside the statement-level fast
// path in lowerYieldStatement): its value is the resumed `exchange.Input`.
// The side-effecting suspend (`exchange.Output = argument; yield return
// exchange;`) is the responsibility of whatever statement contains this
// expression — a bare YieldExpression reachable only through this fallback
// (nested inside a larger expression, not a plain statement) is a frontend
// contract the validator is expected to rule out, since the Backend AST
// cannot splice a suspend mid-expression.
func lowerGeneratorYield(ctx EmitterContext, n *ir.YieldExpression) (csharpast.Expression, EmitterContext) {
	if ctx.GeneratorExchangeVar == "" {
		panicICE("TSNB050", "emitter: yield expression outside a generator body")
	}
	access := &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: ctx.GeneratorExchangeVar}, Name: "Input"}
	return &csharpast.SuppressNullableWarning{Operand: access}, ctx
}

// lowerYieldStatement recognizes the `yield e;` / `yield* e;` statement form
// and emits the exchange-protocol suspend pair directly, the common case for
// generator bodies. Returns ok=false when expr is not a yield in statement
// position, leaving statement lowering to fall through to the ordinary
// expression-statement path.
func lowerYieldStatement(ctx EmitterContext, expr ir.Expression) (stmts []csharpast.Statement, _ EmitterContext, ok bool) {
	y, isYield := expr.(*ir.YieldExpression)
	if !isYield {
		return nil, ctx, false
	}
	if ctx.GeneratorExchangeVar == "" {
		panicICE("TSNB050", "emitter: yield statement outside a generator body")
	}
	exchange := &csharpast.Identifier{Name: ctx.GeneratorExchangeVar}
	if y.Delegate {
		innerCtx := ctx.EnterScope()
		inner, innerCtx2 := LowerExpression(innerCtx, y.Argument)
		itemName, innerCtx3 := innerCtx2.NextItemTemp()
		forward := &csharpast.Foreach{
			ElementType: csharpast.VarType{},
			Name:        itemName,
			Source:      inner,
			Body: &csharpast.Block{Statements: []csharpast.Statement{
				&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.MemberAccess{Receiver: exchange, Name: "Output"}, Operator: "=", Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: itemName}, Name: "Output"}}},
				&csharpast.YieldReturn{Argument: exchange},
			}},
		}
		_ = innerCtx3
		return []csharpast.Statement{forward}, ctx, true
	}
	var arg csharpast.Expression = &csharpast.Default{}
	if y.Argument != nil {
		lowered, ctx2 := LowerExpression(ctx, y.Argument)
		ctx = ctx2
		arg = lowered
	}
	return []csharpast.Statement{
		&csharpast.ExpressionStatement{Expr: &csharpast.Assignment{Target: &csharpast.MemberAccess{Receiver: exchange, Name: "Output"}, Operator: "=", Value: arg}},
		&csharpast.YieldReturn{Argument: exchange},
	}, ctx, true
}
