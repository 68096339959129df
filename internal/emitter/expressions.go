package emitter

import (
	"strconv"
	"strings"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

const runtimeNamespace = "global::Tsonic.Runtime"

// binaryOperatorText maps IR non-logical binary operators directly onto C#
// operator text (spec.md §4.3: equality/relational/arithmetic/bitwise/shift
// operators and `??` are a direct mapping; `instanceof`/`in` are handled
// separately since they have no single-token C# equivalent).
var binaryOperatorText = map[ir.BinaryOperator]string{
	ir.OpAdd: "+", ir.OpSub: "-", ir.OpMul: "*", ir.OpDiv: "/", ir.OpMod: "%",
	ir.OpEq: "==", ir.OpStrictEq: "==", ir.OpNotEq: "!=", ir.OpStrictNotEq: "!=",
	ir.OpLt: "<", ir.OpLte: "<=", ir.OpGt: ">", ir.OpGte: ">=",
	ir.OpBitAnd: "&", ir.OpBitOr: "|", ir.OpBitXor: "^",
	ir.OpShl: "<<", ir.OpShr: ">>", ir.OpUShr: ">>>",
	ir.OpNullishCoalesce: "??",
}

// LowerExpression translates one IR expression into a Backend AST
// expression, per the per-kind contracts of spec.md §4.3.
func LowerExpression(ctx EmitterContext, e ir.Expression) (csharpast.Expression, EmitterContext) {
	switch n := e.(type) {
	case *ir.NumericLiteral:
		return &csharpast.Literal{Text: lowerNumericLiteral(n)}, ctx

	case *ir.StringLiteral:
		return &csharpast.Literal{Text: quoteStringLiteral(n.Value)}, ctx

	case *ir.BooleanLiteral:
		return boolLiteral(n.Value), ctx

	case *ir.NullLiteral:
		return &csharpast.Literal{Text: "null"}, ctx

	case *ir.Identifier:
		return &csharpast.Identifier{Name: ctx.ResolveIdentifier(n.Name)}, ctx

	case *ir.ThisExpression:
		return &csharpast.Identifier{Name: "this"}, ctx

	case *ir.MemberAccess:
		obj, ctx2 := LowerExpression(ctx, n.Object)
		return &csharpast.MemberAccess{Receiver: obj, Name: n.Property, Conditional: n.Optional}, ctx2

	case *ir.ElementAccess:
		obj, ctx2 := LowerExpression(ctx, n.Object)
		idx, ctx3 := LowerExpression(ctx2, n.Index)
		return &csharpast.ElementAccess{Receiver: obj, Index: idx, Conditional: n.Optional}, ctx3

	case *ir.CallExpression:
		return lowerCallExpression(ctx, n)

	case *ir.NewExpression:
		return lowerNewExpression(ctx, n)

	case *ir.BinaryExpression:
		return lowerBinaryExpression(ctx, n)

	case *ir.LogicalExpression:
		return lowerLogicalExpression(ctx, n)

	case *ir.UnaryExpression:
		operand, ctx2 := LowerExpression(ctx, n.Operand)
		return &csharpast.PrefixUnary{Operand: operand, Operator: string(n.Operator)}, ctx2

	case *ir.UpdateExpression:
		operand, ctx2 := LowerExpression(ctx, n.Operand)
		if n.Prefix {
			return &csharpast.PrefixUnary{Operand: operand, Operator: n.Operator}, ctx2
		}
		return &csharpast.PostfixUnary{Operand: operand, Operator: n.Operator}, ctx2

	case *ir.ConditionalExpression:
		test, ctx2 := LowerBooleanContext(ctx, n.Test)
		whenTrue, ctx3 := LowerExpression(ctx2, n.Consequent)
		whenFalse, ctx4 := LowerExpression(ctx3, n.Alternate)
		return &csharpast.Conditional{Test: test, WhenTrue: whenTrue, WhenFalse: whenFalse}, ctx4

	case *ir.AssignmentExpression:
		return lowerAssignmentExpression(ctx, n)

	case *ir.TemplateLiteral:
		return lowerTemplateLiteral(ctx, n)

	case *ir.ObjectLiteral:
		return lowerObjectLiteral(ctx, n)

	case *ir.ArrayLiteral:
		return lowerArrayLiteral(ctx, n)

	case *ir.ArrowFunctionExpression:
		return lowerArrowFunction(ctx, n)

	case *ir.FunctionExpression:
		return lowerFunctionExpression(ctx, n)

	case *ir.SpreadElement:
		// Spread only ever appears inside an argument list/array literal,
		// both of which unwrap it themselves (lowerArgumentList, which
		// lowerArrayLiteral also uses) into a runtime ArrayHelpers.Spread
		// call; reaching here is a frontend contract violation.
		panicICE("TSNB020", "emitter: bare SpreadElement outside argument/array list")
		return nil, ctx

	case *ir.TypeOfExpression:
		return lowerTypeOf(ctx, n)

	case *ir.AwaitExpression:
		operand, ctx2 := LowerExpression(ctx, n.Operand)
		return &csharpast.Await{Operand: operand}, ctx2

	case *ir.YieldExpression:
		return lowerYieldExpression(ctx, n)

	case *ir.ParenthesizedExpression:
		inner, ctx2 := LowerExpression(ctx, n.Inner)
		return inner, ctx2

	default:
		panicICE("TSNB021", "emitter: unknown IR expression kind %q", e.Kind())
		return nil, ctx
	}
}

// lowerNumericLiteral renders n.Value (not n.Raw) as C# literal text. An
// `int`-typed literal prints as a plain integer (`3`); every other literal
// prints as a C# double literal carrying the `d` suffix (`3d`, `1.5d`),
// which forces floating point without a decimal point.
func lowerNumericLiteral(n *ir.NumericLiteral) string {
	if p, ok := n.Type.(*ir.PrimitiveType); ok && p.Name == ir.PrimInt {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64) + "d"
}

// quoteStringLiteral escapes `"`, backslash, newline, and tab per spec.md
// §4.3.
func quoteStringLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func lowerCallExpression(ctx EmitterContext, n *ir.CallExpression) (csharpast.Expression, EmitterContext) {
	args, ctx2 := lowerArgumentList(ctx, n.Arguments)
	typeArgs := make([]csharpast.Type, len(n.TypeArguments))
	for i, t := range n.TypeArguments {
		typeArgs[i] = LowerType(ctx2, t)
	}

	if !n.Optional {
		callee, ctx3 := LowerExpression(ctx2, n.Callee)
		return &csharpast.Invocation{Callee: callee, Arguments: args, TypeArguments: typeArgs}, ctx3
	}

	// Optional-chain call `foo?.()`: wrap the callee in a conditional member
	// access/invocation pair per spec.md §4.3. When the callee is itself a
	// MemberAccess this reads as `recv?.Method(args)`; otherwise it is a
	// conditional invocation of a bare value, `callee?.Invoke(args)`.
	if ma, ok := n.Callee.(*ir.MemberAccess); ok {
		obj, ctx3 := LowerExpression(ctx2, ma.Object)
		member := &csharpast.MemberAccess{Receiver: obj, Name: ma.Property, Conditional: true}
		return &csharpast.Invocation{Callee: member, Arguments: args, TypeArguments: typeArgs}, ctx3
	}
	callee, ctx3 := LowerExpression(ctx2, n.Callee)
	member := &csharpast.MemberAccess{Receiver: callee, Name: "Invoke", Conditional: true}
	return &csharpast.Invocation{Callee: member, Arguments: args, TypeArguments: typeArgs}, ctx3
}

// lowerArgumentList lowers a call/new argument list (also used for array
// literal elements). A spread element, in any position, lowers in place to
// `global::Tsonic.Runtime.ArrayHelpers.Spread(inner)`; the list is not
// otherwise rewritten.
func lowerArgumentList(ctx EmitterContext, args []ir.Expression) ([]csharpast.Expression, EmitterContext) {
	out := make([]csharpast.Expression, 0, len(args))
	for _, a := range args {
		if spread, ok := a.(*ir.SpreadElement); ok {
			inner, ctx2 := LowerExpression(ctx, spread.Argument)
			ctx = ctx2
			out = append(out, &csharpast.Invocation{
				Callee: &csharpast.MemberAccess{
					Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".ArrayHelpers"},
					Name:     "Spread",
				},
				Arguments: []csharpast.Expression{inner},
			})
			continue
		}
		lowered, ctx2 := LowerExpression(ctx, a)
		ctx = ctx2
		out = append(out, lowered)
	}
	return out, ctx
}

// lowerNewExpression lowers `new Callee(args)`, including the `new
// Array(n)`/`Array(n)` builtin forms (spec.md §4.3).
func lowerNewExpression(ctx EmitterContext, n *ir.NewExpression) (csharpast.Expression, EmitterContext) {
	if n.CalleeName == "Array" {
		elem := csharpast.Type(&csharpast.PredefinedType{Name: csharpast.PredefObject})
		if t := n.InferredType(); t != nil {
			if arr, ok := t.(*ir.ArrayType); ok {
				elem = LowerType(ctx, arr.Element)
			}
		} else if len(n.TypeArguments) == 1 {
			elem = LowerType(ctx, n.TypeArguments[0])
		}
		if len(n.Arguments) == 1 {
			size, ctx2 := LowerExpression(ctx, n.Arguments[0])
			return &csharpast.ArrayCreation{ElementType: elem, Size: size}, ctx2
		}
		elems, ctx2 := lowerArgumentList(ctx, n.Arguments)
		return &csharpast.ArrayCreation{ElementType: elem, Elements: elems}, ctx2
	}

	calleeType := LowerType(ctx, n.InferredType())
	args, ctx2 := lowerArgumentList(ctx, n.Arguments)
	return &csharpast.ObjectCreation{Type: calleeType, Arguments: args}, ctx2
}

func lowerBinaryExpression(ctx EmitterContext, n *ir.BinaryExpression) (csharpast.Expression, EmitterContext) {
	switch n.Operator {
	case ir.OpInstanceOf:
		left, ctx2 := LowerExpression(ctx, n.Left)
		typeName := "object"
		if id, ok := n.Right.(*ir.Identifier); ok {
			typeName = id.Name
		}
		return &csharpast.Is{Operand: left, Pattern: &csharpast.TypePattern{Type: &csharpast.IdentifierType{Name: typeName}}}, ctx2

	case ir.OpIn:
		left, ctx2 := LowerExpression(ctx, n.Left)
		right, ctx3 := LowerExpression(ctx2, n.Right)
		return &csharpast.Invocation{
			Callee: &csharpast.MemberAccess{
				Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".ObjectHelpers"},
				Name:     "HasProperty",
			},
			Arguments: []csharpast.Expression{right, left},
		}, ctx3

	default:
		op, ok := binaryOperatorText[n.Operator]
		if !ok {
			panicICE("TSNB022", "emitter: unknown binary operator %q", n.Operator)
		}
		left, ctx2 := LowerExpression(ctx, n.Left)
		right, ctx3 := LowerExpression(ctx2, n.Right)
		return &csharpast.Binary{Left: left, Right: right, Operator: op}, ctx3
	}
}

// lowerLogicalExpression lowers `&&`/`||` by recursively evaluating each
// operand in boolean context (spec.md §4.3, §4.5). The result expression's
// static C# type is `bool`; the frontend guarantees a LogicalExpression's
// inferred type is boolean (§9), so no further wrapping is needed here.
func lowerLogicalExpression(ctx EmitterContext, n *ir.LogicalExpression) (csharpast.Expression, EmitterContext) {
	left, ctx2 := LowerBooleanContext(ctx, n.Left)
	right, ctx3 := LowerBooleanContext(ctx2, n.Right)
	return &csharpast.Binary{Left: left, Right: right, Operator: string(n.Operator)}, ctx3
}

func lowerAssignmentExpression(ctx EmitterContext, n *ir.AssignmentExpression) (csharpast.Expression, EmitterContext) {
	if n.PatternTarget != nil {
		return LowerAssignmentDestructure(ctx, n.PatternTarget, n.Value)
	}
	target, ctx2 := LowerExpression(ctx, n.Target)
	value, ctx3 := LowerExpression(ctx2, n.Value)
	return &csharpast.Assignment{Target: target, Value: value, Operator: n.Operator}, ctx3
}

// lowerTemplateLiteral lowers a JS template string to an interpolated
// string (spec.md §4.3); the printer (pkg/csprinter) is responsible for
// wrapping any interpolated expression whose rendered text contains `:`.
func lowerTemplateLiteral(ctx EmitterContext, n *ir.TemplateLiteral) (csharpast.Expression, EmitterContext) {
	parts := make([]csharpast.InterpolatedPart, 0, len(n.Chunks))
	for _, c := range n.Chunks {
		if c.Expr == nil {
			parts = append(parts, csharpast.InterpolatedPart{Text: c.Text})
			continue
		}
		expr, ctx2 := LowerExpression(ctx, c.Expr)
		ctx = ctx2
		parts = append(parts, csharpast.InterpolatedPart{Expr: expr})
	}
	return &csharpast.InterpolatedString{Parts: parts}, ctx
}

// lowerObjectLiteral lowers `{ a, b: c }` to `new T { a = ..., b = ... }`
// against the frontend-supplied contextual type (spec.md §4.3). Method
// shorthand lowers to a delegate-valued initializer; the validator has
// already ensured it never references `this`/`arguments`/`super`.
func lowerObjectLiteral(ctx EmitterContext, n *ir.ObjectLiteral) (csharpast.Expression, EmitterContext) {
	t := LowerType(ctx, n.ContextType)
	members := make([]csharpast.ObjectInitMember, 0, len(n.Properties))
	for _, p := range n.Properties {
		value, ctx2 := LowerExpression(ctx, p.Value)
		ctx = ctx2
		members = append(members, csharpast.ObjectInitMember{Name: p.Key, Value: value})
	}
	return &csharpast.ObjectCreation{Type: t, Initializers: members}, ctx
}

// lowerArrayLiteral lowers `[a, b]` to `new T[] { a, b }`. An empty literal
// requires ContextType (enforced by the validator); a populated literal
// infers the element type from the first element when no contextual type is
// supplied.
func lowerArrayLiteral(ctx EmitterContext, n *ir.ArrayLiteral) (csharpast.Expression, EmitterContext) {
	var elemType csharpast.Type
	if n.ContextType != nil {
		if arr, ok := n.ContextType.(*ir.ArrayType); ok {
			elemType = LowerType(ctx, arr.Element)
		} else {
			elemType = LowerType(ctx, n.ContextType)
		}
	} else if len(n.Elements) > 0 {
		elemType = LowerType(ctx, n.Elements[0].InferredType())
	} else {
		elemType = &csharpast.PredefinedType{Name: csharpast.PredefObject}
	}
	elems, ctx2 := lowerArgumentList(ctx, n.Elements)
	return &csharpast.ArrayCreation{ElementType: elemType, Elements: elems}, ctx2
}

// lowerArrowFunction emits a lambda when the surrounding context can infer
// the delegate type, and an explicit `(Func<...>)`-cast lambda otherwise —
// a static context with no contextual annotation has nothing for the C#
// compiler to infer against (spec.md §4.3).
func lowerArrowFunction(ctx EmitterContext, n *ir.ArrowFunctionExpression) (csharpast.Expression, EmitterContext) {
	fnCtx := ctx.EnterFunction(n.ReturnType, n.IsAsync)
	params, prelude, fnCtx2 := lowerLambdaParams(fnCtx, n.Params)

	var lambda *csharpast.Lambda
	if n.ExpressionBody != nil && len(prelude) == 0 {
		body, fnCtx3 := LowerExpression(fnCtx2, n.ExpressionBody)
		lambda = &csharpast.Lambda{ExprBody: body, Params: params, IsAsync: n.IsAsync}
		_ = fnCtx3
	} else {
		block, fnCtx3 := lowerArrowBody(fnCtx2, n, prelude)
		lambda = &csharpast.Lambda{Block: block, Params: params, IsAsync: n.IsAsync}
		_ = fnCtx3
	}

	if needsDelegateReification(ctx, n.ReturnType, n.Params) {
		return &csharpast.Cast{Type: lowerDelegateType(ctx, n.ReturnType, n.Params, n.IsAsync), Operand: lambda}, ctx
	}
	return lambda, ctx
}

func lowerArrowBody(ctx EmitterContext, n *ir.ArrowFunctionExpression, prelude []csharpast.Statement) (*csharpast.Block, EmitterContext) {
	stmts := append([]csharpast.Statement{}, prelude...)
	if n.ExpressionBody != nil {
		expr, ctx2 := LowerExpression(ctx, n.ExpressionBody)
		ctx = ctx2
		if isVoidType(n.ReturnType) {
			stmts = append(stmts, &csharpast.ExpressionStatement{Expr: expr})
		} else {
			stmts = append(stmts, &csharpast.Return{Argument: expr})
		}
		return &csharpast.Block{Statements: stmts}, ctx
	}
	block, ctx2 := LowerBlock(ctx, n.Body)
	block.Statements = append(stmts, block.Statements...)
	return block, ctx2
}

// lowerFunctionExpression lowers a named/anonymous `function` expression.
// Generator function expressions route through the generator-lowering
// protocol (internal/emitter/generators.go); this is represented as an
// immediately-assignable local function wrapped in a lambda producing the
// generator wrapper, matching the declaration-level lowering in spirit.
func lowerFunctionExpression(ctx EmitterContext, n *ir.FunctionExpression) (csharpast.Expression, EmitterContext) {
	if n.IsGenerator {
		return lowerGeneratorExpression(ctx, n)
	}
	fnCtx := ctx.EnterFunction(n.ReturnType, n.IsAsync)
	params, prelude, fnCtx2 := lowerLambdaParams(fnCtx, n.Params)
	block, fnCtx3 := LowerBlock(fnCtx2, n.Body)
	block.Statements = append(append([]csharpast.Statement{}, prelude...), block.Statements...)
	_ = fnCtx3
	lambda := &csharpast.Lambda{Block: block, Params: params, IsAsync: n.IsAsync}
	if needsDelegateReification(ctx, n.ReturnType, n.Params) {
		return &csharpast.Cast{Type: lowerDelegateType(ctx, n.ReturnType, n.Params, n.IsAsync), Operand: lambda}, ctx
	}
	return lambda, ctx
}

// needsDelegateReification reports whether a lambda needs an explicit
// Func<>/Action<> cast to compile: a static context offers the C# compiler
// no contextual delegate type to infer against unless every parameter
// carries an explicit annotation (spec.md §4.3).
func needsDelegateReification(ctx EmitterContext, returnType ir.Type, params []ir.Param) bool {
	if !ctx.IsStatic {
		return false
	}
	for _, p := range params {
		if p.TypeAnnotation == nil {
			return true
		}
	}
	return false
}

func lowerDelegateType(ctx EmitterContext, returnType ir.Type, params []ir.Param, isAsync bool) csharpast.Type {
	paramTypes := make([]ir.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.TypeAnnotation
	}
	t := lowerFunctionType(ctx, &ir.FunctionType{ReturnType: returnType, Params: paramTypes})
	if !isAsync {
		return t
	}
	return wrapDelegateReturnInTask(t)
}

// wrapDelegateReturnInTask rewrites a reified Action<>/Func<> delegate type
// to reflect an async lambda's actual CLR return type: Action<...> becomes
// Func<..., Task> and Func<..., TRet> becomes Func<..., Task<TRet>>.
func wrapDelegateReturnInTask(t csharpast.Type) csharpast.Type {
	id, ok := t.(*csharpast.IdentifierType)
	if !ok {
		return t
	}
	task := csharpast.Type(&csharpast.IdentifierType{Name: "System.Threading.Tasks.Task"})
	if id.Name == "System.Action" {
		args := append(append([]csharpast.Type{}, id.TypeArguments...), task)
		return &csharpast.IdentifierType{Name: "System.Func", TypeArguments: args}
	}
	args := append([]csharpast.Type{}, id.TypeArguments...)
	last := len(args) - 1
	args[last] = &csharpast.IdentifierType{Name: "System.Threading.Tasks.Task", TypeArguments: []csharpast.Type{args[last]}}
	return &csharpast.IdentifierType{Name: "System.Func", TypeArguments: args}
}

// lowerLambdaParams lowers an arrow/function's parameter list into bare
// LambdaParam slots, injecting destructuring-prelude statements for any
// complex (array/object pattern) parameter per spec.md §4.4.
func lowerLambdaParams(ctx EmitterContext, params []ir.Param) ([]csharpast.LambdaParam, []csharpast.Statement, EmitterContext) {
	out := make([]csharpast.LambdaParam, 0, len(params))
	var prelude []csharpast.Statement
	for i, p := range params {
		name, stmts, ctx2 := lowerParamPattern(ctx, p, i)
		ctx = ctx2
		prelude = append(prelude, stmts...)
		var pt csharpast.Type
		if p.TypeAnnotation != nil {
			pt = LowerType(ctx, p.TypeAnnotation)
		}
		out = append(out, csharpast.LambdaParam{Type: pt, Name: name})
	}
	return out, prelude, ctx
}

func lowerTypeOf(ctx EmitterContext, n *ir.TypeOfExpression) (csharpast.Expression, EmitterContext) {
	operand, ctx2 := LowerExpression(ctx, n.Operand)
	return &csharpast.Invocation{
		Callee:    &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".TypeHelpers"}, Name: "TypeOf"},
		Arguments: []csharpast.Expression{operand},
	}, ctx2
}

func lowerYieldExpression(ctx EmitterContext, n *ir.YieldExpression) (csharpast.Expression, EmitterContext) {
	return lowerGeneratorYield(ctx, n)
}
