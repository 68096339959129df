package emitter

import (
	"math"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// integerLikeTypes are the non-floating numeric predefined types whose
// truthiness is a plain "!= 0" test (spec.md §4.5).
var integerLikeTypes = []csharpast.Predefined{
	csharpast.PredefSByte, csharpast.PredefByte,
	csharpast.PredefShort, csharpast.PredefUShort,
	csharpast.PredefInt, csharpast.PredefUInt,
	csharpast.PredefLong, csharpast.PredefULong,
	csharpast.PredefDecimal,
}

// LowerBooleanContext maps an IR expression used where JavaScript would
// apply ToBoolean truthiness to a valid, evaluation-preserving C# boolean
// condition, following the decision table in spec.md §4.5. The operand
// evaluates exactly once in the emitted text.
func LowerBooleanContext(ctx EmitterContext, e ir.Expression) (csharpast.Expression, EmitterContext) {
	if lit, ok := constantBoolOf(e); ok {
		return boolLiteral(lit), ctx
	}

	if alreadyBoolean(e) {
		return LowerExpression(ctx, e)
	}

	switch t := e.InferredType().(type) {
	case nil:
		return lowerRuntimeTruthiness(ctx, e)
	case *ir.PrimitiveType:
		if t.Name == ir.PrimAny || t.Name == ir.PrimUnknown {
			return lowerRuntimeTruthiness(ctx, e)
		}
		return lowerPrimitiveTruthiness(ctx, e, t.Name)
	case *ir.UnionType:
		return lowerUnionTruthiness(ctx, e, t)
	default:
		return lowerRuntimeTruthiness(ctx, e)
	}
}

// constantBoolOf constant-folds a literal operand's truthiness at lowering
// time (spec.md §4.5 rule 1).
func constantBoolOf(e ir.Expression) (bool, bool) {
	switch n := e.(type) {
	case *ir.BooleanLiteral:
		return n.Value, true
	case *ir.NumericLiteral:
		return n.Value != 0 && !math.IsNaN(n.Value), true
	case *ir.StringLiteral:
		return n.Value != "", true
	case *ir.NullLiteral:
		return false, true
	}
	return false, false
}

// alreadyBoolean reports whether e's inferred type is already `boolean`, or
// e is syntactically a comparison/instanceof/in/logical-not expression
// (spec.md §4.5 rule 2).
func alreadyBoolean(e ir.Expression) bool {
	if p, ok := e.InferredType().(*ir.PrimitiveType); ok && p.Name == ir.PrimBoolean {
		return true
	}
	switch n := e.(type) {
	case *ir.BinaryExpression:
		switch n.Operator {
		case ir.OpEq, ir.OpStrictEq, ir.OpNotEq, ir.OpStrictNotEq,
			ir.OpLt, ir.OpLte, ir.OpGt, ir.OpGte,
			ir.OpInstanceOf, ir.OpIn:
			return true
		}
	case *ir.UnaryExpression:
		return n.Operator == ir.UnaryNot
	}
	return false
}

func boolLiteral(v bool) csharpast.Expression {
	if v {
		return &csharpast.Literal{Text: "true"}
	}
	return &csharpast.Literal{Text: "false"}
}

func predefined(name csharpast.Predefined) csharpast.Type {
	return &csharpast.PredefinedType{Name: name}
}

func lowerPrimitiveTruthiness(ctx EmitterContext, e ir.Expression, p ir.PrimitiveName) (csharpast.Expression, EmitterContext) {
	operand, ctx := LowerExpression(ctx, e)
	switch p {
	case ir.PrimString:
		return stringTruthiness(operand), ctx
	case ir.PrimInt:
		return intTruthiness(operand), ctx
	case ir.PrimChar:
		return charTruthiness(operand), ctx
	case ir.PrimNumber:
		return numberTruthinessWithBinding(ctx, operand)
	case ir.PrimNull, ir.PrimUndefined:
		return boolLiteral(false), ctx
	default:
		return runtimeTruthinessSwitch(ctx, operand)
	}
}

func stringTruthiness(operand csharpast.Expression) csharpast.Expression {
	return &csharpast.PrefixUnary{
		Operator: "!",
		Operand: &csharpast.Invocation{
			Callee:    &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "string"}, Name: "IsNullOrEmpty"},
			Arguments: []csharpast.Expression{operand},
		},
	}
}

func intTruthiness(operand csharpast.Expression) csharpast.Expression {
	return &csharpast.Binary{Left: operand, Operator: "!=", Right: &csharpast.Literal{Text: "0"}}
}

func charTruthiness(operand csharpast.Expression) csharpast.Expression {
	return &csharpast.Binary{Left: operand, Operator: "!=", Right: &csharpast.Literal{Text: `'\0'`}}
}

// numberTruthinessWithBinding builds `(operand is double t && t != 0 &&
// !double.IsNaN(t))` for a statically-typed `number` operand (spec.md §4.5
// rule 6), binding operand to the pattern variable t so it is evaluated
// exactly once regardless of how complex the operand expression is.
func numberTruthinessWithBinding(ctx EmitterContext, operand csharpast.Expression) (csharpast.Expression, EmitterContext) {
	name, ctx := ctx.NextNumberTruthyTemp()
	ref := &csharpast.Identifier{Name: name}
	isExpr := &csharpast.Is{
		Operand: operand,
		Pattern: &csharpast.DeclarationPattern{Type: predefined(csharpast.PredefDouble), Designator: name},
	}
	nonZero := &csharpast.Binary{Left: ref, Operator: "!=", Right: &csharpast.Literal{Text: "0"}}
	notNaN := &csharpast.PrefixUnary{
		Operator: "!",
		Operand: &csharpast.Invocation{
			Callee:    &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "double"}, Name: "IsNaN"},
			Arguments: []csharpast.Expression{ref},
		},
	}
	chain := &csharpast.Binary{Left: &csharpast.Binary{Left: isExpr, Operator: "&&", Right: nonZero}, Operator: "&&", Right: notNaN}
	return &csharpast.Parenthesized{Inner: chain}, ctx
}

// numberTruthiness builds `(operand != 0 && !double.IsNaN(operand))`.
func numberTruthiness(operand csharpast.Expression) csharpast.Expression {
	nonZero := &csharpast.Binary{Left: operand, Operator: "!=", Right: &csharpast.Literal{Text: "0"}}
	notNaN := &csharpast.PrefixUnary{
		Operator: "!",
		Operand: &csharpast.Invocation{
			Callee:    &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: "double"}, Name: "IsNaN"},
			Arguments: []csharpast.Expression{operand},
		},
	}
	return &csharpast.Parenthesized{Inner: &csharpast.Binary{Left: nonZero, Operator: "&&", Right: notNaN}}
}

func lowerRuntimeTruthiness(ctx EmitterContext, e ir.Expression) (csharpast.Expression, EmitterContext) {
	operand, ctx := LowerExpression(ctx, e)
	return runtimeTruthinessSwitch(ctx, operand)
}

// runtimeTruthinessSwitch builds the `operand switch { ... }` runtime
// truthiness dispatch of spec.md §4.5 for an operand whose static type gives
// no compile-time answer. Hoisting the discriminant to a local ahead of this
// expression, when operand is non-trivial, is the responsibility of the
// enclosing statement lowering; the switch expression itself evaluates
// operand exactly once per C# semantics.
func runtimeTruthinessSwitch(ctx EmitterContext, operand csharpast.Expression) (csharpast.Expression, EmitterContext) {
	name, ctx := ctx.NextTruthyTemp()

	declArm := func(predef csharpast.Predefined, truthy func(csharpast.Expression) csharpast.Expression) csharpast.SwitchArm {
		ref := &csharpast.Identifier{Name: name}
		return csharpast.SwitchArm{
			Pattern: &csharpast.DeclarationPattern{Type: predefined(predef), Designator: name},
			Result:  truthy(ref),
		}
	}

	arms := []csharpast.SwitchArm{
		declArm(csharpast.PredefBool, func(ref csharpast.Expression) csharpast.Expression { return ref }),
		declArm(csharpast.PredefString, stringTruthiness),
		declArm(csharpast.PredefChar, charTruthiness),
		declArm(csharpast.PredefDouble, numberTruthiness),
		declArm(csharpast.PredefFloat, numberTruthiness),
	}
	for _, t := range integerLikeTypes {
		arms = append(arms, declArm(t, intTruthiness))
	}
	arms = append(arms, csharpast.SwitchArm{Pattern: csharpast.DiscardPattern{}, Result: boolLiteral(true)})

	return &csharpast.SwitchExpression{Discriminant: operand, Arms: arms}, ctx
}

// lowerUnionTruthiness implements spec.md §4.5's union-type row, reusing the
// arm-splitting rule of lowerUnion (internal/emitter/types.go).
func lowerUnionTruthiness(ctx EmitterContext, e ir.Expression, u *ir.UnionType) (csharpast.Expression, EmitterContext) {
	var nonNullish []ir.Type
	nullishPresent := false
	for _, a := range u.Arms {
		if ir.IsNullish(a) {
			nullishPresent = true
			continue
		}
		nonNullish = append(nonNullish, a)
	}

	if base, ok := literalArmsBasePrimitive(nonNullish); ok {
		if nullishPresent {
			operand, ctx2 := LowerExpression(ctx, e)
			name, ctx3 := ctx2.NextTruthyTemp()
			isExpr := &csharpast.Is{
				Operand: operand,
				Pattern: &csharpast.DeclarationPattern{Type: lowerPrimitive(base), Designator: name},
			}
			inner, ctx4 := lowerVariantTruthiness(ctx3, &csharpast.Identifier{Name: name}, &ir.PrimitiveType{Name: base})
			return &csharpast.Binary{Left: isExpr, Operator: "&&", Right: inner}, ctx4
		}
		return lowerPrimitiveTruthiness(ctx, e, base)
	}

	switch {
	case len(nonNullish) == 0:
		// union is entirely null/undefined: always falsy.
		return boolLiteral(false), ctx

	case len(nonNullish) == 1 && !nullishPresent:
		return lowerPrimitiveOrRuntimeTruthiness(ctx, e, nonNullish[0])

	case len(nonNullish) == 1:
		operand, ctx2 := LowerExpression(ctx, e)
		name, ctx3 := ctx2.NextTruthyTemp()
		isExpr := &csharpast.Is{
			Operand: operand,
			Pattern: &csharpast.DeclarationPattern{Type: LowerType(ctx3, nonNullish[0]), Designator: name},
		}
		inner, ctx4 := lowerVariantTruthiness(ctx3, &csharpast.Identifier{Name: name}, nonNullish[0])
		return &csharpast.Binary{Left: isExpr, Operator: "&&", Right: inner}, ctx4

	case len(nonNullish) <= 8:
		operand, ctx2 := LowerExpression(ctx, e)
		var chain csharpast.Expression = boolLiteral(false)
		for i := len(nonNullish); i >= 1; i-- {
			isN := &csharpast.Invocation{Callee: &csharpast.MemberAccess{Receiver: operand, Name: unionAccessorName("Is", i)}}
			asN := &csharpast.Invocation{Callee: &csharpast.MemberAccess{Receiver: operand, Name: unionAccessorName("As", i)}}
			var variantTruthy csharpast.Expression
			variantTruthy, ctx2 = lowerVariantTruthiness(ctx2, asN, nonNullish[i-1])
			chain = &csharpast.Conditional{Test: isN, WhenTrue: variantTruthy, WhenFalse: chain}
		}
		if nullishPresent {
			notNull := &csharpast.Binary{Left: operand, Operator: "!=", Right: &csharpast.Literal{Text: "null"}}
			return &csharpast.Binary{Left: notNull, Operator: "&&", Right: chain}, ctx2
		}
		return chain, ctx2

	default:
		return lowerRuntimeTruthiness(ctx, e)
	}
}

// lowerPrimitiveOrRuntimeTruthiness lowers e's truthiness given a single
// known non-nullish static type t, reusing the primitive table where t is a
// primitive and falling back to the runtime switch otherwise.
func lowerPrimitiveOrRuntimeTruthiness(ctx EmitterContext, e ir.Expression, t ir.Type) (csharpast.Expression, EmitterContext) {
	if p, ok := t.(*ir.PrimitiveType); ok {
		return lowerPrimitiveTruthiness(ctx, e, p.Name)
	}
	return lowerRuntimeTruthiness(ctx, e)
}

func unionAccessorName(prefix string, n int) string {
	digits := [...]string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}
	return prefix + digits[n]
}

// lowerVariantTruthiness produces the truthiness expression for value, a
// C#-level expression already known to hold the union arm t.
func lowerVariantTruthiness(ctx EmitterContext, value csharpast.Expression, t ir.Type) (csharpast.Expression, EmitterContext) {
	if p, ok := t.(*ir.PrimitiveType); ok {
		switch p.Name {
		case ir.PrimString:
			return stringTruthiness(value), ctx
		case ir.PrimInt:
			return intTruthiness(value), ctx
		case ir.PrimChar:
			return charTruthiness(value), ctx
		case ir.PrimNumber:
			return numberTruthiness(value), ctx
		case ir.PrimBoolean:
			return value, ctx
		}
	}
	return boolLiteral(true), ctx
}
