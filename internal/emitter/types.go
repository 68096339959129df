package emitter

import (
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

const unionRuntimeType = "global::Tsonic.Runtime.Union"

// clrPrimitiveCoercion maps the CLR primitive type names the frontend may
// resolve a reference to back onto the IR primitive they represent
// (spec.md §4.2: "coerced to the IR primitive before further lowering, to
// prevent nullability/boxing miscompiles").
var clrPrimitiveCoercion = map[string]ir.PrimitiveName{
	"System.Boolean": ir.PrimBoolean,
	"System.Int32":   ir.PrimInt,
	"System.Double":  ir.PrimNumber,
	"System.Char":    ir.PrimChar,
	"System.String":  ir.PrimString,
}

// LowerType translates an IR type into a Backend AST type.
func LowerType(ctx EmitterContext, t ir.Type) csharpast.Type {
	if t == nil {
		return &csharpast.PredefinedType{Name: csharpast.PredefObject}
	}

	if ref, ok := t.(*ir.ReferenceType); ok {
		if ref.ResolvedClrType != nil {
			if prim, ok := clrPrimitiveCoercion[ref.ResolvedClrType.DeclaringType]; ok {
				return LowerType(ctx, &ir.PrimitiveType{Name: prim})
			}
		}
	}

	switch n := t.(type) {
	case *ir.PrimitiveType:
		return lowerPrimitive(n.Name)

	case *ir.LiteralType:
		return lowerPrimitive(n.Base)

	case *ir.ReferenceType:
		resolved, args := resolveAliasChain(ctx, n.Name, n.TypeArguments)
		if resolved != nil {
			return LowerType(ctx, resolved)
		}
		lowered := make([]csharpast.Type, len(args))
		for i, a := range args {
			lowered[i] = LowerType(ctx, a)
		}
		return &csharpast.IdentifierType{Name: n.Name, TypeArguments: lowered}

	case *ir.UnionType:
		return lowerUnion(ctx, n)

	case *ir.ArrayType:
		return &csharpast.ArrayType{Element: LowerType(ctx, n.Element), Rank: 1}

	case *ir.DictionaryType:
		return &csharpast.IdentifierType{
			Name: "System.Collections.Generic.Dictionary",
			TypeArguments: []csharpast.Type{
				LowerType(ctx, n.Key),
				LowerType(ctx, n.Value),
			},
		}

	case *ir.FunctionType:
		return lowerFunctionType(ctx, n)

	case *ir.TypeParameterType:
		name := n.Name
		if mapped, ok := ctx.TypeParameterNameMap[n.Name]; ok {
			name = mapped
		}
		return &csharpast.IdentifierType{Name: name}

	case *ir.TupleType:
		elements := make([]csharpast.TupleElement, len(n.Elements))
		for i, el := range n.Elements {
			name := ""
			if i < len(n.ElementNames) {
				name = n.ElementNames[i]
			}
			elements[i] = csharpast.TupleElement{Type: LowerType(ctx, el), Name: name}
		}
		return &csharpast.TupleType{Elements: elements}

	default:
		panicICE("TSNB010", "emitter: unknown IR type kind %q", t.Kind())
		return nil
	}
}

func lowerPrimitive(name ir.PrimitiveName) csharpast.Type {
	switch name {
	case ir.PrimBoolean:
		return &csharpast.PredefinedType{Name: csharpast.PredefBool}
	case ir.PrimNumber:
		return &csharpast.PredefinedType{Name: csharpast.PredefDouble}
	case ir.PrimInt:
		return &csharpast.PredefinedType{Name: csharpast.PredefInt}
	case ir.PrimString:
		return &csharpast.PredefinedType{Name: csharpast.PredefString}
	case ir.PrimChar:
		return &csharpast.PredefinedType{Name: csharpast.PredefChar}
	case ir.PrimVoid:
		return &csharpast.PredefinedType{Name: csharpast.PredefVoid}
	case ir.PrimNull, ir.PrimUndefined:
		return &csharpast.NullableType{Element: &csharpast.PredefinedType{Name: csharpast.PredefObject}}
	case ir.PrimAny, ir.PrimUnknown:
		return &csharpast.PredefinedType{Name: csharpast.PredefObject}
	default:
		panicICE("TSNB011", "emitter: unknown primitive type %q", name)
		return nil
	}
}

// resolveAliasChain follows localTypes[name].type transitively, detecting
// cycles via a visited set, substituting typeArgs into the alias's own
// type parameters when the alias is generic. It returns (nil, typeArgs)
// when name does not resolve to an alias (it is a class/interface/enum or
// unknown), in which case the caller keeps treating it as a plain
// identifier reference.
func resolveAliasChain(ctx EmitterContext, name string, typeArgs []ir.Type) (ir.Type, []ir.Type) {
	visited := map[string]bool{}
	cur := name
	curArgs := typeArgs
	for {
		info, ok := lookupLocalType(ctx, cur)
		if !ok || info.Kind != LocalTypeAlias {
			return nil, curArgs
		}
		if visited[cur] {
			panicICE("TSNB012", "emitter: cyclic type alias at %q", cur)
		}
		visited[cur] = true
		aliased := substituteTypeParams(info.AliasedType, info.TypeParameters, curArgs)
		ref, ok := aliased.(*ir.ReferenceType)
		if !ok {
			return aliased, nil
		}
		if next, ok := lookupLocalType(ctx, ref.Name); !ok || next.Kind != LocalTypeAlias {
			return ref, nil
		}
		cur = ref.Name
		curArgs = ref.TypeArguments
	}
}

// lookupLocalType consults ctx.LocalTypes first, then every moduleMap
// entry's LocalTypes table — the Open Question resolution for anonymous
// types synthesized under `__tsonic_anonymous_types` (spec.md §9).
func lookupLocalType(ctx EmitterContext, name string) (*LocalTypeInfo, bool) {
	if info, ok := ctx.LocalTypes[name]; ok {
		return info, true
	}
	if ctx.Options == nil {
		return nil, false
	}
	for _, entry := range ctx.Options.ModuleMap {
		if info, ok := entry.LocalTypes[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// substituteTypeParams performs a shallow, top-level substitution of an
// alias's declared type parameters with the supplied arguments. Only
// ReferenceType/TypeParameterType nodes are rewritten; deeper recursion
// happens naturally because resolveAliasChain re-enters LowerType on the
// result.
func substituteTypeParams(t ir.Type, params []string, args []ir.Type) ir.Type {
	if len(params) == 0 || len(args) == 0 {
		return t
	}
	bind := map[string]ir.Type{}
	for i, p := range params {
		if i < len(args) {
			bind[p] = args[i]
		}
	}
	if tp, ok := t.(*ir.TypeParameterType); ok {
		if sub, ok := bind[tp.Name]; ok {
			return sub
		}
	}
	return t
}

func lowerFunctionType(ctx EmitterContext, n *ir.FunctionType) csharpast.Type {
	params := make([]csharpast.Type, len(n.Params))
	for i, p := range n.Params {
		params[i] = LowerType(ctx, p)
	}
	if n.ReturnType == nil || isVoidType(n.ReturnType) {
		if len(params) == 0 {
			return &csharpast.IdentifierType{Name: "System.Action"}
		}
		return &csharpast.IdentifierType{Name: "System.Action", TypeArguments: params}
	}
	args := append(params, LowerType(ctx, n.ReturnType))
	return &csharpast.IdentifierType{Name: "System.Func", TypeArguments: args}
}

func isVoidType(t ir.Type) bool {
	p, ok := t.(*ir.PrimitiveType)
	return ok && p.Name == ir.PrimVoid
}

// literalArmsBasePrimitive reports whether every arm in nonNullish is an
// *ir.LiteralType sharing one PrimitiveName, returning that name (spec.md
// §4.2: "if arms are literal types sharing one base primitive, emit the base
// primitive"). An empty slice never collapses.
func literalArmsBasePrimitive(nonNullish []ir.Type) (ir.PrimitiveName, bool) {
	if len(nonNullish) == 0 {
		return "", false
	}
	var base ir.PrimitiveName
	for i, arm := range nonNullish {
		lit, ok := arm.(*ir.LiteralType)
		if !ok {
			return "", false
		}
		if i == 0 {
			base = lit.Base
		} else if lit.Base != base {
			return "", false
		}
	}
	return base, true
}

// lowerUnion implements the union-lowering decision table of spec.md §4.2.
func lowerUnion(ctx EmitterContext, u *ir.UnionType) csharpast.Type {
	var nonNullish []ir.Type
	nullishPresent := false
	for _, arm := range u.Arms {
		if ir.IsNullish(arm) {
			nullishPresent = true
			continue
		}
		nonNullish = append(nonNullish, arm)
	}

	if base, ok := literalArmsBasePrimitive(nonNullish); ok {
		lowered := lowerPrimitive(base)
		if nullishPresent {
			return wrapNullable(lowered)
		}
		return lowered
	}

	switch {
	case len(nonNullish) == 0:
		return &csharpast.NullableType{Element: &csharpast.PredefinedType{Name: csharpast.PredefObject}}

	case len(nonNullish) == 1:
		lowered := LowerType(ctx, nonNullish[0])
		if nullishPresent {
			return wrapNullable(lowered)
		}
		return lowered

	case len(nonNullish) <= 8:
		args := make([]csharpast.Type, len(nonNullish))
		for i, arm := range nonNullish {
			args[i] = LowerType(ctx, arm)
		}
		unionT := csharpast.Type(&csharpast.IdentifierType{Name: unionRuntimeType, TypeArguments: args})
		if nullishPresent {
			return wrapNullable(unionT)
		}
		return unionT

	default:
		return &csharpast.PredefinedType{Name: csharpast.PredefObject}
	}
}

// wrapNullable wraps t in a NullableType unless t already is one. Reference
// types, `object` included, get the explicit `?` suffix too (nullable
// reference annotations are part of the supported subset).
func wrapNullable(t csharpast.Type) csharpast.Type {
	if n, ok := t.(*csharpast.NullableType); ok {
		return n
	}
	return &csharpast.NullableType{Element: t}
}
