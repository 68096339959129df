package emitter

import (
	"strconv"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// LowerLocalDestructure lowers a local-declaration pattern initialized by an
// already-lowered rhs expression into the statement sequence spec.md §4.4
// describes for array/object patterns. declType is the inferred type of the
// right-hand side, used to resolve element/property types; it may be nil, in
// which case declarations fall back to `var`.
func LowerLocalDestructure(ctx EmitterContext, pattern ir.Pattern, declType ir.Type, rhs csharpast.Expression) ([]csharpast.Statement, EmitterContext) {
	switch p := pattern.(type) {
	case *ir.IdentifierPattern:
		name, ctx2 := ctx.AllocateLocalName(p.Name)
		var t csharpast.Type = csharpast.VarType{}
		if declType != nil {
			t = LowerType(ctx2, declType)
		}
		return []csharpast.Statement{&csharpast.LocalDeclaration{Type: t, Name: name, Init: rhs}}, ctx2

	case *ir.ArrayPattern:
		return lowerArrayPatternDeclare(ctx, p, declType, rhs)

	case *ir.ObjectPattern:
		return lowerObjectPatternDeclare(ctx, p, declType, rhs)

	default:
		panicICE("TSNB030", "emitter: unknown IR pattern kind %q", pattern.Kind())
		return nil, ctx
	}
}

func arrayElementType(declType ir.Type) ir.Type {
	if arr, ok := declType.(*ir.ArrayType); ok {
		return arr.Element
	}
	return nil
}

// lowerArrayPatternDeclare implements spec.md §4.4's array-pattern local
// declaration rule.
func lowerArrayPatternDeclare(ctx EmitterContext, p *ir.ArrayPattern, declType ir.Type, rhs csharpast.Expression) ([]csharpast.Statement, EmitterContext) {
	tempName, ctx2 := ctx.NextArrayTemp()
	stmts := []csharpast.Statement{
		&csharpast.LocalDeclaration{Type: csharpast.VarType{}, Name: tempName, Init: rhs},
	}
	elemType := arrayElementType(declType)
	var elemCS csharpast.Type = csharpast.VarType{}
	if elemType != nil {
		elemCS = LowerType(ctx2, elemType)
	}

	index := 0
	for _, el := range p.Elements {
		if el.Pattern == nil {
			index++
			continue
		}
		access := csharpast.Expression(&csharpast.ElementAccess{
			Receiver: &csharpast.Identifier{Name: tempName},
			Index:    &csharpast.Literal{Text: strconv.Itoa(index)},
		})
		if el.Default != nil {
			def, ctx3 := LowerExpression(ctx2, el.Default)
			ctx2 = ctx3
			access = &csharpast.Binary{Left: access, Operator: "??", Right: def}
		}
		if id, ok := el.Pattern.(*ir.IdentifierPattern); ok {
			name, ctx3 := ctx2.AllocateLocalName(id.Name)
			ctx2 = ctx3
			stmts = append(stmts, &csharpast.LocalDeclaration{Type: elemCS, Name: name, Init: access})
		} else {
			nested, ctx3 := LowerLocalDestructure(ctx2, el.Pattern, elemType, access)
			ctx2 = ctx3
			stmts = append(stmts, nested...)
		}
		index++
	}

	if p.Rest != nil {
		restID, ok := p.Rest.(*ir.IdentifierPattern)
		if !ok {
			panicICE("TSNB031", "emitter: array pattern rest must be an identifier")
		}
		name, ctx3 := ctx2.AllocateLocalName(restID.Name)
		ctx2 = ctx3
		restType := csharpast.Type(&csharpast.ArrayType{Element: &csharpast.PredefinedType{Name: csharpast.PredefObject}, Rank: 1})
		if elemType != nil {
			restType = &csharpast.ArrayType{Element: LowerType(ctx2, elemType), Rank: 1}
		}
		slice := &csharpast.Invocation{
			Callee: &csharpast.MemberAccess{
				Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".ArrayHelpers"},
				Name:     "Slice",
			},
			Arguments: []csharpast.Expression{
				&csharpast.Identifier{Name: tempName},
				&csharpast.Literal{Text: strconv.Itoa(index)},
			},
		}
		stmts = append(stmts, &csharpast.LocalDeclaration{Type: restType, Name: name, Init: slice})
	}

	return stmts, ctx2
}

// lowerObjectPatternDeclare implements spec.md §4.4's object-pattern local
// declaration rule.
func lowerObjectPatternDeclare(ctx EmitterContext, p *ir.ObjectPattern, declType ir.Type, rhs csharpast.Expression) ([]csharpast.Statement, EmitterContext) {
	tempName, ctx2 := ctx.NextObjectTemp()
	stmts := []csharpast.Statement{
		&csharpast.LocalDeclaration{Type: csharpast.VarType{}, Name: tempName, Init: rhs},
	}

	memberType := func(key string) ir.Type {
		info, ok := lookupLocalType(ctx2, refName(declType))
		if !ok || info.Members == nil {
			return nil
		}
		return info.Members[key]
	}

	for _, prop := range p.Properties {
		access := csharpast.Expression(&csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: tempName}, Name: prop.Key})
		if prop.Default != nil {
			def, ctx3 := LowerExpression(ctx2, prop.Default)
			ctx2 = ctx3
			access = &csharpast.Binary{Left: access, Operator: "??", Right: def}
		}
		propType := memberType(prop.Key)
		if id, ok := prop.Pattern.(*ir.IdentifierPattern); ok {
			name, ctx3 := ctx2.AllocateLocalName(id.Name)
			ctx2 = ctx3
			var t csharpast.Type = csharpast.VarType{}
			if propType != nil {
				t = LowerType(ctx2, propType)
			}
			stmts = append(stmts, &csharpast.LocalDeclaration{Type: t, Name: name, Init: access})
		} else {
			nested, ctx3 := LowerLocalDestructure(ctx2, prop.Pattern, propType, access)
			ctx2 = ctx3
			stmts = append(stmts, nested...)
		}
	}

	if p.Rest != nil {
		restID, ok := p.Rest.(*ir.IdentifierPattern)
		if !ok {
			panicICE("TSNB032", "emitter: object pattern rest must be an identifier")
		}
		if p.RestSynthTypeName == "" {
			panicICE("TSNB033", "emitter: object pattern rest missing RestSynthTypeName")
		}
		name, ctx3 := ctx2.AllocateLocalName(restID.Name)
		ctx2 = ctx3
		members := make([]csharpast.ObjectInitMember, len(p.RestShapeMembers))
		for i, m := range p.RestShapeMembers {
			members[i] = csharpast.ObjectInitMember{
				Name:  m,
				Value: &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: tempName}, Name: m},
			}
		}
		creation := &csharpast.ObjectCreation{Type: &csharpast.IdentifierType{Name: p.RestSynthTypeName}, Initializers: members}
		stmts = append(stmts, &csharpast.LocalDeclaration{Type: &csharpast.IdentifierType{Name: p.RestSynthTypeName}, Name: name, Init: creation})
	}

	return stmts, ctx2
}

func refName(t ir.Type) string {
	if r, ok := t.(*ir.ReferenceType); ok {
		return r.Name
	}
	return ""
}

// LowerAssignmentDestructure implements the assignment-destructuring
// expression form of spec.md §4.4: `((Func<T>)(() => { ... }))()`.
func LowerAssignmentDestructure(ctx EmitterContext, pattern ir.Pattern, value ir.Expression) (csharpast.Expression, EmitterContext) {
	rhs, ctx2 := LowerExpression(ctx, value)
	rhsType := value.InferredType()
	bodyCtx := ctx2.EnterFunction(rhsType, false)
	name, bodyCtx2 := bodyCtx.NextAssignTemp()

	rhsT := csharpast.Type(csharpast.VarType{})
	if rhsType != nil {
		rhsT = LowerType(bodyCtx2, rhsType)
	}
	decl := &csharpast.LocalDeclaration{Type: rhsT, Name: name, Init: rhs}

	destructure, bodyCtx3 := LowerLocalDestructure(bodyCtx2, pattern, rhsType, &csharpast.Identifier{Name: name})

	ret := &csharpast.Return{Argument: &csharpast.Identifier{Name: name}}
	block := &csharpast.Block{Statements: append(append([]csharpast.Statement{decl}, destructure...), ret)}
	_ = bodyCtx3

	lambda := &csharpast.Lambda{Block: block}
	funcType := csharpast.Type(&csharpast.IdentifierType{Name: "System.Func", TypeArguments: []csharpast.Type{rhsT}})
	cast := &csharpast.Cast{Type: funcType, Operand: lambda}
	return &csharpast.Invocation{Callee: &csharpast.Parenthesized{Inner: cast}}, ctx2
}

// LowerForOfDestructure implements spec.md §4.4's for-of complex-pattern
// rule: iterate into a synthetic `__item` temp, then expand the
// destructuring statements as the first statements of the loop body.
func LowerForOfDestructure(ctx EmitterContext, pattern ir.Pattern, elementType ir.Type) (string, []csharpast.Statement, EmitterContext) {
	tempName, ctx2 := ctx.NextItemTemp()
	stmts, ctx3 := LowerLocalDestructure(ctx2, pattern, elementType, &csharpast.Identifier{Name: tempName})
	return tempName, stmts, ctx3
}

// lowerParamPattern lowers one function/method/arrow/constructor parameter.
// A simple identifier parameter keeps its (collision-resolved) name; a
// complex pattern is given the synthetic name `__param{i}` in the signature
// and its destructuring statements are returned to be injected as the first
// statements of the body (spec.md §4.4).
func lowerParamPattern(ctx EmitterContext, p ir.Param, index int) (string, []csharpast.Statement, EmitterContext) {
	if id, ok := p.Pattern.(*ir.IdentifierPattern); ok {
		name, ctx2 := ctx.AllocateLocalName(id.Name)
		return name, nil, ctx2
	}
	name := ParamTempName(index)
	var paramType ir.Type
	if p.TypeAnnotation != nil {
		paramType = p.TypeAnnotation
	}
	stmts, ctx2 := LowerLocalDestructure(ctx, p.Pattern, paramType, &csharpast.Identifier{Name: name})
	return name, stmts, ctx2
}

