package ir

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeModule decodes one frontend-emitted IR module from its wire-format
// JSON. The frontend's wire format is a closed tagged-variant tree keyed by
// a "kind" discriminator on every node; gjson is used to peek that
// discriminator before committing to a concrete Go struct, which is the
// natural way to decode a tagged-variant tree without reflection-heavy
// polymorphic json.Unmarshal plumbing (see DESIGN.md).
func DecodeModule(data []byte) (*Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("ir: invalid JSON module document")
	}
	root := gjson.ParseBytes(data)

	m := &Module{
		FilePath:          root.Get("filePath").String(),
		Namespace:         root.Get("namespace").String(),
		ClassName:         root.Get("className").String(),
		IsStaticContainer: root.Get("isStaticContainer").Bool(),
	}
	for _, exp := range root.Get("exports").Array() {
		m.Exports = append(m.Exports, exp.String())
	}

	for _, impRaw := range root.Get("imports").Array() {
		imp, err := decodeImport(impRaw)
		if err != nil {
			return nil, fmt.Errorf("ir: module %s: %w", m.FilePath, err)
		}
		m.Imports = append(m.Imports, imp)
	}

	for i, stmtRaw := range root.Get("body").Array() {
		stmt, err := DecodeStatement(stmtRaw)
		if err != nil {
			return nil, fmt.Errorf("ir: module %s: body[%d]: %w", m.FilePath, i, err)
		}
		m.Body = append(m.Body, stmt)
	}

	return m, nil
}

func decodeImport(v gjson.Result) (*ImportDeclaration, error) {
	imp := &ImportDeclaration{
		Source:           v.Get("source").String(),
		ResolvedNamespace: v.Get("resolvedNamespace").String(),
		IsLocal:          v.Get("isLocal").Bool(),
		IsClr:            v.Get("isClr").Bool(),
	}
	for _, s := range v.Get("specifiers").Array() {
		spec := ImportSpecifier{
			Imported: s.Get("imported").String(),
			Local:    s.Get("local").String(),
		}
		if clr := s.Get("clrRef"); clr.Exists() {
			spec.ClrRef = &ClrTypeRef{
				DeclaringType:         clr.Get("declaringType").String(),
				DeclaringAssemblyName: clr.Get("declaringAssemblyName").String(),
				MemberName:            clr.Get("memberName").String(),
			}
		}
		imp.Specifiers = append(imp.Specifiers, spec)
	}
	return imp, nil
}

func decodePosition(v gjson.Result) Position {
	p := v.Get("pos")
	return Position{
		File:   p.Get("file").String(),
		Line:   int(p.Get("line").Int()),
		Column: int(p.Get("column").Int()),
	}
}

// DecodeType decodes one IR type node.
func DecodeType(v gjson.Result) (Type, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	switch Kind(v.Get("kind").String()) {
	case KindPrimitiveType:
		return &PrimitiveType{Name: PrimitiveName(v.Get("name").String())}, nil
	case KindReferenceType:
		rt := &ReferenceType{Name: v.Get("name").String()}
		if clr := v.Get("resolvedClrType"); clr.Exists() {
			rt.ResolvedClrType = &ClrTypeRef{
				DeclaringType:         clr.Get("declaringType").String(),
				DeclaringAssemblyName: clr.Get("declaringAssemblyName").String(),
				MemberName:            clr.Get("memberName").String(),
			}
		}
		for _, ta := range v.Get("typeArguments").Array() {
			t, err := DecodeType(ta)
			if err != nil {
				return nil, err
			}
			rt.TypeArguments = append(rt.TypeArguments, t)
		}
		return rt, nil
	case KindUnionType:
		ut := &UnionType{}
		for _, a := range v.Get("arms").Array() {
			t, err := DecodeType(a)
			if err != nil {
				return nil, err
			}
			ut.Arms = append(ut.Arms, t)
		}
		return ut, nil
	case KindArrayType:
		el, err := DecodeType(v.Get("element"))
		if err != nil {
			return nil, err
		}
		return &ArrayType{Element: el}, nil
	case KindDictionaryType:
		key, err := DecodeType(v.Get("key"))
		if err != nil {
			return nil, err
		}
		val, err := DecodeType(v.Get("value"))
		if err != nil {
			return nil, err
		}
		return &DictionaryType{Key: key, Value: val}, nil
	case KindFunctionType:
		ft := &FunctionType{}
		ret, err := DecodeType(v.Get("returnType"))
		if err != nil {
			return nil, err
		}
		ft.ReturnType = ret
		for _, p := range v.Get("params").Array() {
			t, err := DecodeType(p)
			if err != nil {
				return nil, err
			}
			ft.Params = append(ft.Params, t)
		}
		return ft, nil
	case KindTypeParameterType:
		return &TypeParameterType{Name: v.Get("name").String()}, nil
	case KindLiteralType:
		return &LiteralType{Base: PrimitiveName(v.Get("base").String()), Raw: v.Get("raw").String()}, nil
	case KindTupleType:
		tt := &TupleType{}
		for _, n := range v.Get("elementNames").Array() {
			tt.ElementNames = append(tt.ElementNames, n.String())
		}
		for _, e := range v.Get("elements").Array() {
			t, err := DecodeType(e)
			if err != nil {
				return nil, err
			}
			tt.Elements = append(tt.Elements, t)
		}
		return tt, nil
	default:
		return nil, fmt.Errorf("ir: unknown type kind %q", v.Get("kind").String())
	}
}

func decodeInferredType(v gjson.Result) (Type, error) {
	return DecodeType(v.Get("inferredType"))
}

// DecodeExpression decodes one IR expression node.
func DecodeExpression(v gjson.Result) (Expression, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	base := exprBase{Pos: decodePosition(v)}
	typ, err := decodeInferredType(v)
	if err != nil {
		return nil, err
	}
	base.Type = typ

	kind := Kind(v.Get("kind").String())
	switch kind {
	case KindNumericLiteral:
		return &NumericLiteral{exprBase: base, Raw: v.Get("raw").String(), Value: v.Get("value").Float()}, nil
	case KindStringLiteral:
		return &StringLiteral{exprBase: base, Value: v.Get("value").String()}, nil
	case KindBooleanLiteral:
		return &BooleanLiteral{exprBase: base, Value: v.Get("value").Bool()}, nil
	case KindNullLiteral:
		return &NullLiteral{exprBase: base, IsUndefined: v.Get("isUndefined").Bool()}, nil
	case KindIdentifier:
		return &Identifier{exprBase: base, Name: v.Get("name").String()}, nil
	case KindThisExpression:
		return &ThisExpression{exprBase: base}, nil
	case KindMemberAccess:
		obj, err := DecodeExpression(v.Get("object"))
		if err != nil {
			return nil, err
		}
		return &MemberAccess{exprBase: base, Object: obj, Property: v.Get("property").String(), Optional: v.Get("optional").Bool()}, nil
	case KindElementAccess:
		obj, err := DecodeExpression(v.Get("object"))
		if err != nil {
			return nil, err
		}
		idx, err := DecodeExpression(v.Get("index"))
		if err != nil {
			return nil, err
		}
		return &ElementAccess{exprBase: base, Object: obj, Index: idx, Optional: v.Get("optional").Bool()}, nil
	case KindCallExpression:
		callee, err := DecodeExpression(v.Get("callee"))
		if err != nil {
			return nil, err
		}
		ce := &CallExpression{exprBase: base, Callee: callee, Optional: v.Get("optional").Bool()}
		for _, a := range v.Get("arguments").Array() {
			arg, err := DecodeExpression(a)
			if err != nil {
				return nil, err
			}
			ce.Arguments = append(ce.Arguments, arg)
		}
		for _, ta := range v.Get("typeArguments").Array() {
			t, err := DecodeType(ta)
			if err != nil {
				return nil, err
			}
			ce.TypeArguments = append(ce.TypeArguments, t)
		}
		return ce, nil
	case KindNewExpression:
		callee, err := DecodeExpression(v.Get("callee"))
		if err != nil {
			return nil, err
		}
		ne := &NewExpression{exprBase: base, Callee: callee, CalleeName: v.Get("calleeName").String()}
		for _, a := range v.Get("arguments").Array() {
			arg, err := DecodeExpression(a)
			if err != nil {
				return nil, err
			}
			ne.Arguments = append(ne.Arguments, arg)
		}
		for _, ta := range v.Get("typeArguments").Array() {
			t, err := DecodeType(ta)
			if err != nil {
				return nil, err
			}
			ne.TypeArguments = append(ne.TypeArguments, t)
		}
		return ne, nil
	case KindBinaryExpression:
		l, err := DecodeExpression(v.Get("left"))
		if err != nil {
			return nil, err
		}
		r, err := DecodeExpression(v.Get("right"))
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{exprBase: base, Left: l, Right: r, Operator: BinaryOperator(v.Get("operator").String())}, nil
	case KindLogicalExpression:
		l, err := DecodeExpression(v.Get("left"))
		if err != nil {
			return nil, err
		}
		r, err := DecodeExpression(v.Get("right"))
		if err != nil {
			return nil, err
		}
		return &LogicalExpression{exprBase: base, Left: l, Right: r, Operator: LogicalOperator(v.Get("operator").String())}, nil
	case KindUnaryExpression:
		operand, err := DecodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{exprBase: base, Operand: operand, Operator: UnaryOperator(v.Get("operator").String())}, nil
	case KindUpdateExpression:
		operand, err := DecodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &UpdateExpression{exprBase: base, Operand: operand, Operator: v.Get("operator").String(), Prefix: v.Get("prefix").Bool()}, nil
	case KindConditionalExpr:
		test, err := DecodeExpression(v.Get("test"))
		if err != nil {
			return nil, err
		}
		cons, err := DecodeExpression(v.Get("consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := DecodeExpression(v.Get("alternate"))
		if err != nil {
			return nil, err
		}
		return &ConditionalExpression{exprBase: base, Test: test, Consequent: cons, Alternate: alt}, nil
	case KindAssignmentExpr:
		target, err := DecodeExpression(v.Get("target"))
		if err != nil {
			return nil, err
		}
		value, err := DecodeExpression(v.Get("value"))
		if err != nil {
			return nil, err
		}
		ae := &AssignmentExpression{exprBase: base, Target: target, Value: value, Operator: v.Get("operator").String()}
		if pt := v.Get("patternTarget"); pt.Exists() {
			p, err := DecodePattern(pt)
			if err != nil {
				return nil, err
			}
			ae.PatternTarget = p
		}
		return ae, nil
	case KindTemplateLiteral:
		tl := &TemplateLiteral{exprBase: base}
		for _, c := range v.Get("chunks").Array() {
			chunk := TemplateChunk{Text: c.Get("text").String()}
			if e := c.Get("expr"); e.Exists() {
				expr, err := DecodeExpression(e)
				if err != nil {
					return nil, err
				}
				chunk.Expr = expr
			}
			tl.Chunks = append(tl.Chunks, chunk)
		}
		return tl, nil
	case KindObjectLiteral:
		ol := &ObjectLiteral{exprBase: base}
		ctxType, err := DecodeType(v.Get("contextType"))
		if err != nil {
			return nil, err
		}
		ol.ContextType = ctxType
		for _, p := range v.Get("properties").Array() {
			value, err := DecodeExpression(p.Get("value"))
			if err != nil {
				return nil, err
			}
			ol.Properties = append(ol.Properties, ObjectProperty{
				Key:                      p.Get("key").String(),
				Value:                    value,
				IsMethodShorthand:        p.Get("isMethodShorthand").Bool(),
				UsesThisArgumentsOrSuper: p.Get("usesThisArgumentsOrSuper").Bool(),
			})
		}
		return ol, nil
	case KindArrayLiteral:
		al := &ArrayLiteral{exprBase: base}
		ctxType, err := DecodeType(v.Get("contextType"))
		if err != nil {
			return nil, err
		}
		al.ContextType = ctxType
		for _, e := range v.Get("elements").Array() {
			el, err := DecodeExpression(e)
			if err != nil {
				return nil, err
			}
			al.Elements = append(al.Elements, el)
		}
		return al, nil
	case KindArrowFunction:
		af := &ArrowFunctionExpression{exprBase: base, IsAsync: v.Get("isAsync").Bool()}
		rt, err := DecodeType(v.Get("returnType"))
		if err != nil {
			return nil, err
		}
		af.ReturnType = rt
		params, err := decodeParams(v.Get("params"))
		if err != nil {
			return nil, err
		}
		af.Params = params
		if b := v.Get("body"); b.Exists() {
			blk, err := decodeBlock(b)
			if err != nil {
				return nil, err
			}
			af.Body = blk
		}
		if eb := v.Get("expressionBody"); eb.Exists() {
			expr, err := DecodeExpression(eb)
			if err != nil {
				return nil, err
			}
			af.ExpressionBody = expr
		}
		return af, nil
	case KindFunctionExpression:
		fe := &FunctionExpression{exprBase: base, Name: v.Get("name").String(), IsAsync: v.Get("isAsync").Bool(), IsGenerator: v.Get("isGenerator").Bool()}
		rt, err := DecodeType(v.Get("returnType"))
		if err != nil {
			return nil, err
		}
		fe.ReturnType = rt
		yt, err := DecodeType(v.Get("yieldType"))
		if err != nil {
			return nil, err
		}
		fe.YieldType = yt
		nt, err := DecodeType(v.Get("nextType"))
		if err != nil {
			return nil, err
		}
		fe.NextType = nt
		params, err := decodeParams(v.Get("params"))
		if err != nil {
			return nil, err
		}
		fe.Params = params
		blk, err := decodeBlock(v.Get("body"))
		if err != nil {
			return nil, err
		}
		fe.Body = blk
		return fe, nil
	case KindSpreadElement:
		arg, err := DecodeExpression(v.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &SpreadElement{exprBase: base, Argument: arg}, nil
	case KindTypeOfExpression:
		operand, err := DecodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &TypeOfExpression{exprBase: base, Operand: operand}, nil
	case KindAwaitExpression:
		operand, err := DecodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &AwaitExpression{exprBase: base, Operand: operand}, nil
	case KindYieldExpression:
		ye := &YieldExpression{exprBase: base, Delegate: v.Get("delegate").Bool()}
		if a := v.Get("argument"); a.Exists() {
			arg, err := DecodeExpression(a)
			if err != nil {
				return nil, err
			}
			ye.Argument = arg
		}
		return ye, nil
	case KindParenthesized:
		inner, err := DecodeExpression(v.Get("inner"))
		if err != nil {
			return nil, err
		}
		return &ParenthesizedExpression{exprBase: base, Inner: inner}, nil
	default:
		return nil, fmt.Errorf("ir: unknown expression kind %q", kind)
	}
}

func decodeParams(v gjson.Result) ([]Param, error) {
	var params []Param
	for _, p := range v.Array() {
		pat, err := DecodePattern(p.Get("pattern"))
		if err != nil {
			return nil, err
		}
		param := Param{Pattern: pat, IsRest: p.Get("isRest").Bool(), IsOptional: p.Get("isOptional").Bool()}
		ta, err := DecodeType(p.Get("typeAnnotation"))
		if err != nil {
			return nil, err
		}
		param.TypeAnnotation = ta
		if d := p.Get("default"); d.Exists() {
			def, err := DecodeExpression(d)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
	}
	return params, nil
}

func decodeBlock(v gjson.Result) (*Block, error) {
	if !v.Exists() {
		return nil, nil
	}
	blk := &Block{stmtBase: stmtBase{Pos: decodePosition(v)}}
	for i, s := range v.Get("body").Array() {
		stmt, err := DecodeStatement(s)
		if err != nil {
			return nil, fmt.Errorf("block body[%d]: %w", i, err)
		}
		blk.Body = append(blk.Body, stmt)
	}
	return blk, nil
}

// DecodePattern decodes one IR destructuring pattern.
func DecodePattern(v gjson.Result) (Pattern, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	base := patternBase{Pos: decodePosition(v)}
	switch Kind(v.Get("kind").String()) {
	case KindIdentifierPattern:
		ip := &IdentifierPattern{patternBase: base, Name: v.Get("name").String()}
		if d := v.Get("default"); d.Exists() {
			def, err := DecodeExpression(d)
			if err != nil {
				return nil, err
			}
			ip.Default = def
		}
		return ip, nil
	case KindArrayPattern:
		ap := &ArrayPattern{patternBase: base}
		for _, el := range v.Get("elements").Array() {
			elem := ArrayPatternElement{}
			if p := el.Get("pattern"); p.Exists() {
				pat, err := DecodePattern(p)
				if err != nil {
					return nil, err
				}
				elem.Pattern = pat
			}
			if d := el.Get("default"); d.Exists() {
				def, err := DecodeExpression(d)
				if err != nil {
					return nil, err
				}
				elem.Default = def
			}
			ap.Elements = append(ap.Elements, elem)
		}
		if r := v.Get("rest"); r.Exists() {
			rest, err := DecodePattern(r)
			if err != nil {
				return nil, err
			}
			ap.Rest = rest
		}
		return ap, nil
	case KindObjectPattern:
		op := &ObjectPattern{patternBase: base}
		for _, p := range v.Get("properties").Array() {
			pat, err := DecodePattern(p.Get("pattern"))
			if err != nil {
				return nil, err
			}
			prop := ObjectPatternProperty{Key: p.Get("key").String(), Pattern: pat, Shorthand: p.Get("shorthand").Bool()}
			if d := p.Get("default"); d.Exists() {
				def, err := DecodeExpression(d)
				if err != nil {
					return nil, err
				}
				prop.Default = def
			}
			op.Properties = append(op.Properties, prop)
		}
		if r := v.Get("rest"); r.Exists() {
			rest, err := DecodePattern(r)
			if err != nil {
				return nil, err
			}
			op.Rest = rest
			for _, m := range v.Get("restShapeMembers").Array() {
				op.RestShapeMembers = append(op.RestShapeMembers, m.String())
			}
			op.RestSynthTypeName = v.Get("restSynthTypeName").String()
		}
		return op, nil
	default:
		return nil, fmt.Errorf("ir: unknown pattern kind %q", v.Get("kind").String())
	}
}

// DecodeStatement decodes one IR statement (including declarations, which
// are statements at module/block scope).
func DecodeStatement(v gjson.Result) (Statement, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	base := stmtBase{Pos: decodePosition(v)}
	kind := Kind(v.Get("kind").String())
	switch kind {
	case KindBlockStatement:
		return decodeBlock(v)
	case KindVariableStatement:
		vs := &VariableStatement{stmtBase: base, VarKind: VariableKind(v.Get("varKind").String()), Exported: v.Get("exported").Bool()}
		for _, d := range v.Get("declarators").Array() {
			pat, err := DecodePattern(d.Get("pattern"))
			if err != nil {
				return nil, err
			}
			decl := Declarator{Pattern: pat}
			ta, err := DecodeType(d.Get("typeAnnotation"))
			if err != nil {
				return nil, err
			}
			decl.TypeAnnotation = ta
			if i := d.Get("init"); i.Exists() {
				init, err := DecodeExpression(i)
				if err != nil {
					return nil, err
				}
				decl.Init = init
			}
			vs.Declarators = append(vs.Declarators, decl)
		}
		return vs, nil
	case KindExpressionStatement:
		expr, err := DecodeExpression(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{stmtBase: base, Expr: expr}, nil
	case KindIfStatement:
		test, err := DecodeExpression(v.Get("test"))
		if err != nil {
			return nil, err
		}
		cons, err := DecodeStatement(v.Get("consequent"))
		if err != nil {
			return nil, err
		}
		is := &IfStatement{stmtBase: base, Test: test, Consequent: cons}
		if a := v.Get("alternate"); a.Exists() {
			alt, err := DecodeStatement(a)
			if err != nil {
				return nil, err
			}
			is.Alternate = alt
		}
		return is, nil
	case KindForStatement:
		fs := &ForStatement{stmtBase: base, InductionVar: v.Get("inductionVar").String(), IsProvenInteger: v.Get("isProvenInteger").Bool()}
		if i := v.Get("init"); i.Exists() {
			init, err := DecodeStatement(i)
			if err != nil {
				return nil, err
			}
			fs.Init = init
		}
		if t := v.Get("test"); t.Exists() {
			test, err := DecodeExpression(t)
			if err != nil {
				return nil, err
			}
			fs.Test = test
		}
		if u := v.Get("update"); u.Exists() {
			upd, err := DecodeExpression(u)
			if err != nil {
				return nil, err
			}
			fs.Update = upd
		}
		body, err := DecodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		fs.Body = body
		return fs, nil
	case KindForOfStatement, KindForInStatement:
		left, err := DecodePattern(v.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := DecodeExpression(v.Get("right"))
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		if kind == KindForOfStatement {
			return &ForOfStatement{stmtBase: base, Left: left, Right: right, Body: body, IsAwait: v.Get("isAwait").Bool()}, nil
		}
		return &ForInStatement{stmtBase: base, Left: left, Right: right, Body: body}, nil
	case KindWhileStatement:
		test, err := DecodeExpression(v.Get("test"))
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &WhileStatement{stmtBase: base, Test: test, Body: body}, nil
	case KindDoWhileStatement:
		test, err := DecodeExpression(v.Get("test"))
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &DoWhileStatement{stmtBase: base, Test: test, Body: body}, nil
	case KindSwitchStatement:
		disc, err := DecodeExpression(v.Get("discriminant"))
		if err != nil {
			return nil, err
		}
		sw := &SwitchStatement{stmtBase: base, Discriminant: disc}
		for _, c := range v.Get("cases").Array() {
			sc := SwitchCase{}
			if t := c.Get("test"); t.Exists() {
				test, err := DecodeExpression(t)
				if err != nil {
					return nil, err
				}
				sc.Test = test
			}
			for i, s := range c.Get("consequent").Array() {
				stmt, err := DecodeStatement(s)
				if err != nil {
					return nil, fmt.Errorf("case consequent[%d]: %w", i, err)
				}
				sc.Consequent = append(sc.Consequent, stmt)
			}
			sw.Cases = append(sw.Cases, sc)
		}
		return sw, nil
	case KindTryStatement:
		blk, err := decodeBlock(v.Get("block"))
		if err != nil {
			return nil, err
		}
		ts := &TryStatement{stmtBase: base, Block: blk}
		if cp := v.Get("catchParam"); cp.Exists() {
			pat, err := DecodePattern(cp)
			if err != nil {
				return nil, err
			}
			ts.CatchParam = pat
		}
		if cb := v.Get("catchBody"); cb.Exists() {
			catchBlk, err := decodeBlock(cb)
			if err != nil {
				return nil, err
			}
			ts.CatchBody = catchBlk
		}
		if fb := v.Get("finallyBody"); fb.Exists() {
			finBlk, err := decodeBlock(fb)
			if err != nil {
				return nil, err
			}
			ts.FinallyBody = finBlk
		}
		return ts, nil
	case KindThrowStatement:
		arg, err := DecodeExpression(v.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &ThrowStatement{stmtBase: base, Argument: arg}, nil
	case KindReturnStatement:
		rs := &ReturnStatement{stmtBase: base}
		if a := v.Get("argument"); a.Exists() {
			arg, err := DecodeExpression(a)
			if err != nil {
				return nil, err
			}
			rs.Argument = arg
		}
		return rs, nil
	case KindBreakStatement:
		return &BreakStatement{stmtBase: base, Label: v.Get("label").String()}, nil
	case KindContinueStatement:
		return &ContinueStatement{stmtBase: base, Label: v.Get("label").String()}, nil
	case KindEmptyStatement:
		return &EmptyStatement{stmtBase: base}, nil
	case KindFunctionDeclaration:
		return decodeFunctionDeclaration(base, v)
	case KindClassDeclaration:
		return decodeClassDeclaration(base, v)
	case KindInterfaceDecl:
		return decodeInterfaceDeclaration(base, v)
	case KindEnumDeclaration:
		return decodeEnumDeclaration(base, v)
	case KindTypeAliasDecl:
		return decodeTypeAliasDeclaration(base, v)
	default:
		return nil, fmt.Errorf("ir: unknown statement kind %q", kind)
	}
}

func decodeAttributes(v gjson.Result) ([]Attribute, error) {
	var attrs []Attribute
	for _, a := range v.Array() {
		attr := Attribute{Name: a.Get("name").String()}
		for _, arg := range a.Get("arguments").Array() {
			expr, err := DecodeExpression(arg)
			if err != nil {
				return nil, err
			}
			attr.Arguments = append(attr.Arguments, expr)
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func decodeTypeParams(v gjson.Result) ([]TypeParam, error) {
	var tps []TypeParam
	for _, tp := range v.Array() {
		t := TypeParam{Name: tp.Get("name").String()}
		c, err := DecodeType(tp.Get("constraint"))
		if err != nil {
			return nil, err
		}
		t.Constraint = c
		tps = append(tps, t)
	}
	return tps, nil
}

func decodeFunctionDeclaration(base stmtBase, v gjson.Result) (*FunctionDeclaration, error) {
	fd := &FunctionDeclaration{stmtBase: base, Name: v.Get("name").String(), IsAsync: v.Get("isAsync").Bool(), IsGenerator: v.Get("isGenerator").Bool(), Exported: v.Get("exported").Bool()}
	attrs, err := decodeAttributes(v.Get("attributes"))
	if err != nil {
		return nil, err
	}
	fd.Attributes = attrs
	tps, err := decodeTypeParams(v.Get("typeParams"))
	if err != nil {
		return nil, err
	}
	fd.TypeParams = tps
	params, err := decodeParams(v.Get("params"))
	if err != nil {
		return nil, err
	}
	fd.Params = params
	rt, err := DecodeType(v.Get("returnType"))
	if err != nil {
		return nil, err
	}
	fd.ReturnType = rt
	yt, err := DecodeType(v.Get("yieldType"))
	if err != nil {
		return nil, err
	}
	fd.YieldType = yt
	nt, err := DecodeType(v.Get("nextType"))
	if err != nil {
		return nil, err
	}
	fd.NextType = nt
	blk, err := decodeBlock(v.Get("body"))
	if err != nil {
		return nil, err
	}
	fd.Body = blk
	return fd, nil
}

func decodeRefType(v gjson.Result) (*ReferenceType, error) {
	if !v.Exists() {
		return nil, nil
	}
	t, err := DecodeType(v)
	if err != nil {
		return nil, err
	}
	rt, _ := t.(*ReferenceType)
	return rt, nil
}

func decodeClassDeclaration(base stmtBase, v gjson.Result) (*ClassDeclaration, error) {
	cd := &ClassDeclaration{stmtBase: base, Name: v.Get("name").String(), IsAbstract: v.Get("isAbstract").Bool(), SelfTypeConstraint: v.Get("selfTypeConstraint").Bool(), Exported: v.Get("exported").Bool()}
	attrs, err := decodeAttributes(v.Get("attributes"))
	if err != nil {
		return nil, err
	}
	cd.Attributes = attrs
	tps, err := decodeTypeParams(v.Get("typeParams"))
	if err != nil {
		return nil, err
	}
	cd.TypeParams = tps
	ext, err := decodeRefType(v.Get("extends"))
	if err != nil {
		return nil, err
	}
	cd.Extends = ext
	for _, impl := range v.Get("implements").Array() {
		rt, err := decodeRefType(impl)
		if err != nil {
			return nil, err
		}
		cd.Implements = append(cd.Implements, rt)
	}
	for i, mem := range v.Get("members").Array() {
		m, err := decodeClassMember(mem)
		if err != nil {
			return nil, fmt.Errorf("member[%d]: %w", i, err)
		}
		cd.Members = append(cd.Members, m)
	}
	return cd, nil
}

func decodeClassMember(v gjson.Result) (ClassMember, error) {
	switch Kind(v.Get("kind").String()) {
	case KindPropertyDecl:
		pd := &PropertyDeclaration{
			Name:       v.Get("name").String(),
			Visibility: Visibility(v.Get("visibility").String()),
			IsStatic:   v.Get("isStatic").Bool(),
			IsReadonly: v.Get("isReadonly").Bool(),
			IsOptional: v.Get("isOptional").Bool(),
		}
		attrs, err := decodeAttributes(v.Get("attributes"))
		if err != nil {
			return nil, err
		}
		pd.Attributes = attrs
		ta, err := DecodeType(v.Get("typeAnnotation"))
		if err != nil {
			return nil, err
		}
		pd.TypeAnnotation = ta
		if p := v.Get("pattern"); p.Exists() {
			pat, err := DecodePattern(p)
			if err != nil {
				return nil, err
			}
			pd.Pattern = pat
		}
		if i := v.Get("initializer"); i.Exists() {
			init, err := DecodeExpression(i)
			if err != nil {
				return nil, err
			}
			pd.Initializer = init
		}
		return pd, nil
	case KindMethodDecl:
		md := &MethodDeclaration{
			Name:         v.Get("name").String(),
			AccessorKind: v.Get("accessorKind").String(),
			Visibility:   Visibility(v.Get("visibility").String()),
			IsStatic:     v.Get("isStatic").Bool(),
			IsAsync:      v.Get("isAsync").Bool(),
			IsGenerator:  v.Get("isGenerator").Bool(),
			IsAbstract:   v.Get("isAbstract").Bool(),
		}
		attrs, err := decodeAttributes(v.Get("attributes"))
		if err != nil {
			return nil, err
		}
		md.Attributes = attrs
		tps, err := decodeTypeParams(v.Get("typeParams"))
		if err != nil {
			return nil, err
		}
		md.TypeParams = tps
		params, err := decodeParams(v.Get("params"))
		if err != nil {
			return nil, err
		}
		md.Params = params
		rt, err := DecodeType(v.Get("returnType"))
		if err != nil {
			return nil, err
		}
		md.ReturnType = rt
		yt, err := DecodeType(v.Get("yieldType"))
		if err != nil {
			return nil, err
		}
		md.YieldType = yt
		nt, err := DecodeType(v.Get("nextType"))
		if err != nil {
			return nil, err
		}
		md.NextType = nt
		blk, err := decodeBlock(v.Get("body"))
		if err != nil {
			return nil, err
		}
		md.Body = blk
		return md, nil
	case KindConstructorDecl:
		params, err := decodeParams(v.Get("params"))
		if err != nil {
			return nil, err
		}
		blk, err := decodeBlock(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ConstructorDeclaration{Params: params, Body: blk}, nil
	default:
		return nil, fmt.Errorf("ir: unknown class member kind %q", v.Get("kind").String())
	}
}

func decodeInterfaceMembers(v gjson.Result) ([]InterfaceMember, error) {
	var members []InterfaceMember
	for _, m := range v.Array() {
		im := InterfaceMember{Name: m.Get("name").String(), AccessorKind: m.Get("accessorKind").String(), IsOptional: m.Get("isOptional").Bool()}
		if p := m.Get("params"); p.Exists() {
			params, err := decodeParams(p)
			if err != nil {
				return nil, err
			}
			im.Params = params
		}
		rt, err := DecodeType(m.Get("returnType"))
		if err != nil {
			return nil, err
		}
		im.ReturnType = rt
		ta, err := DecodeType(m.Get("typeAnnotation"))
		if err != nil {
			return nil, err
		}
		im.TypeAnnotation = ta
		members = append(members, im)
	}
	return members, nil
}

func decodeInterfaceDeclaration(base stmtBase, v gjson.Result) (*InterfaceDeclaration, error) {
	id := &InterfaceDeclaration{stmtBase: base, Name: v.Get("name").String(), Exported: v.Get("exported").Bool()}
	tps, err := decodeTypeParams(v.Get("typeParams"))
	if err != nil {
		return nil, err
	}
	id.TypeParams = tps
	for _, e := range v.Get("extends").Array() {
		rt, err := decodeRefType(e)
		if err != nil {
			return nil, err
		}
		id.Extends = append(id.Extends, rt)
	}
	members, err := decodeInterfaceMembers(v.Get("members"))
	if err != nil {
		return nil, err
	}
	id.Members = members
	return id, nil
}

func decodeEnumDeclaration(base stmtBase, v gjson.Result) (*EnumDeclaration, error) {
	ed := &EnumDeclaration{stmtBase: base, Name: v.Get("name").String(), Exported: v.Get("exported").Bool()}
	for _, m := range v.Get("members").Array() {
		em := EnumMember{Name: m.Get("name").String()}
		if val := m.Get("value"); val.Exists() {
			expr, err := DecodeExpression(val)
			if err != nil {
				return nil, err
			}
			em.Value = expr
		}
		ed.Members = append(ed.Members, em)
	}
	return ed, nil
}

func decodeTypeAliasDeclaration(base stmtBase, v gjson.Result) (*TypeAliasDeclaration, error) {
	ta := &TypeAliasDeclaration{
		stmtBase:     base,
		Name:         v.Get("name").String(),
		IsStructural: v.Get("isStructural").Bool(),
		EmitAsStruct: v.Get("emitAsStruct").Bool(),
		Exported:     v.Get("exported").Bool(),
	}
	tps, err := decodeTypeParams(v.Get("typeParams"))
	if err != nil {
		return nil, err
	}
	ta.TypeParams = tps
	aliased, err := DecodeType(v.Get("aliasedType"))
	if err != nil {
		return nil, err
	}
	ta.AliasedType = aliased
	members, err := decodeInterfaceMembers(v.Get("structMembers"))
	if err != nil {
		return nil, err
	}
	ta.StructMembers = members
	return ta, nil
}

// MustDecodeModule is a test/fixture convenience wrapper around DecodeModule.
func MustDecodeModule(data []byte) *Module {
	m, err := DecodeModule(data)
	if err != nil {
		panic(err)
	}
	return m
}

// RawJSON re-encodes a decoded value back to JSON for debugging; it is not
// used on the hot decode path.
func RawJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
