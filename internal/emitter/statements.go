package emitter

import (
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// LowerBlock lowers every statement of b in the caller's current scope. Use
// lowerNestedBlock instead when b introduces a new lexical scope (loop/if
// bodies, try arms) so locals declared inside cannot leak to the caller.
// The several statements of a multi-declarator or destructuring variable
// statement are spliced into the block as siblings.
func LowerBlock(ctx EmitterContext, b *ir.Block) (*csharpast.Block, EmitterContext) {
	if b == nil {
		return &csharpast.Block{}, ctx
	}
	stmts := make([]csharpast.Statement, 0, len(b.Body))
	for _, s := range b.Body {
		lowered, ctx2 := LowerStatement(ctx, s)
		ctx = ctx2
		if blk, ok := lowered.(*csharpast.Block); ok {
			if _, isVar := s.(*ir.VariableStatement); isVar {
				stmts = append(stmts, blk.Statements...)
				continue
			}
		}
		if lowered != nil {
			stmts = append(stmts, lowered)
		}
	}
	return &csharpast.Block{Statements: stmts}, ctx
}

// lowerNestedBlock lowers b in a freshly entered lexical scope, returning the
// outer ctx unchanged (spec.md §5's "snapshot outer; restore on return").
func lowerNestedBlock(ctx EmitterContext, b *ir.Block) *csharpast.Block {
	inner, _ := LowerBlock(ctx.EnterScope(), b)
	return inner
}

// lowerNestedStatement wraps a single (possibly non-Block) statement body
// into a Block under a fresh scope, matching the Backend AST invariant that
// lowering never emits a bare single-statement body (spec.md §3.1).
func lowerNestedStatement(ctx EmitterContext, s ir.Statement) *csharpast.Block {
	innerCtx := ctx.EnterScope()
	if b, ok := s.(*ir.Block); ok {
		block, _ := LowerBlock(innerCtx, b)
		return block
	}
	lowered, _ := LowerStatement(innerCtx, s)
	if lowered == nil {
		return &csharpast.Block{}
	}
	return &csharpast.Block{Statements: []csharpast.Statement{lowered}}
}

// LowerStatement translates one IR statement into a Backend AST statement.
func LowerStatement(ctx EmitterContext, s ir.Statement) (csharpast.Statement, EmitterContext) {
	switch n := s.(type) {
	case *ir.Block:
		return lowerNestedBlock(ctx, n), ctx

	case *ir.VariableStatement:
		return lowerVariableStatement(ctx, n)

	case *ir.ExpressionStatement:
		if stmts, ctx2, ok := lowerYieldStatement(ctx, n.Expr); ok {
			if len(stmts) == 1 {
				return stmts[0], ctx2
			}
			return &csharpast.Block{Statements: stmts}, ctx2
		}
		expr, ctx2 := LowerExpression(ctx, n.Expr)
		return &csharpast.ExpressionStatement{Expr: expr}, ctx2

	case *ir.IfStatement:
		test, ctx2 := LowerBooleanContext(ctx, n.Test)
		then := lowerNestedStatement(ctx2, n.Consequent)
		var elseStmt csharpast.Statement
		if n.Alternate != nil {
			if elseIf, ok := n.Alternate.(*ir.IfStatement); ok {
				elseStmt, ctx2 = LowerStatement(ctx2, elseIf)
			} else {
				elseStmt = lowerNestedStatement(ctx2, n.Alternate)
			}
		}
		return &csharpast.If{Test: test, Then: then, Else: elseStmt}, ctx2

	case *ir.ForStatement:
		return lowerForStatement(ctx, n)

	case *ir.ForOfStatement:
		return lowerForOfStatement(ctx, n)

	case *ir.ForInStatement:
		return lowerForInStatement(ctx, n)

	case *ir.WhileStatement:
		test, ctx2 := LowerBooleanContext(ctx, n.Test)
		body := lowerNestedStatement(ctx2, n.Body)
		return &csharpast.While{Test: test, Body: body}, ctx2

	case *ir.DoWhileStatement:
		body := lowerNestedStatement(ctx, n.Body)
		test, ctx2 := LowerBooleanContext(ctx, n.Test)
		return &csharpast.DoWhile{Test: test, Body: body}, ctx2

	case *ir.SwitchStatement:
		return lowerSwitchStatement(ctx, n)

	case *ir.TryStatement:
		return lowerTryStatement(ctx, n)

	case *ir.ThrowStatement:
		arg, ctx2 := LowerExpression(ctx, n.Argument)
		return &csharpast.ThrowStatement{Argument: arg}, ctx2

	case *ir.ReturnStatement:
		if n.Argument == nil {
			return &csharpast.Return{}, ctx
		}
		arg, ctx2 := LowerExpression(ctx, n.Argument)
		return &csharpast.Return{Argument: arg}, ctx2

	case *ir.BreakStatement:
		return csharpast.Break{}, ctx

	case *ir.ContinueStatement:
		return csharpast.Continue{}, ctx

	case *ir.EmptyStatement:
		return csharpast.Empty{}, ctx

	case *ir.FunctionDeclaration:
		return lowerLocalFunctionDeclaration(ctx, n)

	default:
		panicICE("TSNB040", "emitter: unsupported nested statement kind %q", s.Kind())
		return nil, ctx
	}
}

// lowerVariableStatement lowers `let/const a = 1, [b,c] = arr;`. Each
// declarator with a simple identifier pattern becomes one LocalDeclaration;
// a destructuring declarator expands via LowerLocalDestructure. Multiple
// declarators are never comma-joined in the Backend AST (spec.md §3.1), so a
// multi-declarator statement is represented as several sibling statements —
// callers that need a single csharpast.Statement (e.g. a for-loop Init
// clause) must restrict themselves to the single-declarator case.
func lowerVariableStatement(ctx EmitterContext, n *ir.VariableStatement) (csharpast.Statement, EmitterContext) {
	stmts, ctx2 := lowerVariableDeclarators(ctx, n, nil)
	if len(stmts) == 1 {
		return stmts[0], ctx2
	}
	return &csharpast.Block{Statements: stmts}, ctx2
}

// lowerVariableDeclarators lowers every declarator of n. forcedType, when
// non-nil, overrides each declarator's own TypeAnnotation/inferred type —
// used by lowerForStatement to apply the proven-integer loop-counter rule
// (spec.md §9 Open Question, DESIGN.md decision 1).
func lowerVariableDeclarators(ctx EmitterContext, n *ir.VariableStatement, forcedType ir.Type) ([]csharpast.Statement, EmitterContext) {
	var out []csharpast.Statement
	for _, d := range n.Declarators {
		var rhs csharpast.Expression
		if d.Init != nil {
			lowered, ctx2 := LowerExpression(ctx, d.Init)
			ctx = ctx2
			rhs = lowered
		}
		declType := forcedType
		if declType == nil {
			declType = d.TypeAnnotation
			if declType == nil && d.Init != nil {
				declType = d.Init.InferredType()
			}
		}
		stmts, ctx2 := LowerLocalDestructure(ctx, d.Pattern, declType, rhs)
		ctx = ctx2
		out = append(out, stmts...)
	}
	return out, ctx
}

func lowerForStatement(ctx EmitterContext, n *ir.ForStatement) (csharpast.Statement, EmitterContext) {
	loopCtx := ctx.EnterScope()
	var init csharpast.Statement
	if n.Init != nil {
		if vs, ok := n.Init.(*ir.VariableStatement); ok {
			var forced ir.Type
			if canonicalIntForLoop(n) {
				forced = &ir.PrimitiveType{Name: ir.PrimInt}
			}
			stmts, ctx2 := lowerVariableDeclarators(loopCtx, vs, forced)
			loopCtx = ctx2
			if len(stmts) == 1 {
				init = stmts[0]
			} else if len(stmts) > 1 {
				panicICE("TSNB041", "emitter: for-loop init cannot declare more than one local in the Backend AST")
			}
		} else {
			lowered, ctx2 := LowerStatement(loopCtx, n.Init)
			loopCtx = ctx2
			init = lowered
		}
	}
	var test csharpast.Expression
	if n.Test != nil {
		t, ctx2 := LowerBooleanContext(loopCtx, n.Test)
		loopCtx = ctx2
		test = t
	}
	var update csharpast.Expression
	if n.Update != nil {
		u, ctx2 := LowerExpression(loopCtx, n.Update)
		loopCtx = ctx2
		update = u
	}
	body := lowerNestedStatement(loopCtx, n.Body)
	return &csharpast.For{Init: init, Test: test, Update: update, Body: body}, ctx
}

// canonicalIntForLoop reports whether n's init/test/update match the
// canonical induction shape DESIGN.md decision 1 requires before trusting
// the numeric proof pass's IsProvenInteger verdict: `for (let i = start; i <
// bound; i++ | i += 1 | i = i + 1)`. Any other shape — a non-canonical step,
// a test against a different variable — keeps the loop counter `double`
// even when IsProvenInteger is set, matching spec.md §9's literal wording.
func canonicalIntForLoop(n *ir.ForStatement) bool {
	if !n.IsProvenInteger || n.InductionVar == "" || n.Test == nil || n.Update == nil {
		return false
	}
	return canonicalIntTest(n.Test, n.InductionVar) && canonicalIntUpdate(n.Update, n.InductionVar)
}

func canonicalIntTest(test ir.Expression, name string) bool {
	bin, ok := test.(*ir.BinaryExpression)
	if !ok || bin.Operator != ir.OpLt {
		return false
	}
	id, ok := bin.Left.(*ir.Identifier)
	return ok && id.Name == name
}

func canonicalIntUpdate(update ir.Expression, name string) bool {
	switch u := update.(type) {
	case *ir.UpdateExpression:
		id, ok := u.Operand.(*ir.Identifier)
		return ok && id.Name == name && u.Operator == "++"

	case *ir.AssignmentExpression:
		target, ok := u.Target.(*ir.Identifier)
		if !ok || target.Name != name {
			return false
		}
		switch u.Operator {
		case "+=":
			lit, ok := u.Value.(*ir.NumericLiteral)
			return ok && lit.Value == 1
		case "=":
			bin, ok := u.Value.(*ir.BinaryExpression)
			if !ok || bin.Operator != ir.OpAdd {
				return false
			}
			left, ok := bin.Left.(*ir.Identifier)
			if !ok || left.Name != name {
				return false
			}
			lit, ok := bin.Right.(*ir.NumericLiteral)
			return ok && lit.Value == 1
		}
	}
	return false
}

// lowerForOfStatement lowers `for (const x of iterable) body`. A simple
// identifier left-hand side becomes a direct `foreach`; a destructuring
// pattern iterates into a synthetic `__item` temp per spec.md §4.4 and
// expands inside the loop body.
func lowerForOfStatement(ctx EmitterContext, n *ir.ForOfStatement) (csharpast.Statement, EmitterContext) {
	source, ctx2 := LowerExpression(ctx, n.Right)
	loopCtx := ctx2.EnterScope()

	elemType := elementTypeOf(n.Right.InferredType())
	elemCS := csharpast.Type(csharpast.VarType{})
	if elemType != nil {
		elemCS = LowerType(loopCtx, elemType)
	}

	if id, ok := n.Left.(*ir.IdentifierPattern); ok {
		name, loopCtx2 := loopCtx.AllocateLocalName(id.Name)
		body := lowerNestedStatement(loopCtx2, n.Body)
		return &csharpast.Foreach{ElementType: elemCS, Name: name, Source: source, Body: body, IsAwait: n.IsAwait}, ctx2
	}

	tempName, destructure, loopCtx2 := LowerForOfDestructure(loopCtx, n.Left, elemType)
	innerCtx := loopCtx2.EnterScope()
	bodyBlock, _ := LowerBlock(innerCtx, bodyAsBlock(n.Body))
	bodyBlock.Statements = append(append([]csharpast.Statement{}, destructure...), bodyBlock.Statements...)
	return &csharpast.Foreach{ElementType: elemCS, Name: tempName, Source: source, Body: bodyBlock, IsAwait: n.IsAwait}, ctx2
}

func bodyAsBlock(s ir.Statement) *ir.Block {
	if b, ok := s.(*ir.Block); ok {
		return b
	}
	return &ir.Block{Body: []ir.Statement{s}}
}

func elementTypeOf(t ir.Type) ir.Type {
	if arr, ok := t.(*ir.ArrayType); ok {
		return arr.Element
	}
	return nil
}

// lowerForInStatement lowers `for (const k in obj) body` to a foreach over
// the runtime's key-enumeration helper, since C# has no direct `for-in`
// analogue for arbitrary objects.
func lowerForInStatement(ctx EmitterContext, n *ir.ForInStatement) (csharpast.Statement, EmitterContext) {
	obj, ctx2 := LowerExpression(ctx, n.Right)
	keys := &csharpast.Invocation{
		Callee:    &csharpast.MemberAccess{Receiver: &csharpast.Identifier{Name: runtimeNamespace + ".ObjectHelpers"}, Name: "Keys"},
		Arguments: []csharpast.Expression{obj},
	}
	loopCtx := ctx2.EnterScope()
	id, ok := n.Left.(*ir.IdentifierPattern)
	if !ok {
		panicICE("TSNB042", "emitter: for-in left-hand side must be a simple identifier")
	}
	name, loopCtx2 := loopCtx.AllocateLocalName(id.Name)
	body := lowerNestedStatement(loopCtx2, n.Body)
	return &csharpast.Foreach{ElementType: &csharpast.PredefinedType{Name: csharpast.PredefString}, Name: name, Source: keys, Body: body}, ctx2
}

// lowerSwitchStatement lowers a JS switch into the pattern-matching switch
// *statement*: each case value becomes a ConstantPattern label, and a
// default clause (Test == nil) becomes the section with a nil Labels entry.
func lowerSwitchStatement(ctx EmitterContext, n *ir.SwitchStatement) (csharpast.Statement, EmitterContext) {
	discriminant, ctx2 := LowerExpression(ctx, n.Discriminant)
	sections := make([]csharpast.SwitchSection, 0, len(n.Cases))
	switchCtx := ctx2.EnterScope()
	for _, c := range n.Cases {
		var labels []*csharpast.CasePatternLabel
		if c.Test == nil {
			labels = []*csharpast.CasePatternLabel{nil}
		} else {
			val, ctx3 := LowerExpression(switchCtx, c.Test)
			switchCtx = ctx3
			labels = []*csharpast.CasePatternLabel{{Pattern: &csharpast.ConstantPattern{Value: val}}}
		}
		bodyCtx := switchCtx.EnterScope()
		body := make([]csharpast.Statement, 0, len(c.Consequent))
		for _, s := range c.Consequent {
			lowered, ctx3 := LowerStatement(bodyCtx, s)
			bodyCtx = ctx3
			if lowered != nil {
				body = append(body, lowered)
			}
		}
		sections = append(sections, csharpast.SwitchSection{Labels: labels, Body: body})
	}
	return &csharpast.Switch{Discriminant: discriminant, Sections: sections}, ctx2
}

func lowerTryStatement(ctx EmitterContext, n *ir.TryStatement) (csharpast.Statement, EmitterContext) {
	block := lowerNestedBlock(ctx, n.Block)
	var catches []csharpast.CatchClause
	if n.CatchBody != nil {
		catchCtx := ctx.EnterScope()
		var name string
		var paramType csharpast.Type
		if n.CatchParam != nil {
			if id, ok := n.CatchParam.(*ir.IdentifierPattern); ok {
				var allocated string
				allocated, catchCtx = catchCtx.AllocateLocalName(id.Name)
				name = allocated
				paramType = &csharpast.IdentifierType{Name: "System.Exception"}
			}
		}
		body, _ := LowerBlock(catchCtx, n.CatchBody)
		catches = append(catches, csharpast.CatchClause{Type: paramType, Name: name, Body: body})
	}
	var finallyBlock *csharpast.Block
	if n.FinallyBody != nil {
		finallyBlock = lowerNestedBlock(ctx, n.FinallyBody)
	}
	return &csharpast.Try{Block: block, Catches: catches, Finally: finallyBlock}, ctx
}
