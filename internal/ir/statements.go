package ir

// stmtBase is embedded by every concrete Statement.
type stmtBase struct {
	Pos Position `json:"pos"`
}

func (s *stmtBase) Position() Position { return s.Pos }
func (s *stmtBase) statementNode()     {}

// Block is `{ stmt; stmt; ... }`.
type Block struct {
	stmtBase
	Body []Statement `json:"body"`
}

func (*Block) Kind() Kind { return KindBlockStatement }

// VariableKind is `let`, `const`, or `var` (TS `var` is rejected by the
// validator for anything the core would need to lower differently from
// `let`; it is kept here only so declaration text round-trips for tooling).
type VariableKind string

const (
	VarLet   VariableKind = "let"
	VarConst VariableKind = "const"
	VarVar   VariableKind = "var"
)

// Declarator is one `pattern[: type] = init` clause of a VariableStatement.
type Declarator struct {
	TypeAnnotation Type       `json:"typeAnnotation,omitempty"`
	Init           Expression `json:"init,omitempty"`
	Pattern        Pattern    `json:"pattern"`
}

// VariableStatement is `let/const/var a = 1, [b,c] = arr;`. Exported marks a
// top-level declaration that must be emitted `public` in a static container.
type VariableStatement struct {
	stmtBase
	VarKind     VariableKind `json:"varKind"`
	Declarators []Declarator `json:"declarators"`
	Exported    bool         `json:"exported"`
}

func (*VariableStatement) Kind() Kind { return KindVariableStatement }

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct {
	stmtBase
	Expr Expression `json:"expr"`
}

func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	stmtBase
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

// ForStatement is the classic three-clause `for (init; test; update) body`.
// InductionVar/IsProvenInteger carry the numeric proof pass's verdict used
// to decide `int` vs `double` loop counters (spec.md Open Questions #1).
type ForStatement struct {
	stmtBase
	Init             Statement  `json:"init,omitempty"`
	Test             Expression `json:"test,omitempty"`
	Update           Expression `json:"update,omitempty"`
	Body             Statement  `json:"body"`
	InductionVar     string     `json:"inductionVar,omitempty"`
	IsProvenInteger  bool       `json:"isProvenInteger"`
}

func (*ForStatement) Kind() Kind { return KindForStatement }

// ForOfStatement is `for (const x of iterable) body`.
type ForOfStatement struct {
	stmtBase
	Left    Pattern    `json:"left"`
	Right   Expression `json:"right"`
	Body    Statement  `json:"body"`
	IsAwait bool       `json:"isAwait"`
}

func (*ForOfStatement) Kind() Kind { return KindForOfStatement }

// ForInStatement is `for (const k in obj) body`.
type ForInStatement struct {
	stmtBase
	Left  Pattern    `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

func (*ForInStatement) Kind() Kind { return KindForInStatement }

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	stmtBase
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func (*WhileStatement) Kind() Kind { return KindWhileStatement }

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	stmtBase
	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

func (*DoWhileStatement) Kind() Kind { return KindDoWhileStatement }

// SwitchCase is one `case test:` (Test == nil means `default:`).
type SwitchCase struct {
	Test       Expression  `json:"test,omitempty"`
	Consequent []Statement `json:"consequent"`
}

// SwitchStatement is `switch (discriminant) { case ...: ... }`.
type SwitchStatement struct {
	stmtBase
	Discriminant Expression   `json:"discriminant"`
	Cases        []SwitchCase `json:"cases"`
}

func (*SwitchStatement) Kind() Kind { return KindSwitchStatement }

// TryStatement is `try block catch (param) catchBody finally finallyBody`.
type TryStatement struct {
	stmtBase
	Block        *Block  `json:"block"`
	CatchParam   Pattern `json:"catchParam,omitempty"`
	CatchBody    *Block  `json:"catchBody,omitempty"`
	FinallyBody  *Block  `json:"finallyBody,omitempty"`
}

func (*TryStatement) Kind() Kind { return KindTryStatement }

// ThrowStatement is `throw argument;`.
type ThrowStatement struct {
	stmtBase
	Argument Expression `json:"argument"`
}

func (*ThrowStatement) Kind() Kind { return KindThrowStatement }

// ReturnStatement is `return [argument];`.
type ReturnStatement struct {
	stmtBase
	Argument Expression `json:"argument,omitempty"`
}

func (*ReturnStatement) Kind() Kind { return KindReturnStatement }

// BreakStatement is `break [label];`.
type BreakStatement struct {
	stmtBase
	Label string `json:"label,omitempty"`
}

func (*BreakStatement) Kind() Kind { return KindBreakStatement }

// ContinueStatement is `continue [label];`.
type ContinueStatement struct {
	stmtBase
	Label string `json:"label,omitempty"`
}

func (*ContinueStatement) Kind() Kind { return KindContinueStatement }

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	stmtBase
}

func (*EmptyStatement) Kind() Kind { return KindEmptyStatement }
