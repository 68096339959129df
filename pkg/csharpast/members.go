package csharpast

// Modifier is one C# member modifier keyword.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModPrivate   Modifier = "private"
	ModProtected Modifier = "protected"
	ModInternal  Modifier = "internal"
	ModStatic    Modifier = "static"
	ModReadonly  Modifier = "readonly"
	ModConst     Modifier = "const"
	ModAbstract  Modifier = "abstract"
	ModVirtual   Modifier = "virtual"
	ModOverride  Modifier = "override"
	ModSealed    Modifier = "sealed"
	ModAsync     Modifier = "async"
	ModPartial   Modifier = "partial"
	ModNew       Modifier = "new"
)

// Attribute is one `[Name(Arguments...)]` attribute applied to a member.
type Attribute struct {
	Name      string
	Arguments []Expression
}

// ParameterModifier is a C# parameter-passing modifier.
type ParameterModifier string

const (
	ParamNone   ParameterModifier = ""
	ParamRef    ParameterModifier = "ref"
	ParamOut    ParameterModifier = "out"
	ParamIn     ParameterModifier = "in"
	ParamParams ParameterModifier = "params"
)

// Parameter is one method/constructor/delegate parameter.
type Parameter struct {
	Type     Type
	Name     string
	Default  Expression // nil if the parameter has no default
	Modifier ParameterModifier
}

// TypeParamConstraint is one `where T : Constraint1, Constraint2` clause.
type TypeParamConstraint struct {
	Name        string
	Constraints []Type
}

// Member is anything that can appear as a type member: a Field, Property,
// Method, Constructor, nested TypeDeclaration, Delegate, BlankLine, or
// Comment.
type Member interface {
	Node
	memberNode()
}

// Field is `[Attributes] Modifiers Type Name [= Init];`.
type Field struct {
	Attributes []Attribute
	Modifiers  []Modifier
	Type       Type
	Name       string
	Init       Expression
}

func (*Field) Kind() NodeKind { return KindField }
func (*Field) memberNode()    {}

// Property is an auto-property (`{ get; set; }`, GetterBody/SetterBody both
// nil) or a full-body property. HasSetter false with IsInitOnly true
// produces an `init`-only accessor instead of `set`.
type Property struct {
	Attributes  []Attribute
	Modifiers   []Modifier
	Type        Type
	Name        string
	HasGetter   bool
	HasSetter   bool
	IsInitOnly  bool
	GetterBody  *Block // nil for an auto-implemented getter
	SetterBody  *Block // nil for an auto-implemented setter
	Initializer Expression
}

func (*Property) Kind() NodeKind { return KindProperty }
func (*Property) memberNode()    {}

// Method is a method declaration. Body is nil for an abstract or interface
// method. IsIterator marks a method whose Body contains yield statements,
// informing the printer only insofar as it must not special-case anything —
// the Body already contains YieldReturn/YieldBreak nodes verbatim.
type Method struct {
	Attributes []Attribute
	Modifiers  []Modifier
	ReturnType Type
	Name       string
	TypeParams []TypeParamConstraint
	Params     []Parameter
	Body       *Block
	IsIterator bool
}

func (*Method) Kind() NodeKind { return KindMethod }
func (*Method) memberNode()    {}

// ConstructorInitializer is a `: base(args)` or `: this(args)` clause.
type ConstructorInitializer struct {
	CallsBase bool // false means `: this(...)`
	Arguments []Expression
}

// Constructor is a constructor declaration.
type Constructor struct {
	Attributes  []Attribute
	Modifiers   []Modifier
	Name        string
	Params      []Parameter
	Initializer *ConstructorInitializer
	Body        *Block
}

func (*Constructor) Kind() NodeKind { return KindConstructor }
func (*Constructor) memberNode()    {}

// Delegate is a `delegate ReturnType Name(Params);` declaration.
type Delegate struct {
	Attributes []Attribute
	Modifiers  []Modifier
	ReturnType Type
	Name       string
	TypeParams []TypeParamConstraint
	Params     []Parameter
}

func (*Delegate) Kind() NodeKind { return KindDelegate }
func (*Delegate) memberNode()    {}

const (
	KindField       NodeKind = "Field"
	KindProperty    NodeKind = "Property"
	KindMethod      NodeKind = "Method"
	KindConstructor NodeKind = "Constructor"
	KindDelegate    NodeKind = "Delegate"
)
