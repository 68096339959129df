package ir

import (
	"testing"

	"github.com/tidwall/gjson"
)

func parseJSON(doc string) gjson.Result {
	return gjson.Parse(doc)
}

func TestDecodeModuleBasic(t *testing.T) {
	doc := []byte(`{
		"filePath": "widgets.ts",
		"namespace": "Demo.Widgets",
		"exports": ["Widget"],
		"body": [
			{
				"kind": "VariableStatement",
				"varKind": "const",
				"exported": true,
				"declarators": [
					{
						"pattern": {"kind": "IdentifierPattern", "name": "count"},
						"typeAnnotation": {"kind": "PrimitiveType", "name": "number"},
						"init": {"kind": "NumericLiteral", "raw": "1", "value": 1}
					}
				]
			}
		]
	}`)

	m, err := DecodeModule(doc)
	if err != nil {
		t.Fatalf("DecodeModule() error = %v", err)
	}
	if m.FilePath != "widgets.ts" || m.Namespace != "Demo.Widgets" {
		t.Fatalf("unexpected module header: %+v", m)
	}
	if len(m.Exports) != 1 || m.Exports[0] != "Widget" {
		t.Errorf("Exports = %v, want [Widget]", m.Exports)
	}
	if len(m.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(m.Body))
	}
	vs, ok := m.Body[0].(*VariableStatement)
	if !ok {
		t.Fatalf("Body[0] is %T, want *VariableStatement", m.Body[0])
	}
	if vs.VarKind != VarConst || !vs.Exported {
		t.Errorf("VariableStatement = %+v, want const+exported", vs)
	}
	if len(vs.Declarators) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(vs.Declarators))
	}
	decl := vs.Declarators[0]
	ident, ok := decl.Pattern.(*IdentifierPattern)
	if !ok || ident.Name != "count" {
		t.Errorf("Pattern = %+v, want IdentifierPattern(count)", decl.Pattern)
	}
	if _, ok := decl.TypeAnnotation.(*PrimitiveType); !ok {
		t.Errorf("TypeAnnotation = %T, want *PrimitiveType", decl.TypeAnnotation)
	}
	num, ok := decl.Init.(*NumericLiteral)
	if !ok || num.Value != 1 {
		t.Errorf("Init = %+v, want NumericLiteral(1)", decl.Init)
	}
}

func TestDecodeModuleInvalidJSON(t *testing.T) {
	_, err := DecodeModule([]byte("not json"))
	if err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestDecodeTypeVariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Kind
	}{
		{"primitive", `{"kind":"PrimitiveType","name":"string"}`, KindPrimitiveType},
		{"reference", `{"kind":"ReferenceType","name":"Widget"}`, KindReferenceType},
		{"array", `{"kind":"ArrayType","element":{"kind":"PrimitiveType","name":"number"}}`, KindArrayType},
		{"union", `{"kind":"UnionType","arms":[{"kind":"PrimitiveType","name":"number"},{"kind":"PrimitiveType","name":"null"}]}`, KindUnionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := DecodeType(parseJSON(tt.doc))
			if err != nil {
				t.Fatalf("DecodeType() error = %v", err)
			}
			if typ.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", typ.Kind(), tt.want)
			}
		})
	}
}

func TestDecodeTypeUnknownKind(t *testing.T) {
	_, err := DecodeType(parseJSON(`{"kind":"BogusType"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown type kind")
	}
}

func TestDecodeExpressionBinary(t *testing.T) {
	expr, err := DecodeExpression(parseJSON(`{
		"kind": "BinaryExpression",
		"operator": "+",
		"left": {"kind": "NumericLiteral", "raw": "1", "value": 1},
		"right": {"kind": "NumericLiteral", "raw": "2", "value": 2}
	}`))
	if err != nil {
		t.Fatalf("DecodeExpression() error = %v", err)
	}
	bin, ok := expr.(*BinaryExpression)
	if !ok {
		t.Fatalf("expr is %T, want *BinaryExpression", expr)
	}
	if bin.Operator != "+" {
		t.Errorf("Operator = %q, want %q", bin.Operator, "+")
	}
	if _, ok := bin.Left.(*NumericLiteral); !ok {
		t.Errorf("Left = %T, want *NumericLiteral", bin.Left)
	}
}

func TestDecodeExpressionUnknownKind(t *testing.T) {
	_, err := DecodeExpression(parseJSON(`{"kind":"BogusExpression"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown expression kind")
	}
}

func TestDecodeStatementIf(t *testing.T) {
	stmt, err := DecodeStatement(parseJSON(`{
		"kind": "IfStatement",
		"test": {"kind": "BooleanLiteral", "value": true},
		"consequent": {"kind": "BlockStatement", "body": []}
	}`))
	if err != nil {
		t.Fatalf("DecodeStatement() error = %v", err)
	}
	ifs, ok := stmt.(*IfStatement)
	if !ok {
		t.Fatalf("stmt is %T, want *IfStatement", stmt)
	}
	if ifs.Alternate != nil {
		t.Errorf("expected no alternate, got %v", ifs.Alternate)
	}
	if _, ok := ifs.Consequent.(*Block); !ok {
		t.Errorf("Consequent = %T, want *Block", ifs.Consequent)
	}
}

func TestDecodeStatementUnknownKind(t *testing.T) {
	_, err := DecodeStatement(parseJSON(`{"kind":"BogusStatement"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown statement kind")
	}
}
