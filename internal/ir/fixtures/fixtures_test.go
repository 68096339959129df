package fixtures

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestAnonymousTypesModuleMapAlias(t *testing.T) {
	doc, err := AnonymousTypesModuleMap("AnonPoint", "typeAlias", `{"kind":"ReferenceType","name":"Point"}`)
	if err != nil {
		t.Fatalf("AnonymousTypesModuleMap() error = %v", err)
	}

	kind := gjson.Get(doc, "__tsonic_anonymous_types.localTypes.AnonPoint.kind").String()
	if kind != "typeAlias" {
		t.Errorf("kind = %q, want %q", kind, "typeAlias")
	}
	aliasedName := gjson.Get(doc, "__tsonic_anonymous_types.localTypes.AnonPoint.aliasedType.name").String()
	if aliasedName != "Point" {
		t.Errorf("aliasedType.name = %q, want %q", aliasedName, "Point")
	}
}

func TestAnonymousTypesModuleMapNoAlias(t *testing.T) {
	doc, err := AnonymousTypesModuleMap("Shape", "class", "")
	if err != nil {
		t.Fatalf("AnonymousTypesModuleMap() error = %v", err)
	}
	if gjson.Get(doc, "__tsonic_anonymous_types.localTypes.Shape.aliasedType").Exists() {
		t.Errorf("expected no aliasedType field when aliasedTypeJSON is empty")
	}
	kind := gjson.Get(doc, "__tsonic_anonymous_types.localTypes.Shape.kind").String()
	if kind != "class" {
		t.Errorf("kind = %q, want %q", kind, "class")
	}
}
