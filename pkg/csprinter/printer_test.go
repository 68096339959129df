package csprinter

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

func TestPrintCompilationUnitEnum(t *testing.T) {
	cu := &csharpast.CompilationUnit{
		Header: "// Generated from colors.ts",
		Namespace: &csharpast.NamespaceDeclaration{
			Name: "Demo.Colors",
			Members: []csharpast.NamespaceMember{
				&csharpast.TypeDeclaration{
					DeclKind:  csharpast.TypeEnum,
					Modifiers: []csharpast.Modifier{csharpast.ModPublic},
					Name:      "Color",
					EnumMembers: []csharpast.EnumMember{
						{Name: "Red"},
						{Name: "Green"},
						{Name: "Blue"},
					},
				},
			},
		},
	}

	text, err := PrintCompilationUnit(cu)
	if err != nil {
		t.Fatalf("PrintCompilationUnit() error = %v", err)
	}
	snaps.MatchSnapshot(t, text)
}

func TestPrintCompilationUnitClassWithMethod(t *testing.T) {
	cu := &csharpast.CompilationUnit{
		Usings: []csharpast.Using{
			{Namespace: "System"},
			{Namespace: "System.Collections.Generic"},
		},
		Namespace: &csharpast.NamespaceDeclaration{
			Name: "Demo.Widgets",
			Members: []csharpast.NamespaceMember{
				&csharpast.TypeDeclaration{
					DeclKind:  csharpast.TypeClass,
					Modifiers: []csharpast.Modifier{csharpast.ModPublic, csharpast.ModSealed},
					Name:      "Widget",
					Members: []csharpast.Member{
						&csharpast.Field{
							Modifiers: []csharpast.Modifier{csharpast.ModPublic},
							Type:      &csharpast.PredefinedType{Name: csharpast.PredefInt},
							Name:      "Count",
						},
						&csharpast.Method{
							Modifiers:  []csharpast.Modifier{csharpast.ModPublic},
							ReturnType: &csharpast.PredefinedType{Name: csharpast.PredefInt},
							Name:       "Double",
							Params: []csharpast.Parameter{
								{Type: &csharpast.PredefinedType{Name: csharpast.PredefInt}, Name: "value"},
							},
							Body: &csharpast.Block{
								Statements: []csharpast.Statement{
									&csharpast.Return{
										Argument: &csharpast.Literal{Text: "value * 2"},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	text, err := PrintCompilationUnit(cu)
	if err != nil {
		t.Fatalf("PrintCompilationUnit() error = %v", err)
	}
	snaps.MatchSnapshot(t, text)
}

func TestPrintCompilationUnitNoNamespace(t *testing.T) {
	text, err := PrintCompilationUnit(&csharpast.CompilationUnit{})
	if err != nil {
		t.Fatalf("PrintCompilationUnit() error = %v", err)
	}
	if text != "" {
		t.Errorf("PrintCompilationUnit() with no namespace = %q, want empty", text)
	}
}

func TestPrintCompilationUnitUnknownNamespaceMemberRecoversToError(t *testing.T) {
	cu := &csharpast.CompilationUnit{
		Namespace: &csharpast.NamespaceDeclaration{
			Name:    "Demo",
			Members: []csharpast.NamespaceMember{fakeNamespaceMember{}},
		},
	}
	_, err := PrintCompilationUnit(cu)
	if err == nil {
		t.Fatalf("expected an error for an unrecognized namespace member")
	}
	if _, ok := err.(*ICE); !ok {
		t.Fatalf("expected an *ICE error, got %T", err)
	}
}

type fakeNamespaceMember struct{ csharpast.BlankLine }

func (fakeNamespaceMember) Kind() csharpast.NodeKind { return "Bogus" }
