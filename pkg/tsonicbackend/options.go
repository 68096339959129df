// Package tsonicbackend is the public façade over the IR→C# lowering
// engine: it wraps internal/orchestrate's per-module pipeline behind a
// stable entry point (Lower/LowerModules) and a plain configuration struct
// (Options) that can be authored as a literal or loaded from YAML
// (LoadOptions), mirroring the teacher's single-package-façade shape
// (`pkg/dwscript`, wrapping its own internal lexer/parser/interp pipeline).
package tsonicbackend

import (
	"fmt"

	"github.com/tsonic-lang/backend/internal/emitter"
	"github.com/tsonic-lang/backend/internal/ir"
)

// Options is the engine's configuration surface (spec.md §6.3): rootNamespace,
// indent width, an optional external module map, and the set of non-exported
// local type names that must still be emitted public. Indent is carried into
// internal/emitter.Options, but the printer does not read it: emitted code
// is always indented with 4 spaces per level.
type Options struct {
	RootNamespace    string                    `yaml:"rootNamespace"`
	Indent           int                       `yaml:"indent,omitempty"`
	ModuleMap        map[string]ModuleMapEntry `yaml:"moduleMap,omitempty"`
	PublicLocalTypes []string                  `yaml:"publicLocalTypes,omitempty"`
}

// ModuleMapEntry describes one external module the engine's own lowering
// pass needs to resolve types against but is not itself lowering in this
// run — another file in the same compilation, or the frontend's synthetic
// `__tsonic_anonymous_types` entry carrying object-literal shapes (spec.md
// §9 Open Question).
type ModuleMapEntry struct {
	Namespace        string                 `yaml:"namespace"`
	ClassName        string                 `yaml:"className,omitempty"`
	FilePath         string                 `yaml:"filePath,omitempty"`
	HasTypeCollision bool                   `yaml:"hasTypeCollision,omitempty"`
	LocalTypes       map[string]LocalType   `yaml:"localTypes,omitempty"`
}

// LocalType is the YAML-authorable counterpart of internal/emitter.LocalTypeInfo:
// enough shape information to resolve a property access or alias chain
// against a type declared outside the current lowering batch.
type LocalType struct {
	// Kind is one of "class", "interface", "enum", "typeAlias".
	Kind           string             `yaml:"kind"`
	TypeParameters []string           `yaml:"typeParameters,omitempty"`
	AliasedType    *TypeRef           `yaml:"aliasedType,omitempty"`
	Members        map[string]TypeRef `yaml:"members,omitempty"`
}

// TypeRef is a small YAML-authorable tagged-variant mirror of internal/ir.Type,
// covering the handful of shapes LocalType.Members/AliasedType need to
// describe. Kind dispatch follows the same "peek the discriminator, build
// the matching concrete node" convention internal/ir.DecodeModule uses for
// the wire-format JSON.
type TypeRef struct {
	// Kind is one of "primitive", "reference", "union", "array",
	// "dictionary", "function", "typeParam", "tuple".
	Kind string `yaml:"kind"`

	// Name carries the primitive name, the reference type name, or the
	// type-parameter name, depending on Kind.
	Name string `yaml:"name,omitempty"`

	// TypeArguments carries a reference type's generic arguments, or a
	// union's arms, or a tuple's elements, depending on Kind.
	TypeArguments []TypeRef `yaml:"typeArguments,omitempty"`

	// Element carries an array's element type.
	Element *TypeRef `yaml:"element,omitempty"`

	// Key/Value carry a dictionary's key/value types.
	Key   *TypeRef `yaml:"key,omitempty"`
	Value *TypeRef `yaml:"value,omitempty"`

	// Params/Return carry a function type's parameter and return types.
	Params []TypeRef `yaml:"params,omitempty"`
	Return *TypeRef  `yaml:"return,omitempty"`
}

func (t TypeRef) toIR() (ir.Type, error) {
	switch t.Kind {
	case "primitive":
		return &ir.PrimitiveType{Name: ir.PrimitiveName(t.Name)}, nil
	case "reference":
		args, err := toIRTypes(t.TypeArguments)
		if err != nil {
			return nil, err
		}
		return &ir.ReferenceType{Name: t.Name, TypeArguments: args}, nil
	case "union":
		arms, err := toIRTypes(t.TypeArguments)
		if err != nil {
			return nil, err
		}
		return &ir.UnionType{Arms: arms}, nil
	case "array":
		if t.Element == nil {
			return nil, fmt.Errorf("tsonicbackend: array TypeRef missing element")
		}
		elem, err := t.Element.toIR()
		if err != nil {
			return nil, err
		}
		return &ir.ArrayType{Element: elem}, nil
	case "dictionary":
		if t.Key == nil || t.Value == nil {
			return nil, fmt.Errorf("tsonicbackend: dictionary TypeRef missing key or value")
		}
		key, err := t.Key.toIR()
		if err != nil {
			return nil, err
		}
		value, err := t.Value.toIR()
		if err != nil {
			return nil, err
		}
		return &ir.DictionaryType{Key: key, Value: value}, nil
	case "function":
		params, err := toIRTypes(t.Params)
		if err != nil {
			return nil, err
		}
		var ret ir.Type
		if t.Return != nil {
			ret, err = t.Return.toIR()
			if err != nil {
				return nil, err
			}
		}
		return &ir.FunctionType{ReturnType: ret, Params: params}, nil
	case "typeParam":
		return &ir.TypeParameterType{Name: t.Name}, nil
	case "tuple":
		elems, err := toIRTypes(t.TypeArguments)
		if err != nil {
			return nil, err
		}
		return &ir.TupleType{Elements: elems}, nil
	default:
		return nil, fmt.Errorf("tsonicbackend: unknown TypeRef kind %q", t.Kind)
	}
}

func toIRTypes(refs []TypeRef) ([]ir.Type, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]ir.Type, len(refs))
	for i, r := range refs {
		t, err := r.toIR()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func localTypeKind(name string) (emitter.LocalTypeKind, error) {
	switch name {
	case "class":
		return emitter.LocalTypeClass, nil
	case "interface":
		return emitter.LocalTypeInterface, nil
	case "enum":
		return emitter.LocalTypeEnum, nil
	case "typeAlias":
		return emitter.LocalTypeAlias, nil
	default:
		return 0, fmt.Errorf("tsonicbackend: unknown LocalType kind %q", name)
	}
}

func (lt LocalType) toEmitter() (*emitter.LocalTypeInfo, error) {
	kind, err := localTypeKind(lt.Kind)
	if err != nil {
		return nil, err
	}
	info := &emitter.LocalTypeInfo{Kind: kind, TypeParameters: lt.TypeParameters}
	if lt.AliasedType != nil {
		aliased, err := lt.AliasedType.toIR()
		if err != nil {
			return nil, err
		}
		info.AliasedType = aliased
	}
	if len(lt.Members) > 0 {
		info.Members = map[string]ir.Type{}
		for name, ref := range lt.Members {
			t, err := ref.toIR()
			if err != nil {
				return nil, fmt.Errorf("tsonicbackend: member %q: %w", name, err)
			}
			info.Members[name] = t
		}
	}
	return info, nil
}

// toEmitterOptions converts the public Options into the internal/emitter
// configuration surface internal/orchestrate.Lower actually drives.
func (o Options) toEmitterOptions() (*emitter.Options, error) {
	indent := o.Indent
	if indent == 0 {
		indent = 4
	}
	eopts := &emitter.Options{
		RootNamespace: o.RootNamespace,
		Indent:        indent,
	}
	if len(o.ModuleMap) > 0 {
		eopts.ModuleMap = map[string]*emitter.ModuleMapEntry{}
		for path, entry := range o.ModuleMap {
			localTypes := map[string]*emitter.LocalTypeInfo{}
			for name, lt := range entry.LocalTypes {
				info, err := lt.toEmitter()
				if err != nil {
					return nil, fmt.Errorf("tsonicbackend: moduleMap[%q].localTypes[%q]: %w", path, name, err)
				}
				localTypes[name] = info
			}
			eopts.ModuleMap[path] = &emitter.ModuleMapEntry{
				Namespace:        entry.Namespace,
				ClassName:        entry.ClassName,
				FilePath:         entry.FilePath,
				HasTypeCollision: entry.HasTypeCollision,
				LocalTypes:       localTypes,
			}
		}
	}
	if len(o.PublicLocalTypes) > 0 {
		eopts.PublicLocalTypes = map[string]bool{}
		for _, name := range o.PublicLocalTypes {
			eopts.PublicLocalTypes[name] = true
		}
	}
	return eopts, nil
}
