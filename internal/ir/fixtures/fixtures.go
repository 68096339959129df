// Package fixtures builds small moduleMap JSON fragments for tests that need
// to exercise the wire format's tagged-variant shapes without hand-assembling
// a full JSON document. It patches a single local-type entry onto an empty
// object with sjson rather than formatting the whole document inline.
package fixtures

import "github.com/tidwall/sjson"

// AnonymousTypesModuleMap returns a moduleMap-shaped JSON fragment carrying a
// single `__tsonic_anonymous_types` entry (spec.md §9: the synthetic
// moduleMap slot the frontend uses to describe object-literal shapes it
// cannot name) with exactly one local type registered under typeName.
//
// kind is the wire spelling of internal/emitter.LocalTypeKind ("class",
// "interface", "enum", or "typeAlias"). aliasedTypeJSON is a raw
// internal/ir.Type JSON fragment (decodable with ir.DecodeType) and is only
// meaningful when kind == "typeAlias"; pass "" to omit it.
func AnonymousTypesModuleMap(typeName, kind, aliasedTypeJSON string) (string, error) {
	const base = `{"__tsonic_anonymous_types":{"localTypes":{}}}`
	path := "__tsonic_anonymous_types.localTypes." + typeName

	out, err := sjson.Set(base, path+".kind", kind)
	if err != nil {
		return "", err
	}
	if aliasedTypeJSON != "" {
		out, err = sjson.SetRaw(out, path+".aliasedType", aliasedTypeJSON)
		if err != nil {
			return "", err
		}
	}
	return out, nil
}
