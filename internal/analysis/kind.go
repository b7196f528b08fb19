package analysis

import (
	"encoding/json"
	"fmt"
)

// The wire format encodes enums as bare capitalized strings. Each kind
// below keeps an exhaustive string↔variant table; anything outside the
// closed vocabulary fails the decode of that record with an
// UnknownVariantError. No partial matching, no fallback variant.

// UnknownVariantError reports an enum-tagged field that held a string
// outside its closed set.
type UnknownVariantError struct {
	Field string
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s variant %q", e.Field, e.Value)
}

// DefKind classifies a symbol definition.
type DefKind uint8

const (
	DefEnum DefKind = iota
	DefTuple
	DefStruct
	DefTrait
	DefFunction
	DefMacro
	DefMod
	DefType
	DefVariable
)

var defKindNames = map[DefKind]string{
	DefEnum:     "Enum",
	DefTuple:    "Tuple",
	DefStruct:   "Struct",
	DefTrait:    "Trait",
	DefFunction: "Function",
	DefMacro:    "Macro",
	DefMod:      "Mod",
	DefType:     "Type",
	DefVariable: "Variable",
}

var defKindByName = invert(defKindNames)

func (k DefKind) String() string {
	if s, ok := defKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k DefKind) MarshalJSON() ([]byte, error) {
	return marshalKind(k, defKindNames, "DefKind")
}

func (k *DefKind) UnmarshalJSON(data []byte) error {
	v, err := unmarshalKind(data, defKindByName, "DefKind")
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// RefKind classifies a symbol use-site. It is a strict subset of DefKind:
// the source format defines no reference kind for Enum, Tuple, Struct,
// Trait or Macro.
type RefKind uint8

const (
	RefFunction RefKind = iota
	RefMod
	RefType
	RefVariable
)

var refKindNames = map[RefKind]string{
	RefFunction: "Function",
	RefMod:      "Mod",
	RefType:     "Type",
	RefVariable: "Variable",
}

var refKindByName = invert(refKindNames)

func (k RefKind) String() string {
	if s, ok := refKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k RefKind) MarshalJSON() ([]byte, error) {
	return marshalKind(k, refKindNames, "RefKind")
}

func (k *RefKind) UnmarshalJSON(data []byte) error {
	v, err := unmarshalKind(data, refKindByName, "RefKind")
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ImportKind classifies an import item.
type ImportKind uint8

const (
	ImportExternCrate ImportKind = iota
	ImportUse
	ImportGlobUse
)

var importKindNames = map[ImportKind]string{
	ImportExternCrate: "ExternCrate",
	ImportUse:         "Use",
	ImportGlobUse:     "GlobUse",
}

var importKindByName = invert(importKindNames)

func (k ImportKind) String() string {
	if s, ok := importKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k ImportKind) MarshalJSON() ([]byte, error) {
	return marshalKind(k, importKindNames, "ImportKind")
}

func (k *ImportKind) UnmarshalJSON(data []byte) error {
	v, err := unmarshalKind(data, importKindByName, "ImportKind")
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func invert[K comparable](names map[K]string) map[string]K {
	out := make(map[string]K, len(names))
	for k, s := range names {
		out[s] = k
	}
	return out
}

func marshalKind[K comparable](k K, names map[K]string, field string) ([]byte, error) {
	s, ok := names[k]
	if !ok {
		return nil, fmt.Errorf("cannot encode out-of-range %s value %v", field, k)
	}
	return json.Marshal(s)
}

func unmarshalKind[K comparable](data []byte, byName map[string]K, field string) (K, error) {
	var zero K
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zero, fmt.Errorf("%s: %w", field, err)
	}
	v, ok := byName[s]
	if !ok {
		return zero, &UnknownVariantError{Field: field, Value: s}
	}
	return v, nil
}
