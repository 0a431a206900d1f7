package model

import "slices"

// ModifierKind groups modifiers by what they describe.
type ModifierKind string

// Modifier kinds.
const (
	KindVisibility  ModifierKind = "Visibility"
	KindScope       ModifierKind = "Scope"
	KindMutability  ModifierKind = "Mutability"
	KindInheritance ModifierKind = "Inheritance"
	KindOther       ModifierKind = "Other"
)

// Modifier values.
const (
	Public    = "Public"
	Private   = "Private"
	Protected = "Protected"
	Internal  = "Internal"
	Static    = "Static"
	Const     = "Const"
	Readonly  = "Readonly"
	Volatile  = "Volatile"
	Abstract  = "Abstract"
	Virtual   = "Virtual"
	Override  = "Override"
	Sealed    = "Sealed"
	New       = "New"
	Async     = "Async"
	Extern    = "Extern"
	Partial   = "Partial"
)

//nolint:gochecknoglobals // read-only lookup.
var modifierKinds = map[string]ModifierKind{
	Public:    KindVisibility,
	Private:   KindVisibility,
	Protected: KindVisibility,
	Internal:  KindVisibility,
	Static:    KindScope,
	Const:     KindMutability,
	Readonly:  KindMutability,
	Volatile:  KindMutability,
	Abstract:  KindInheritance,
	Virtual:   KindInheritance,
	Override:  KindInheritance,
	Sealed:    KindInheritance,
	New:       KindInheritance,
}

// Modifier is an immutable (kind, value) pair attached at parse time.
type Modifier struct {
	Kind  ModifierKind `json:"kind"  yaml:"kind"`
	Value string       `json:"value" yaml:"value"`
}

// NewModifier returns the modifier for value, classifying it by kind.
func NewModifier(value string) Modifier {
	kind, ok := modifierKinds[value]
	if !ok {
		kind = KindOther
	}

	return Modifier{Kind: kind, Value: value}
}

// Modifiers is an ordered modifier set.
type Modifiers []Modifier

// Has reports whether any modifier carries value.
func (m Modifiers) Has(value string) bool {
	return slices.ContainsFunc(m, func(mod Modifier) bool { return mod.Value == value })
}
