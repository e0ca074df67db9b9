package propmap

import (
	"fmt"

	"github.com/vmunix/animeta/internal/process"
)

// Mapping copies one value from a source's data onto a Record.
type Mapping struct {
	Name        string
	Source      string
	PayloadType string
	Field       Field

	apply    func(process.SourceData, *Record)
	canApply func(process.SourceData, *Record) bool
}

// CanApply reports whether the mapping applies to sd given what the record
// already holds.
func (m Mapping) CanApply(sd process.SourceData, r *Record) bool {
	if m.canApply == nil {
		return true
	}
	return m.canApply(sd, r)
}

// Apply writes the mapped value to r.
func (m Mapping) Apply(sd process.SourceData, r *Record) {
	m.apply(sd, r)
}

// Map builds a mapping over a payload of type P. Data carrying any other
// payload type is skipped.
func Map[P any](name string, field Field, apply func(P, *Record)) Mapping {
	return MapIf(name, field, nil, apply)
}

// MapIf is Map with a predicate. A nil predicate always passes.
func MapIf[P any](name string, field Field, when func(P, *Record) bool, apply func(P, *Record)) Mapping {
	var zero P
	return Mapping{
		Name:        name,
		PayloadType: fmt.Sprintf("%T", zero),
		Field:       field,
		apply: func(sd process.SourceData, r *Record) {
			apply(sd.Payload.(P), r)
		},
		canApply: func(sd process.SourceData, r *Record) bool {
			p, ok := sd.Payload.(P)
			if !ok {
				return false
			}
			return when == nil || when(p, r)
		},
	}
}

// MapIdentifier builds a mapping over the data's identifier. It applies to
// any payload.
func MapIdentifier(name string, field Field, when func(process.ItemIdentifier, *Record) bool, apply func(process.ItemIdentifier, *Record)) Mapping {
	m := Mapping{
		Name:        name,
		PayloadType: "Identifier",
		Field:       field,
		apply: func(sd process.SourceData, r *Record) {
			apply(sd.Identifier, r)
		},
	}
	if when != nil {
		m.canApply = func(sd process.SourceData, r *Record) bool {
			return when(sd.Identifier, r)
		}
	}
	return m
}

// MapID builds a mapping over the data's catalog id. It is skipped when
// the data has no id.
func MapID(name string, field Field, apply func(int, *Record)) Mapping {
	return Mapping{
		Name:        name,
		PayloadType: "Id",
		Field:       field,
		apply: func(sd process.SourceData, r *Record) {
			apply(sd.ID.MustGet(), r)
		},
		canApply: func(sd process.SourceData, _ *Record) bool {
			return sd.ID.IsPresent()
		},
	}
}
