package store

import (
	"strings"

	"github.com/mediancode/apidesign/types"
)

// TypeStore exposes the fixed primitive type catalog with usage counts
// derived from the field collection. Counts are recomputed on every call,
// never stored.
type TypeStore struct {
	ctx *Context
}

// TypeUsage is one row of the types page: a type name and how many fields
// currently use it.
type TypeUsage struct {
	Name         string `json:"name"`
	UsedInFields int    `json:"usedInFields"`
}

// Abstract type names reported alongside the primitives. "numeric" counts
// integer plus float fields; "collection" is reserved and always zero.
const (
	TypeNumeric    = "numeric"
	TypeCollection = "collection"
)

// Usage returns one row per primitive type plus the abstract numeric and
// collection rows.
func (s *TypeStore) Usage() []TypeUsage {
	rows := make([]TypeUsage, 0, len(types.FieldTypes())+2)
	for _, t := range types.FieldTypes() {
		rows = append(rows, TypeUsage{Name: string(t), UsedInFields: s.UsageFor(string(t))})
	}
	rows = append(rows,
		TypeUsage{Name: TypeNumeric, UsedInFields: s.UsageFor(TypeNumeric)},
		TypeUsage{Name: TypeCollection, UsedInFields: 0},
	)
	return rows
}

// UsageFor counts the fields using one type name. Primitive names count
// direct matches; "numeric" counts integer and float together.
func (s *TypeStore) UsageFor(name string) int {
	switch name {
	case TypeCollection:
		return 0
	case TypeNumeric:
		return s.UsageFor(string(types.FieldTypeInteger)) + s.UsageFor(string(types.FieldTypeFloat))
	}
	count := 0
	for _, f := range s.ctx.Fields.fields {
		if string(f.Type) == name {
			count++
		}
	}
	return count
}

// Search filters usage rows by a case-insensitive substring match on the
// type name.
func (s *TypeStore) Search(rows []TypeUsage, query string) []TypeUsage {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	var out []TypeUsage
	for _, r := range rows {
		if containsFold(r.Name, query) {
			out = append(out, r)
		}
	}
	return out
}
