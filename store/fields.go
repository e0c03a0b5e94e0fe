package store

import (
	"fmt"
	"strings"

	"github.com/mediancode/apidesign/clone"
	"github.com/mediancode/apidesign/integrity"
	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// FieldStore owns the field collection.
type FieldStore struct {
	ctx    *Context
	fields []types.Field
}

// All returns the fields in insertion order.
func (s *FieldStore) All() []types.Field {
	out := make([]types.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// GetByID returns the field or nil.
func (s *FieldStore) GetByID(id string) *types.Field {
	for i := range s.fields {
		if s.fields[i].ID == id {
			f := clone.MustOf(s.fields[i])
			return &f
		}
	}
	return nil
}

// ByNamespace returns the fields scoped to a namespace.
func (s *FieldStore) ByNamespace(namespaceID string) []types.Field {
	var out []types.Field
	for _, f := range s.fields {
		if f.NamespaceID == namespaceID {
			out = append(out, f)
		}
	}
	return out
}

// CountByNamespace returns the number of fields in a namespace.
func (s *FieldStore) CountByNamespace(namespaceID string) int {
	return len(s.ByNamespace(namespaceID))
}

// FieldOptions carries the optional attributes for Create.
type FieldOptions struct {
	Type         types.FieldType
	Description  string
	DefaultValue string
	Validators   []types.FieldValidator
}

// Create adds a field. Name is unique case-insensitively within the
// namespace; a collision returns nil, signaling no-op.
func (s *FieldStore) Create(name, namespaceID string, opts FieldOptions) *types.Field {
	if validation.ValidateName(name, "field") != nil {
		return nil
	}
	for _, f := range s.fields {
		if f.NamespaceID == namespaceID && validation.EqualFold(f.Name, name) {
			return nil
		}
	}
	if opts.Type == "" {
		opts.Type = types.FieldTypeString
	}
	f := types.Field{
		ID:           s.ctx.ids.Generate("field"),
		NamespaceID:  namespaceID,
		Name:         name,
		Type:         opts.Type,
		Description:  opts.Description,
		DefaultValue: opts.DefaultValue,
		Validators:   opts.Validators,
	}
	s.fields = append(s.fields, f)
	s.ctx.log.Debug().Str("field", f.ID).Str("name", name).Msg("field created")
	out := clone.MustOf(f)
	return &out
}

// FieldUpdate is a partial update; nil fields are left untouched.
type FieldUpdate struct {
	Name         *string
	Type         *types.FieldType
	Description  *string
	DefaultValue *string
	Validators   *[]types.FieldValidator
}

// Update merges a partial update. A rename colliding case-insensitively with
// a sibling is refused.
func (s *FieldStore) Update(id string, upd FieldUpdate) error {
	for i := range s.fields {
		if s.fields[i].ID != id {
			continue
		}
		if upd.Name != nil {
			for _, other := range s.fields {
				if other.ID != id && other.NamespaceID == s.fields[i].NamespaceID &&
					validation.EqualFold(other.Name, *upd.Name) {
					return fmt.Errorf("field name %q is already taken in this namespace", *upd.Name)
				}
			}
			s.fields[i].Name = *upd.Name
		}
		if upd.Type != nil {
			s.fields[i].Type = *upd.Type
		}
		if upd.Description != nil {
			s.fields[i].Description = *upd.Description
		}
		if upd.DefaultValue != nil {
			s.fields[i].DefaultValue = *upd.DefaultValue
		}
		if upd.Validators != nil {
			s.fields[i].Validators = *upd.Validators
		}
		return nil
	}
	return fmt.Errorf("field not found: %s", id)
}

// Delete removes a field unless endpoints still reference it.
func (s *FieldStore) Delete(id string) types.DeletionResult {
	for i := range s.fields {
		if s.fields[i].ID != id {
			continue
		}
		f := s.fields[i]
		if res := integrity.CheckFieldDeletion(f.Name, f.UsedInAPIs); !res.OK {
			return res
		}
		s.fields = append(s.fields[:i], s.fields[i+1:]...)
		s.ctx.log.Debug().Str("field", id).Msg("field deleted")
		return types.Deleted(fmt.Sprintf("Deleted field %q", f.Name))
	}
	return types.DeletionBlocked(fmt.Sprintf("field not found: %s", id))
}

// Search filters fields by a case-insensitive substring match over name,
// description, type, and default value. An empty query returns the input
// unchanged.
func (s *FieldStore) Search(fields []types.Field, query string) []types.Field {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return fields
	}
	var out []types.Field
	for _, f := range fields {
		if containsFold(f.Name, query) ||
			containsFold(f.Description, query) ||
			containsFold(string(f.Type), query) ||
			containsFold(f.DefaultValue, query) {
			out = append(out, f)
		}
	}
	return out
}

// markUsedIn records an endpoint reference on a field. Idempotent.
func (s *FieldStore) markUsedIn(fieldID, endpointID string) {
	for i := range s.fields {
		if s.fields[i].ID != fieldID {
			continue
		}
		for _, id := range s.fields[i].UsedInAPIs {
			if id == endpointID {
				return
			}
		}
		s.fields[i].UsedInAPIs = append(s.fields[i].UsedInAPIs, endpointID)
		return
	}
}

// unmarkUsedIn removes an endpoint reference from a field.
func (s *FieldStore) unmarkUsedIn(fieldID, endpointID string) {
	for i := range s.fields {
		if s.fields[i].ID != fieldID {
			continue
		}
		refs := s.fields[i].UsedInAPIs
		for j, id := range refs {
			if id == endpointID {
				s.fields[i].UsedInAPIs = append(refs[:j], refs[j+1:]...)
				return
			}
		}
		return
	}
}

// containsFold reports a case-insensitive substring match; query must already
// be lowercased.
func containsFold(haystack, query string) bool {
	return strings.Contains(strings.ToLower(haystack), query)
}
