package store

import (
	"fmt"
	"strings"

	"github.com/mediancode/apidesign/clone"
	"github.com/mediancode/apidesign/integrity"
	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// ObjectStore owns the object-definition collection.
type ObjectStore struct {
	ctx     *Context
	objects []types.ObjectDefinition
}

// All returns the objects in insertion order.
func (s *ObjectStore) All() []types.ObjectDefinition {
	out := make([]types.ObjectDefinition, len(s.objects))
	copy(out, s.objects)
	return out
}

// GetByID returns the object or nil.
func (s *ObjectStore) GetByID(id string) *types.ObjectDefinition {
	for i := range s.objects {
		if s.objects[i].ID == id {
			o := clone.MustOf(s.objects[i])
			return &o
		}
	}
	return nil
}

// ByNamespace returns the objects scoped to a namespace.
func (s *ObjectStore) ByNamespace(namespaceID string) []types.ObjectDefinition {
	var out []types.ObjectDefinition
	for _, o := range s.objects {
		if o.NamespaceID == namespaceID {
			out = append(out, o)
		}
	}
	return out
}

// ObjectOptions carries the optional attributes for Create.
type ObjectOptions struct {
	Description string
	Fields      []types.ObjectFieldReference
}

// Create adds an object definition. Name is unique case-insensitively within
// the namespace; a collision returns nil.
func (s *ObjectStore) Create(name, namespaceID string, opts ObjectOptions) *types.ObjectDefinition {
	if validation.ValidateName(name, "object") != nil {
		return nil
	}
	for _, o := range s.objects {
		if o.NamespaceID == namespaceID && validation.EqualFold(o.Name, name) {
			return nil
		}
	}
	o := types.ObjectDefinition{
		ID:          s.ctx.ids.Generate("object"),
		NamespaceID: namespaceID,
		Name:        name,
		Description: opts.Description,
		Fields:      opts.Fields,
	}
	s.objects = append(s.objects, o)
	s.ctx.log.Debug().Str("object", o.ID).Str("name", name).Msg("object created")
	out := clone.MustOf(o)
	return &out
}

// ObjectUpdate is a partial update; nil fields are left untouched.
type ObjectUpdate struct {
	Name        *string
	Description *string
	Fields      *[]types.ObjectFieldReference
}

// Update merges a partial update.
func (s *ObjectStore) Update(id string, upd ObjectUpdate) error {
	for i := range s.objects {
		if s.objects[i].ID != id {
			continue
		}
		if upd.Name != nil {
			for _, other := range s.objects {
				if other.ID != id && other.NamespaceID == s.objects[i].NamespaceID &&
					validation.EqualFold(other.Name, *upd.Name) {
					return fmt.Errorf("object name %q is already taken in this namespace", *upd.Name)
				}
			}
			s.objects[i].Name = *upd.Name
		}
		if upd.Description != nil {
			s.objects[i].Description = *upd.Description
		}
		if upd.Fields != nil {
			s.objects[i].Fields = *upd.Fields
		}
		return nil
	}
	return fmt.Errorf("object not found: %s", id)
}

// Delete removes an object unless endpoints still reference it.
func (s *ObjectStore) Delete(id string) types.DeletionResult {
	for i := range s.objects {
		if s.objects[i].ID != id {
			continue
		}
		o := s.objects[i]
		if res := integrity.CheckObjectDeletion(o.Name, o.UsedInAPIs); !res.OK {
			return res
		}
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
		s.ctx.log.Debug().Str("object", id).Msg("object deleted")
		return types.Deleted(fmt.Sprintf("Deleted object %q", o.Name))
	}
	return types.DeletionBlocked(fmt.Sprintf("object not found: %s", id))
}

// ResolveFields looks up an object's field references. Broken references
// (deleted fields) are filtered out, never an error.
func (s *ObjectStore) ResolveFields(o types.ObjectDefinition) []types.Field {
	var out []types.Field
	for _, ref := range o.Fields {
		if f := s.ctx.Fields.GetByID(ref.FieldID); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// Search filters objects by a case-insensitive substring match over name and
// description.
func (s *ObjectStore) Search(objects []types.ObjectDefinition, query string) []types.ObjectDefinition {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return objects
	}
	var out []types.ObjectDefinition
	for _, o := range objects {
		if containsFold(o.Name, query) || containsFold(o.Description, query) {
			out = append(out, o)
		}
	}
	return out
}

// markUsedIn records an endpoint reference on an object. Idempotent.
func (s *ObjectStore) markUsedIn(objectID, endpointID string) {
	for i := range s.objects {
		if s.objects[i].ID != objectID {
			continue
		}
		for _, id := range s.objects[i].UsedInAPIs {
			if id == endpointID {
				return
			}
		}
		s.objects[i].UsedInAPIs = append(s.objects[i].UsedInAPIs, endpointID)
		return
	}
}

// unmarkUsedIn removes an endpoint reference from an object.
func (s *ObjectStore) unmarkUsedIn(objectID, endpointID string) {
	for i := range s.objects {
		if s.objects[i].ID != objectID {
			continue
		}
		refs := s.objects[i].UsedInAPIs
		for j, id := range refs {
			if id == endpointID {
				s.objects[i].UsedInAPIs = append(refs[:j], refs[j+1:]...)
				return
			}
		}
		return
	}
}
