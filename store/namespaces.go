package store

import (
	"fmt"

	"github.com/mediancode/apidesign/integrity"
	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// NamespaceStore owns the namespace collection and the active-namespace
// pointer. The global namespace is seeded locked and can be neither renamed
// nor deleted; the active pointer always resolves to an existing namespace,
// falling back to global.
type NamespaceStore struct {
	ctx        *Context
	namespaces []types.Namespace
	activeID   string
}

func newNamespaceStore(c *Context) *NamespaceStore {
	return &NamespaceStore{
		ctx:        c,
		namespaces: []types.Namespace{globalNamespace()},
		activeID:   GlobalNamespaceID,
	}
}

func globalNamespace() types.Namespace {
	return types.Namespace{
		ID:          GlobalNamespaceID,
		Name:        "global",
		Description: "Shared definitions visible everywhere",
		Locked:      true,
	}
}

// ensureGlobal re-seeds the locked global namespace if the collection has
// lost it, e.g. after loading a hand-edited workspace file.
func (s *NamespaceStore) ensureGlobal() {
	if s.GetByID(GlobalNamespaceID) != nil {
		return
	}
	s.namespaces = append([]types.Namespace{globalNamespace()}, s.namespaces...)
}

// All returns the namespaces in insertion order.
func (s *NamespaceStore) All() []types.Namespace {
	out := make([]types.Namespace, len(s.namespaces))
	copy(out, s.namespaces)
	return out
}

// GetByID returns the namespace or nil.
func (s *NamespaceStore) GetByID(id string) *types.Namespace {
	for i := range s.namespaces {
		if s.namespaces[i].ID == id {
			ns := s.namespaces[i]
			return &ns
		}
	}
	return nil
}

// Active resolves the active namespace, falling back to global when the
// pointer has gone stale. The fallback target always exists: the global
// namespace is re-seeded if a loaded document dropped it.
func (s *NamespaceStore) Active() types.Namespace {
	if ns := s.GetByID(s.activeID); ns != nil {
		return *ns
	}
	s.ensureGlobal()
	s.activeID = GlobalNamespaceID
	return *s.GetByID(GlobalNamespaceID)
}

// SetActive moves the active pointer. Unknown IDs are refused.
func (s *NamespaceStore) SetActive(id string) error {
	if s.GetByID(id) == nil {
		return fmt.Errorf("namespace not found: %s", id)
	}
	s.activeID = id
	return nil
}

// Create adds a namespace. Names are unique case-insensitively across all
// namespaces; a collision returns nil.
func (s *NamespaceStore) Create(name, description string) *types.Namespace {
	if validation.ValidateName(name, "namespace") != nil {
		return nil
	}
	for _, ns := range s.namespaces {
		if validation.EqualFold(ns.Name, name) {
			return nil
		}
	}
	ns := types.Namespace{
		ID:          s.ctx.ids.Generate("ns"),
		Name:        name,
		Description: description,
	}
	s.namespaces = append(s.namespaces, ns)
	s.ctx.log.Debug().Str("namespace", ns.ID).Str("name", name).Msg("namespace created")
	return &ns
}

// NamespaceUpdate is a partial update; nil fields are left untouched.
type NamespaceUpdate struct {
	Name        *string
	Description *string
}

// Update merges a partial update. Renaming a locked namespace is refused.
func (s *NamespaceStore) Update(id string, upd NamespaceUpdate) error {
	for i := range s.namespaces {
		if s.namespaces[i].ID != id {
			continue
		}
		if upd.Name != nil {
			if s.namespaces[i].Locked {
				return fmt.Errorf("namespace %q is locked and cannot be renamed", s.namespaces[i].Name)
			}
			for _, other := range s.namespaces {
				if other.ID != id && validation.EqualFold(other.Name, *upd.Name) {
					return fmt.Errorf("namespace name %q is already taken", *upd.Name)
				}
			}
			s.namespaces[i].Name = *upd.Name
		}
		if upd.Description != nil {
			s.namespaces[i].Description = *upd.Description
		}
		return nil
	}
	return fmt.Errorf("namespace not found: %s", id)
}

// Delete removes a namespace. Locked namespaces, unknown IDs, and namespaces
// still referenced by any entity are refused. Deleting the active namespace
// moves the active pointer back to global.
func (s *NamespaceStore) Delete(id string) types.DeletionResult {
	ns := s.GetByID(id)
	if ns == nil {
		return types.DeletionBlocked(fmt.Sprintf("namespace not found: %s", id))
	}
	if ns.Locked {
		return types.DeletionBlocked(fmt.Sprintf("Cannot delete namespace %q: it is locked", ns.Name))
	}
	count := s.ctx.entityCountIn(id)
	if res := integrity.CheckNamespaceDeletion(ns.Name, count); !res.OK {
		return res
	}
	for i := range s.namespaces {
		if s.namespaces[i].ID == id {
			s.namespaces = append(s.namespaces[:i], s.namespaces[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = GlobalNamespaceID
	}
	s.ctx.log.Debug().Str("namespace", id).Msg("namespace deleted")
	return types.Deleted(fmt.Sprintf("Deleted namespace %q", ns.Name))
}

// entityCountIn counts the entities still scoped to a namespace.
func (c *Context) entityCountIn(namespaceID string) int {
	count := 0
	for _, f := range c.Fields.fields {
		if f.NamespaceID == namespaceID {
			count++
		}
	}
	for _, v := range c.Validators.validators {
		if v.NamespaceID == namespaceID {
			count++
		}
	}
	for _, o := range c.Objects.objects {
		if o.NamespaceID == namespaceID {
			count++
		}
	}
	for _, t := range c.Tags.tags {
		if t.NamespaceID == namespaceID {
			count++
		}
	}
	for _, e := range c.Endpoints.endpoints {
		if e.NamespaceID == namespaceID {
			count++
		}
	}
	return count
}
