package store

import (
	"fmt"
	"strings"

	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// TagStore owns the endpoint tag collection.
type TagStore struct {
	ctx  *Context
	tags []types.EndpointTag
}

// All returns the tags in insertion order.
func (s *TagStore) All() []types.EndpointTag {
	out := make([]types.EndpointTag, len(s.tags))
	copy(out, s.tags)
	return out
}

// GetByID returns the tag or nil.
func (s *TagStore) GetByID(id string) *types.EndpointTag {
	for i := range s.tags {
		if s.tags[i].ID == id {
			t := s.tags[i]
			return &t
		}
	}
	return nil
}

// ByNamespace returns the tags scoped to a namespace.
func (s *TagStore) ByNamespace(namespaceID string) []types.EndpointTag {
	var out []types.EndpointTag
	for _, t := range s.tags {
		if t.NamespaceID == namespaceID {
			out = append(out, t)
		}
	}
	return out
}

// FindByName returns the tag whose name matches case-insensitively within a
// namespace, or nil. The combobox uses this for exact-match detection.
func (s *TagStore) FindByName(namespaceID, name string) *types.EndpointTag {
	for i := range s.tags {
		if s.tags[i].NamespaceID == namespaceID && validation.EqualFold(s.tags[i].Name, name) {
			t := s.tags[i]
			return &t
		}
	}
	return nil
}

// Create adds a tag. Name is unique case-insensitively within the namespace;
// a collision returns nil.
func (s *TagStore) Create(name, namespaceID, description string) *types.EndpointTag {
	if validation.ValidateName(name, "tag") != nil {
		return nil
	}
	if s.FindByName(namespaceID, name) != nil {
		return nil
	}
	t := types.EndpointTag{
		ID:          s.ctx.ids.Generate("tag"),
		NamespaceID: namespaceID,
		Name:        name,
		Description: description,
	}
	s.tags = append(s.tags, t)
	s.ctx.log.Debug().Str("tag", t.ID).Str("name", name).Msg("tag created")
	return &t
}

// TagUpdate is a partial update; nil fields are left untouched.
type TagUpdate struct {
	Name        *string
	Description *string
}

// Update merges a partial update.
func (s *TagStore) Update(id string, upd TagUpdate) error {
	for i := range s.tags {
		if s.tags[i].ID != id {
			continue
		}
		if upd.Name != nil {
			if other := s.FindByName(s.tags[i].NamespaceID, *upd.Name); other != nil && other.ID != id {
				return fmt.Errorf("tag name %q is already taken in this namespace", *upd.Name)
			}
			s.tags[i].Name = *upd.Name
		}
		if upd.Description != nil {
			s.tags[i].Description = *upd.Description
		}
		return nil
	}
	return fmt.Errorf("tag not found: %s", id)
}

// DeleteWithCleanup removes a tag, first clearing TagID on every endpoint
// that referenced it. The success message reports how many endpoints were
// detached.
func (s *TagStore) DeleteWithCleanup(id string) types.DeletionResult {
	for i := range s.tags {
		if s.tags[i].ID != id {
			continue
		}
		t := s.tags[i]
		detached := s.ctx.Endpoints.detachTag(id)
		s.tags = append(s.tags[:i], s.tags[i+1:]...)
		s.ctx.log.Debug().Str("tag", id).Int("detached", detached).Msg("tag deleted")
		return types.Deleted(fmt.Sprintf(
			"Deleted tag %q; detached %d endpoint(s)", t.Name, detached))
	}
	return types.DeletionBlocked(fmt.Sprintf("tag not found: %s", id))
}

// Search filters tags by a case-insensitive substring match over name and
// description.
func (s *TagStore) Search(tags []types.EndpointTag, query string) []types.EndpointTag {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tags
	}
	var out []types.EndpointTag
	for _, t := range tags {
		if containsFold(t.Name, query) || containsFold(t.Description, query) {
			out = append(out, t)
		}
	}
	return out
}
