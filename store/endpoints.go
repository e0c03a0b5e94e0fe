package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediancode/apidesign/clone"
	"github.com/mediancode/apidesign/ids"
	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// EndpointStore owns the API endpoint collection and keeps the denormalized
// usedInApis reverse-reference lists on fields and objects in sync with the
// endpoints' body field lists.
type EndpointStore struct {
	ctx       *Context
	endpoints []types.APIEndpoint
}

var pathTokenRe = regexp.MustCompile(`\{([^{}/]+)\}`)

// ReconcilePathParams derives the parameter list from a path. The path is
// normalized to start with "/"; each "{name}" token reuses the existing
// parameter definition for that name when one exists, otherwise a blank,
// required, untyped entry is fabricated. Tokens removed from the path drop
// their entries. Duplicate tokens collapse to one entry at first position.
func ReconcilePathParams(path string, existing []types.EndpointParameter, gen *ids.Generator) (string, []types.EndpointParameter) {
	path = validation.NormalizePath(path)

	byName := make(map[string]types.EndpointParameter, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	var params []types.EndpointParameter
	seen := make(map[string]bool)
	for _, m := range pathTokenRe.FindAllStringSubmatch(path, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if p, ok := byName[name]; ok {
			params = append(params, p)
			continue
		}
		params = append(params, types.EndpointParameter{
			ID:       gen.GenerateParamID(),
			Name:     name,
			Type:     "",
			Required: true,
		})
	}
	return path, params
}

// All returns the endpoints in insertion order.
func (s *EndpointStore) All() []types.APIEndpoint {
	out := make([]types.APIEndpoint, len(s.endpoints))
	copy(out, s.endpoints)
	return out
}

// GetByID returns the endpoint or nil.
func (s *EndpointStore) GetByID(id string) *types.APIEndpoint {
	for i := range s.endpoints {
		if s.endpoints[i].ID == id {
			ep := clone.MustOf(s.endpoints[i])
			return &ep
		}
	}
	return nil
}

// ByNamespace returns the endpoints scoped to a namespace.
func (s *EndpointStore) ByNamespace(namespaceID string) []types.APIEndpoint {
	var out []types.APIEndpoint
	for _, ep := range s.endpoints {
		if ep.NamespaceID == namespaceID {
			out = append(out, ep)
		}
	}
	return out
}

// EndpointOptions carries the optional attributes for Create.
type EndpointOptions struct {
	Description          string
	TagID                string
	QueryParams          []types.EndpointParameter
	RequestBodyFieldIDs  []string
	ResponseBodyFieldIDs []string
	UseEnvelope          bool
	ResponseShape        types.ResponseShape
}

// Create adds an endpoint. The path is normalized and its parameters derived
// immediately. An unsupported method or an unknown tag returns nil.
func (s *EndpointStore) Create(method, path, namespaceID string, opts EndpointOptions) *types.APIEndpoint {
	if validation.ValidateMethod(method) != nil {
		return nil
	}
	if opts.TagID != "" && s.ctx.Tags.GetByID(opts.TagID) == nil {
		return nil
	}
	normalized, params := ReconcilePathParams(path, nil, s.ctx.ids)
	ep := types.APIEndpoint{
		ID:                   s.ctx.ids.Generate("endpoint"),
		NamespaceID:          namespaceID,
		Method:               strings.ToUpper(method),
		Path:                 normalized,
		Description:          opts.Description,
		TagID:                opts.TagID,
		PathParams:           params,
		QueryParams:          opts.QueryParams,
		RequestBodyFieldIDs:  opts.RequestBodyFieldIDs,
		ResponseBodyFieldIDs: opts.ResponseBodyFieldIDs,
		UseEnvelope:          opts.UseEnvelope,
		ResponseShape:        opts.ResponseShape,
	}
	if ep.ResponseShape == "" {
		ep.ResponseShape = types.ResponseObject
	}
	s.endpoints = append(s.endpoints, ep)
	s.syncFieldUsage(ep.ID, nil, bodyFieldIDs(ep))
	s.ctx.log.Debug().Str("endpoint", ep.ID).Str("path", ep.Path).Msg("endpoint created")
	out := clone.MustOf(ep)
	return &out
}

// EndpointUpdate is a partial update; nil fields are left untouched. A path
// update triggers parameter reconciliation; PathParams is applied first, so
// type and description edits survive the reconcile for names the path keeps.
type EndpointUpdate struct {
	Method                   *string
	Path                     *string
	Description              *string
	TagID                    *string
	PathParams               *[]types.EndpointParameter
	QueryParams              *[]types.EndpointParameter
	RequestBodyFieldIDs      *[]string
	ResponseBodyFieldIDs     *[]string
	UseEnvelope              *bool
	ResponseShape            *types.ResponseShape
	ResponseItemShape        *types.ResponseShape
	ResponsePrimitiveFieldID *string
	Expanded                 *bool
}

// Update merges a partial update and re-syncs reverse references.
func (s *EndpointStore) Update(id string, upd EndpointUpdate) error {
	for i := range s.endpoints {
		if s.endpoints[i].ID != id {
			continue
		}
		ep := &s.endpoints[i]
		before := bodyFieldIDs(*ep)

		// Validate everything before applying anything; updates are
		// all-or-nothing.
		if upd.Method != nil {
			if err := validation.ValidateMethod(*upd.Method); err != nil {
				return err
			}
		}
		if upd.TagID != nil && *upd.TagID != "" && s.ctx.Tags.GetByID(*upd.TagID) == nil {
			return fmt.Errorf("tag not found: %s", *upd.TagID)
		}

		if upd.Method != nil {
			ep.Method = strings.ToUpper(*upd.Method)
		}
		if upd.PathParams != nil {
			ep.PathParams = *upd.PathParams
		}
		if upd.Path != nil {
			ep.Path, ep.PathParams = ReconcilePathParams(*upd.Path, ep.PathParams, s.ctx.ids)
		}
		if upd.Description != nil {
			ep.Description = *upd.Description
		}
		if upd.TagID != nil {
			ep.TagID = *upd.TagID
		}
		if upd.QueryParams != nil {
			ep.QueryParams = *upd.QueryParams
		}
		if upd.RequestBodyFieldIDs != nil {
			ep.RequestBodyFieldIDs = *upd.RequestBodyFieldIDs
		}
		if upd.ResponseBodyFieldIDs != nil {
			ep.ResponseBodyFieldIDs = *upd.ResponseBodyFieldIDs
		}
		if upd.UseEnvelope != nil {
			ep.UseEnvelope = *upd.UseEnvelope
		}
		if upd.ResponseShape != nil {
			ep.ResponseShape = *upd.ResponseShape
		}
		if upd.ResponseItemShape != nil {
			ep.ResponseItemShape = *upd.ResponseItemShape
		}
		if upd.ResponsePrimitiveFieldID != nil {
			ep.ResponsePrimitiveFieldID = *upd.ResponsePrimitiveFieldID
		}
		if upd.Expanded != nil {
			ep.Expanded = *upd.Expanded
		}

		s.syncFieldUsage(id, before, bodyFieldIDs(*ep))
		return nil
	}
	return fmt.Errorf("endpoint not found: %s", id)
}

// Delete removes an endpoint and clears its reverse references.
func (s *EndpointStore) Delete(id string) types.DeletionResult {
	for i := range s.endpoints {
		if s.endpoints[i].ID != id {
			continue
		}
		ep := s.endpoints[i]
		s.syncFieldUsage(id, bodyFieldIDs(ep), nil)
		s.endpoints = append(s.endpoints[:i], s.endpoints[i+1:]...)
		s.ctx.log.Debug().Str("endpoint", id).Msg("endpoint deleted")
		return types.Deleted(fmt.Sprintf("Deleted %s %s", ep.Method, ep.Path))
	}
	return types.DeletionBlocked(fmt.Sprintf("endpoint not found: %s", id))
}

// Duplicate deep-clones an endpoint under a fresh ID, regenerating the IDs of
// every nested parameter so edits to the copy never alias the original, and
// appends "-copy" to the path.
func (s *EndpointStore) Duplicate(id string) *types.APIEndpoint {
	src := s.GetByID(id)
	if src == nil {
		return nil
	}
	dup := clone.MustOf(*src)
	dup.ID = s.ctx.ids.Generate("endpoint")
	dup.Path = src.Path + "-copy"
	for i := range dup.PathParams {
		dup.PathParams[i].ID = s.ctx.ids.GenerateParamID()
	}
	for i := range dup.QueryParams {
		dup.QueryParams[i].ID = s.ctx.ids.GenerateParamID()
	}
	s.endpoints = append(s.endpoints, dup)
	s.syncFieldUsage(dup.ID, nil, bodyFieldIDs(dup))
	s.ctx.log.Debug().Str("endpoint", dup.ID).Str("source", id).Msg("endpoint duplicated")
	out := clone.MustOf(dup)
	return &out
}

// AttachObject records an object as used by an endpoint.
func (s *EndpointStore) AttachObject(endpointID, objectID string) {
	s.ctx.Objects.markUsedIn(objectID, endpointID)
}

// DetachObject removes an object usage record.
func (s *EndpointStore) DetachObject(endpointID, objectID string) {
	s.ctx.Objects.unmarkUsedIn(objectID, endpointID)
}

// Search filters endpoints by a case-insensitive substring match over path,
// method, and description.
func (s *EndpointStore) Search(endpoints []types.APIEndpoint, query string) []types.APIEndpoint {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return endpoints
	}
	var out []types.APIEndpoint
	for _, ep := range endpoints {
		if containsFold(ep.Path, query) ||
			containsFold(ep.Method, query) ||
			containsFold(ep.Description, query) {
			out = append(out, ep)
		}
	}
	return out
}

// detachTag clears TagID on every endpoint referencing the tag and returns
// how many were affected. Called by the tag store before it removes the tag.
func (s *EndpointStore) detachTag(tagID string) int {
	count := 0
	for i := range s.endpoints {
		if s.endpoints[i].TagID == tagID {
			s.endpoints[i].TagID = ""
			count++
		}
	}
	return count
}

// bodyFieldIDs collects every field ID an endpoint references.
func bodyFieldIDs(ep types.APIEndpoint) []string {
	var out []string
	out = append(out, ep.RequestBodyFieldIDs...)
	out = append(out, ep.ResponseBodyFieldIDs...)
	if ep.ResponsePrimitiveFieldID != "" {
		out = append(out, ep.ResponsePrimitiveFieldID)
	}
	return out
}

// syncFieldUsage reconciles field reverse references after an endpoint's
// body field lists change.
func (s *EndpointStore) syncFieldUsage(endpointID string, before, after []string) {
	afterSet := make(map[string]bool, len(after))
	for _, id := range after {
		afterSet[id] = true
	}
	beforeSet := make(map[string]bool, len(before))
	for _, id := range before {
		beforeSet[id] = true
	}
	for id := range beforeSet {
		if !afterSet[id] {
			s.ctx.Fields.unmarkUsedIn(id, endpointID)
		}
	}
	for id := range afterSet {
		if !beforeSet[id] {
			s.ctx.Fields.markUsedIn(id, endpointID)
		}
	}
}
