// Package export assembles the code-generation request: one JSON document
// aggregating the workspace's metadata, tags, endpoints, objects, fields, and
// validators. Transport and auth are the caller's concern; this package only
// builds and encodes the payload.
package export

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/mediancode/apidesign/store"
	"github.com/mediancode/apidesign/types"
)

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	APIMetadata types.APIMetadata        `json:"apiMetadata"`
	Tags        []types.EndpointTag      `json:"tags"`
	Endpoints   []types.APIEndpoint      `json:"endpoints"`
	Objects     []types.ObjectDefinition `json:"objects"`
	Fields      []types.Field            `json:"fields"`
	Validators  []types.Validator        `json:"validators"`
}

// Build aggregates the whole workspace into a generate request. Collections
// are ordered deterministically (names, then IDs as tiebreak; endpoints by
// path then method) so repeated exports of the same workspace diff clean.
func Build(ctx *store.Context) GenerateRequest {
	req := GenerateRequest{
		APIMetadata: ctx.Metadata.Get(),
		Tags:        ctx.Tags.All(),
		Endpoints:   ctx.Endpoints.All(),
		Objects:     ctx.Objects.All(),
		Fields:      ctx.Fields.All(),
		Validators:  ctx.Validators.All(),
	}

	sort.Slice(req.Tags, func(i, j int) bool {
		return byName(req.Tags[i].Name, req.Tags[j].Name, req.Tags[i].ID, req.Tags[j].ID)
	})
	sort.Slice(req.Endpoints, func(i, j int) bool {
		a, b := req.Endpoints[i], req.Endpoints[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Method < b.Method
	})
	sort.Slice(req.Objects, func(i, j int) bool {
		return byName(req.Objects[i].Name, req.Objects[j].Name, req.Objects[i].ID, req.Objects[j].ID)
	})
	sort.Slice(req.Fields, func(i, j int) bool {
		return byName(req.Fields[i].Name, req.Fields[j].Name, req.Fields[i].ID, req.Fields[j].ID)
	})
	sort.Slice(req.Validators, func(i, j int) bool {
		a, b := req.Validators[i], req.Validators[j]
		if a.NamespaceID != b.NamespaceID {
			return a.NamespaceID < b.NamespaceID
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	// Empty collections serialize as [], not null.
	if req.Tags == nil {
		req.Tags = []types.EndpointTag{}
	}
	if req.Endpoints == nil {
		req.Endpoints = []types.APIEndpoint{}
	}
	if req.Objects == nil {
		req.Objects = []types.ObjectDefinition{}
	}
	if req.Fields == nil {
		req.Fields = []types.Field{}
	}
	if req.Validators == nil {
		req.Validators = []types.Validator{}
	}
	return req
}

func byName(nameA, nameB, idA, idB string) bool {
	la, lb := strings.ToLower(nameA), strings.ToLower(nameB)
	if la != lb {
		return la < lb
	}
	return idA < idB
}

// EncodeJSON writes the request as indented JSON.
func EncodeJSON(w io.Writer, req GenerateRequest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(req)
}
