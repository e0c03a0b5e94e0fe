package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mediancode/apidesign/ids"
	"github.com/mediancode/apidesign/store"
)

func newPopulatedContext(t *testing.T) *store.Context {
	t.Helper()
	gen := ids.New()
	gen.Seed(0, 1000000)
	ctx := store.NewContext(store.WithGenerator(gen))

	f := ctx.Fields.Create("email", store.GlobalNamespaceID, store.FieldOptions{})
	if f == nil {
		t.Fatal("field create failed")
	}
	tag := ctx.Tags.Create("users", store.GlobalNamespaceID, "")
	ctx.Endpoints.Create("POST", "/users", store.GlobalNamespaceID, store.EndpointOptions{
		TagID:               tag.ID,
		RequestBodyFieldIDs: []string{f.ID},
	})
	ctx.Endpoints.Create("GET", "/users", store.GlobalNamespaceID, store.EndpointOptions{TagID: tag.ID})
	title := "Users API"
	ctx.Metadata.Update(store.MetadataUpdate{Title: &title})
	return ctx
}

func TestBuildAggregatesWorkspace(t *testing.T) {
	ctx := newPopulatedContext(t)
	req := Build(ctx)

	if req.APIMetadata.Title != "Users API" {
		t.Errorf("metadata missing: %+v", req.APIMetadata)
	}
	if len(req.Tags) != 1 || len(req.Fields) != 1 || len(req.Endpoints) != 2 {
		t.Fatalf("collections incomplete: %d tags, %d fields, %d endpoints",
			len(req.Tags), len(req.Fields), len(req.Endpoints))
	}
	if len(req.Validators) == 0 {
		t.Error("inline validator library should be exported")
	}

	// Same path sorts by method: GET before POST.
	if req.Endpoints[0].Method != "GET" || req.Endpoints[1].Method != "POST" {
		t.Errorf("endpoint ordering wrong: %s, %s", req.Endpoints[0].Method, req.Endpoints[1].Method)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	ctx := newPopulatedContext(t)

	var a, b bytes.Buffer
	if err := EncodeJSON(&a, Build(ctx)); err != nil {
		t.Fatal(err)
	}
	if err := EncodeJSON(&b, Build(ctx)); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("repeated export of the same workspace must be byte-identical")
	}
}

func TestEmptyCollectionsSerializeAsArrays(t *testing.T) {
	ctx := store.NewContext()
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, Build(ctx)); err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"tags", "endpoints", "objects", "fields"} {
		raw, ok := doc[key]
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if string(raw) == "null" {
			t.Errorf("key %q serialized as null, want []", key)
		}
	}
}
