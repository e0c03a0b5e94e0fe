package store

import (
	"testing"

	"github.com/mediancode/apidesign/types"
)

func TestObjectLifecycle(t *testing.T) {
	c := newTestContext()
	f1 := c.Fields.Create("street", GlobalNamespaceID, FieldOptions{})
	f2 := c.Fields.Create("city", GlobalNamespaceID, FieldOptions{})

	obj := c.Objects.Create("Address", GlobalNamespaceID, ObjectOptions{
		Fields: []types.ObjectFieldReference{
			{FieldID: f1.ID, Required: true},
			{FieldID: f2.ID},
		},
	})
	if obj == nil {
		t.Fatal("create failed")
	}
	if dup := c.Objects.Create("address", GlobalNamespaceID, ObjectOptions{}); dup != nil {
		t.Error("expected case-insensitive collision to return nil")
	}

	t.Run("ResolveFieldsFiltersBrokenRefs", func(t *testing.T) {
		if got := c.Objects.ResolveFields(*obj); len(got) != 2 {
			t.Fatalf("expected 2 resolved fields, got %d", len(got))
		}
		if res := c.Fields.Delete(f2.ID); !res.OK {
			t.Fatalf("field delete failed: %q", res.Err)
		}
		got := c.Objects.ResolveFields(*c.Objects.GetByID(obj.ID))
		if len(got) != 1 || got[0].ID != f1.ID {
			t.Errorf("broken reference should be filtered silently: %+v", got)
		}
	})

	t.Run("DeleteBlockedWhileAttached", func(t *testing.T) {
		ep := c.Endpoints.Create("GET", "/addresses", GlobalNamespaceID, EndpointOptions{})
		c.Endpoints.AttachObject(ep.ID, obj.ID)
		if res := c.Objects.Delete(obj.ID); res.OK {
			t.Error("delete should be refused while endpoints use the object")
		}

		c.Endpoints.DetachObject(ep.ID, obj.ID)
		if res := c.Objects.Delete(obj.ID); !res.OK {
			t.Errorf("delete should succeed once detached: %q", res.Err)
		}
	})
}
