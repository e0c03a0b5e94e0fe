package store

import "testing"

func TestNamespaceLifecycle(t *testing.T) {
	c := newTestContext()

	t.Run("GlobalIsSeededLocked", func(t *testing.T) {
		ns := c.Namespaces.GetByID(GlobalNamespaceID)
		if ns == nil || !ns.Locked {
			t.Fatal("global namespace missing or unlocked")
		}
		name := "renamed"
		if err := c.Namespaces.Update(GlobalNamespaceID, NamespaceUpdate{Name: &name}); err == nil {
			t.Error("locked namespace rename should be refused")
		}
		if res := c.Namespaces.Delete(GlobalNamespaceID); res.OK {
			t.Error("locked namespace delete should be refused")
		}
	})

	t.Run("UniqueNames", func(t *testing.T) {
		if ns := c.Namespaces.Create("Billing", ""); ns == nil {
			t.Fatal("create failed")
		}
		if dup := c.Namespaces.Create("billing", ""); dup != nil {
			t.Error("expected case-insensitive collision to return nil")
		}
	})

	t.Run("DeleteBlockedWhileReferenced", func(t *testing.T) {
		ns := c.Namespaces.Create("orders", "")
		c.Fields.Create("total", ns.ID, FieldOptions{})
		if res := c.Namespaces.Delete(ns.ID); res.OK {
			t.Error("delete should be refused while entities reference the namespace")
		}

		for _, f := range c.Fields.ByNamespace(ns.ID) {
			c.Fields.Delete(f.ID)
		}
		if res := c.Namespaces.Delete(ns.ID); !res.OK {
			t.Errorf("delete should succeed once empty: %q", res.Err)
		}
	})

	t.Run("ActivePointerFallsBackToGlobal", func(t *testing.T) {
		ns := c.Namespaces.Create("temp", "")
		if err := c.Namespaces.SetActive(ns.ID); err != nil {
			t.Fatalf("SetActive failed: %v", err)
		}
		if got := c.Namespaces.Active(); got.ID != ns.ID {
			t.Fatalf("active pointer wrong: %s", got.ID)
		}
		if res := c.Namespaces.Delete(ns.ID); !res.OK {
			t.Fatalf("delete failed: %q", res.Err)
		}
		if got := c.Namespaces.Active(); got.ID != GlobalNamespaceID {
			t.Errorf("active pointer should fall back to global, got %s", got.ID)
		}
	})

	t.Run("SetActiveUnknown", func(t *testing.T) {
		if err := c.Namespaces.SetActive("ns-missing"); err == nil {
			t.Error("expected error for unknown namespace")
		}
	})
}
