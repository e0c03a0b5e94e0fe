package store

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/mediancode/apidesign/types"
)

// memFS is an in-memory FileSystem for persistence tests.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS { return &memFS{files: map[string][]byte{}} }

type memFileInfo struct{ name string }

func (f memFileInfo) Name() string      { return f.name }
func (memFileInfo) Size() int64         { return 0 }
func (memFileInfo) Mode() fs.FileMode   { return 0o644 }
func (memFileInfo) ModTime() time.Time  { return time.Time{} }
func (memFileInfo) IsDir() bool         { return false }
func (memFileInfo) Sys() any            { return nil }

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	if _, ok := m.files[name]; !ok {
		return nil, os.ErrNotExist
	}
	return memFileInfo{name: name}, nil
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *memFS) Rename(oldpath, newpath string) error {
	data, ok := m.files[oldpath]
	if !ok {
		return os.ErrNotExist
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

func (m *memFS) Remove(name string) error {
	delete(m.files, name)
	return nil
}

func newPersistentContext(fsys FileSystem) *Context {
	return NewContext(WithFileSystem(fsys), WithLockFactory(NoopLockFactory{}))
}

func TestWorkspaceRoundTrip(t *testing.T) {
	fsys := newMemFS()
	c := newPersistentContext(fsys)

	ns := c.Namespaces.Create("billing", "invoices and payments")
	f := c.Fields.Create("total", ns.ID, FieldOptions{Type: types.FieldTypeFloat})
	tag := c.Tags.Create("invoices", ns.ID, "")
	c.Endpoints.Create("GET", "/invoices/{id}", ns.ID, EndpointOptions{
		TagID:                tag.ID,
		ResponseBodyFieldIDs: []string{f.ID},
	})
	title := "Billing API"
	c.Metadata.Update(MetadataUpdate{Title: &title})
	if err := c.Namespaces.SetActive(ns.ID); err != nil {
		t.Fatal(err)
	}

	if err := c.SaveWorkspace("ws.json"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := fsys.files["ws.json"]; !ok {
		t.Fatal("workspace file not written")
	}
	if _, ok := fsys.files["ws.json.tmp"]; ok {
		t.Error("temp file left behind")
	}

	fresh := newPersistentContext(fsys)
	if err := fresh.LoadWorkspace("ws.json"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := len(fresh.Fields.All()); got != 1 {
		t.Errorf("fields not restored: %d", got)
	}
	if got := fresh.Metadata.Get().Title; got != "Billing API" {
		t.Errorf("metadata not restored: %q", got)
	}
	if got := fresh.Namespaces.Active(); got.Name != "billing" {
		t.Errorf("active namespace not restored: %s", got.Name)
	}
	if fresh.WorkspaceID != c.WorkspaceID {
		t.Error("workspace identity not restored")
	}

	// New IDs must not collide with restored ones.
	before := fresh.IDs().Counter()
	f2 := fresh.Fields.Create("vat", ns.ID, FieldOptions{})
	if f2 == nil {
		t.Fatal("create after load failed")
	}
	if fresh.IDs().Counter() <= before {
		t.Error("counter did not advance")
	}
	if f2.ID == f.ID {
		t.Error("restored and new field IDs collide")
	}
}

func TestLoadWorkspaceMissingFile(t *testing.T) {
	c := newPersistentContext(newMemFS())
	if err := c.LoadWorkspace("missing.json"); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(c.Namespaces.All()) != 1 {
		t.Error("fresh seed should be untouched")
	}
}

func TestLoadWorkspaceMissingGlobalNamespace(t *testing.T) {
	fsys := newMemFS()
	fsys.files["ws.json"] = []byte(`{"version":"1.0","activeNamespaceId":"ns-a","namespaces":[{"id":"ns-b","name":"billing"}]}`)
	c := newPersistentContext(fsys)
	if err := c.LoadWorkspace("ws.json"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	ns := c.Namespaces.GetByID(GlobalNamespaceID)
	if ns == nil || !ns.Locked {
		t.Fatal("global namespace should be re-seeded locked")
	}
	if got := c.Namespaces.Active(); got.ID != GlobalNamespaceID {
		t.Errorf("active pointer should resolve to global, got %s", got.ID)
	}
	if c.Namespaces.GetByID("ns-b") == nil {
		t.Error("loaded namespaces should survive the re-seed")
	}
}

func TestLoadWorkspaceStaleActiveNamespace(t *testing.T) {
	fsys := newMemFS()
	fsys.files["ws.json"] = []byte(`{"version":"1.0","activeNamespaceId":"ns-gone","namespaces":[{"id":"ns-global","name":"global","locked":true}]}`)
	c := newPersistentContext(fsys)
	if err := c.LoadWorkspace("ws.json"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := c.Namespaces.Active(); got.ID != GlobalNamespaceID {
		t.Errorf("stale active pointer should fall back to global, got %s", got.ID)
	}
}
