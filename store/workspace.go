package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mediancode/apidesign/types"
)

// workspaceFile is the on-disk snapshot of every collection in a Context.
type workspaceFile struct {
	Version           string                   `json:"version"`
	WorkspaceID       string                   `json:"workspaceId"`
	SavedAt           time.Time                `json:"savedAt"`
	Counter           uint64                   `json:"idCounter"`
	ActiveNamespaceID string                   `json:"activeNamespaceId"`
	Metadata          types.APIMetadata        `json:"metadata"`
	Namespaces        []types.Namespace        `json:"namespaces"`
	Fields            []types.Field            `json:"fields"`
	Validators        []types.Validator        `json:"validators"`
	Objects           []types.ObjectDefinition `json:"objects"`
	Tags              []types.EndpointTag      `json:"tags"`
	Endpoints         []types.APIEndpoint      `json:"endpoints"`
}

const workspaceVersion = "1.0"

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// SaveWorkspace writes every collection to one JSON document. The write is
// atomic: data goes to a temp file that is renamed over the target, under a
// cross-process file lock.
func (c *Context) SaveWorkspace(path string) error {
	lock := c.locks.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("workspace file is locked by another process: %s", path)
	}
	defer func() { _ = lock.Unlock() }()

	doc := workspaceFile{
		Version:           workspaceVersion,
		WorkspaceID:       c.WorkspaceID,
		SavedAt:           time.Now().UTC(),
		Counter:           c.ids.Counter(),
		ActiveNamespaceID: c.Namespaces.activeID,
		Metadata:          c.Metadata.Get(),
		Namespaces:        c.Namespaces.All(),
		Fields:            c.Fields.All(),
		Validators:        c.Validators.All(),
		Objects:           c.Objects.All(),
		Tags:              c.Tags.All(),
		Endpoints:         c.Endpoints.All(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	tmp := path + ".tmp"
	if err := c.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		_ = c.fs.Remove(tmp)
		return fmt.Errorf("failed to rename workspace file: %w", err)
	}
	c.log.Info().Str("path", path).Msg("workspace saved")
	return nil
}

// LoadWorkspace replaces every collection with the file's contents and
// advances the identifier generator past the highest counter the file
// recorded. A missing file leaves the freshly seeded context untouched.
func (c *Context) LoadWorkspace(path string) error {
	if _, err := c.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read workspace file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var doc workspaceFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse workspace file: %w", err)
	}

	if doc.WorkspaceID != "" {
		c.WorkspaceID = doc.WorkspaceID
	}
	c.ids.Seed(doc.Counter, -1)
	c.Metadata.metadata = doc.Metadata
	if len(doc.Namespaces) > 0 {
		c.Namespaces.namespaces = doc.Namespaces
	}
	// A document missing the locked global namespace gets it back; the
	// active-pointer fallback depends on it existing.
	c.Namespaces.ensureGlobal()
	c.Namespaces.activeID = doc.ActiveNamespaceID
	// Stale active pointers resolve back to global.
	if c.Namespaces.GetByID(c.Namespaces.activeID) == nil {
		c.Namespaces.activeID = GlobalNamespaceID
	}
	c.Fields.fields = doc.Fields
	if len(doc.Validators) > 0 {
		c.Validators.validators = doc.Validators
	}
	c.Objects.objects = doc.Objects
	c.Tags.tags = doc.Tags
	c.Endpoints.endpoints = doc.Endpoints

	c.log.Info().Str("path", path).Int("endpoints", len(doc.Endpoints)).Msg("workspace loaded")
	return nil
}
