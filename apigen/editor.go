// Package apigen holds the endpoint editor state container: the working copy
// of one endpoint, its tag combobox, and the save/undo cycle against the
// endpoint store.
package apigen

import (
	"fmt"

	"github.com/mediancode/apidesign/clone"
	"github.com/mediancode/apidesign/store"
	"github.com/mediancode/apidesign/types"
)

// Editor is an edit session over one endpoint. The committed snapshot tracks
// what the store holds; the edited copy is what the form mutates. Not safe
// for concurrent use.
type Editor struct {
	ctx       *store.Context
	committed types.APIEndpoint
	edited    types.APIEndpoint
	tagInput  string
}

// NewEditor opens an edit session on the endpoint with the given ID.
func NewEditor(ctx *store.Context, endpointID string) (*Editor, error) {
	ep := ctx.Endpoints.GetByID(endpointID)
	if ep == nil {
		return nil, fmt.Errorf("endpoint not found: %s", endpointID)
	}
	e := &Editor{
		ctx:       ctx,
		committed: *ep,
		edited:    clone.MustOf(*ep),
	}
	if tag := ctx.Tags.GetByID(ep.TagID); tag != nil {
		e.tagInput = tag.Name
	}
	return e, nil
}

// Edited returns the working copy for in-place mutation.
func (e *Editor) Edited() *types.APIEndpoint { return &e.edited }

// Committed returns the snapshot of the last saved state.
func (e *Editor) Committed() types.APIEndpoint { return clone.MustOf(e.committed) }

// HasChanges reports whether the working copy diverged from the committed
// snapshot.
func (e *Editor) HasChanges() bool {
	return !clone.Equal(e.edited, e.committed)
}

// Undo restores the working copy from the committed snapshot, including the
// combobox text.
func (e *Editor) Undo() {
	e.edited = clone.MustOf(e.committed)
	e.tagInput = ""
	if tag := e.ctx.Tags.GetByID(e.committed.TagID); tag != nil {
		e.tagInput = tag.Name
	}
}

// TagInput returns the combobox text.
func (e *Editor) TagInput() string { return e.tagInput }

// SetTagInput updates the combobox text without committing anything.
func (e *Editor) SetTagInput(text string) { e.tagInput = text }

// ExactTagMatch returns the existing tag whose name equals the combobox text
// case-insensitively, or nil. The combobox shows "create" affordances only
// when this is nil.
func (e *Editor) ExactTagMatch() *types.EndpointTag {
	if e.tagInput == "" {
		return nil
	}
	return e.ctx.Tags.FindByName(e.edited.NamespaceID, e.tagInput)
}

// CommitTagInput resolves the combobox text into the working copy's TagID.
// Empty text clears the tag. Text matching an existing tag attaches it; any
// other text creates the tag on demand first. Returns the attached tag, or
// nil when the tag was cleared.
func (e *Editor) CommitTagInput() (*types.EndpointTag, error) {
	if e.tagInput == "" {
		e.edited.TagID = ""
		return nil, nil
	}
	tag := e.ExactTagMatch()
	if tag == nil {
		tag = e.ctx.Tags.Create(e.tagInput, e.edited.NamespaceID, "")
		if tag == nil {
			return nil, fmt.Errorf("cannot create tag %q", e.tagInput)
		}
		e.ctx.Notify(fmt.Sprintf("Created tag %q", tag.Name), types.ToastSuccess)
	}
	e.edited.TagID = tag.ID
	e.tagInput = tag.Name
	return tag, nil
}

// SetPath updates the working copy's path and reconciles its path parameters
// immediately, so the form shows fabricated entries before anything is saved.
func (e *Editor) SetPath(path string) {
	e.edited.Path, e.edited.PathParams = store.ReconcilePathParams(path, e.edited.PathParams, e.ctx.IDs())
}

// Save pushes the working copy to the store and advances the committed
// snapshot, so HasChanges returns false again.
func (e *Editor) Save() error {
	ed := e.edited
	upd := store.EndpointUpdate{
		Method:                   &ed.Method,
		Path:                     &ed.Path,
		Description:              &ed.Description,
		TagID:                    &ed.TagID,
		PathParams:               &ed.PathParams,
		QueryParams:              &ed.QueryParams,
		RequestBodyFieldIDs:      &ed.RequestBodyFieldIDs,
		ResponseBodyFieldIDs:     &ed.ResponseBodyFieldIDs,
		UseEnvelope:              &ed.UseEnvelope,
		ResponseShape:            &ed.ResponseShape,
		ResponseItemShape:        &ed.ResponseItemShape,
		ResponsePrimitiveFieldID: &ed.ResponsePrimitiveFieldID,
	}
	if err := e.ctx.Endpoints.Update(e.committed.ID, upd); err != nil {
		return err
	}
	saved := e.ctx.Endpoints.GetByID(e.committed.ID)
	e.committed = *saved
	e.edited = clone.MustOf(*saved)
	return nil
}

// HandleTagDeleted reacts to a tag being deleted elsewhere. The reference is
// cleared from the committed snapshot as well as the working copy: a deleted
// tag must not resurface through Undo.
func (e *Editor) HandleTagDeleted(tagID string) {
	if e.committed.TagID == tagID {
		e.committed.TagID = ""
	}
	if e.edited.TagID == tagID {
		e.edited.TagID = ""
	}
	if e.ctx.Tags.FindByName(e.edited.NamespaceID, e.tagInput) == nil && e.tagInput != "" {
		// Keep the text only if it still names a live tag.
		e.tagInput = ""
	}
}
