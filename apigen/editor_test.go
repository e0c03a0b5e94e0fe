package apigen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediancode/apidesign/ids"
	"github.com/mediancode/apidesign/store"
	"github.com/mediancode/apidesign/toast"
)

func newTestEditor(t *testing.T) (*store.Context, *Editor, *toast.Recorder) {
	t.Helper()
	gen := ids.New()
	gen.Seed(0, 1000000)
	rec := &toast.Recorder{}
	ctx := store.NewContext(store.WithGenerator(gen), store.WithToasts(rec))
	ep := ctx.Endpoints.Create("GET", "/users/{id}", store.GlobalNamespaceID, store.EndpointOptions{})
	require.NotNil(t, ep)
	ed, err := NewEditor(ctx, ep.ID)
	require.NoError(t, err)
	return ctx, ed, rec
}

func TestEditorUnknownEndpoint(t *testing.T) {
	ctx := store.NewContext()
	_, err := NewEditor(ctx, "endpoint-missing")
	assert.Error(t, err)
}

func TestEditorSaveAdvancesBaseline(t *testing.T) {
	ctx, ed, _ := newTestEditor(t)

	assert.False(t, ed.HasChanges())
	ed.Edited().Description = "fetch one user"
	ed.Edited().UseEnvelope = true
	assert.True(t, ed.HasChanges())

	require.NoError(t, ed.Save())
	assert.False(t, ed.HasChanges(), "saved edits become the new baseline")

	stored := ctx.Endpoints.GetByID(ed.Committed().ID)
	assert.Equal(t, "fetch one user", stored.Description)
	assert.True(t, stored.UseEnvelope)
}

func TestEditorUndo(t *testing.T) {
	_, ed, _ := newTestEditor(t)

	ed.Edited().Description = "scratch"
	ed.SetTagInput("drafts")
	ed.Undo()

	assert.False(t, ed.HasChanges())
	assert.Empty(t, ed.Edited().Description)
	assert.Empty(t, ed.TagInput(), "combobox text follows the committed tag")
}

func TestEditorSavePersistsPathParamEdits(t *testing.T) {
	ctx, ed, _ := newTestEditor(t)

	ed.Edited().PathParams[0].Type = "uuid"
	ed.Edited().PathParams[0].Description = "user identifier"
	require.NoError(t, ed.Save())

	stored := ctx.Endpoints.GetByID(ed.Committed().ID)
	assert.Equal(t, "uuid", stored.PathParams[0].Type)
	assert.Equal(t, "user identifier", stored.PathParams[0].Description)
	assert.False(t, ed.HasChanges())
}

func TestEditorSetPathReconciles(t *testing.T) {
	_, ed, _ := newTestEditor(t)

	priorID := ed.Edited().PathParams[0].ID
	ed.SetPath("/users/{id}/posts/{postId}")

	params := ed.Edited().PathParams
	require.Len(t, params, 2)
	assert.Equal(t, priorID, params[0].ID, "surviving param keeps its identity")
	assert.Equal(t, "postId", params[1].Name)
	assert.True(t, ed.HasChanges(), "the reconcile only touches the working copy")
}

func TestTagCombobox(t *testing.T) {
	ctx, ed, rec := newTestEditor(t)
	existing := ctx.Tags.Create("users", store.GlobalNamespaceID, "")

	t.Run("ExactMatchAttaches", func(t *testing.T) {
		ed.SetTagInput("USERS")
		require.NotNil(t, ed.ExactTagMatch())

		tag, err := ed.CommitTagInput()
		require.NoError(t, err)
		assert.Equal(t, existing.ID, tag.ID)
		assert.Equal(t, existing.ID, ed.Edited().TagID)
		assert.Equal(t, "users", ed.TagInput(), "text snaps to the canonical name")
		assert.Empty(t, rec.Toasts, "attaching an existing tag is silent")
	})

	t.Run("NoMatchCreatesOnDemand", func(t *testing.T) {
		ed.SetTagInput("admin")
		require.Nil(t, ed.ExactTagMatch())

		tag, err := ed.CommitTagInput()
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.NotNil(t, ctx.Tags.GetByID(tag.ID), "tag exists in the store")
		assert.Equal(t, tag.ID, ed.Edited().TagID)
		require.NotNil(t, rec.Last())
		assert.Contains(t, rec.Last().Message, "admin")
	})

	t.Run("EmptyInputClears", func(t *testing.T) {
		ed.SetTagInput("")
		tag, err := ed.CommitTagInput()
		require.NoError(t, err)
		assert.Nil(t, tag)
		assert.Empty(t, ed.Edited().TagID)
	})
}

func TestHandleTagDeletedBypassesUndo(t *testing.T) {
	ctx, ed, _ := newTestEditor(t)
	tag := ctx.Tags.Create("users", store.GlobalNamespaceID, "")

	ed.SetTagInput("users")
	_, err := ed.CommitTagInput()
	require.NoError(t, err)
	require.NoError(t, ed.Save())
	require.Equal(t, tag.ID, ed.Committed().TagID)

	res := ctx.Tags.DeleteWithCleanup(tag.ID)
	require.True(t, res.OK)
	ed.HandleTagDeleted(tag.ID)

	assert.Empty(t, ed.Edited().TagID)
	assert.Empty(t, ed.Committed().TagID)
	assert.Empty(t, ed.TagInput())

	ed.Undo()
	assert.Empty(t, ed.Edited().TagID, "a deleted tag must not resurface through undo")
}
