package listview

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediancode/apidesign/multisort"
	"github.com/mediancode/apidesign/navigation"
)

type testItem struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Kind  string   `json:"kind"`
	Uses  int      `json:"uses"`
	Flags []string `json:"flags"`
}

type fixture struct {
	items []testItem
	nav   *navigation.Memory
	sched *ManualScheduler
	state *State[testItem]
}

func newFixture(t *testing.T, items []testItem) *fixture {
	t.Helper()
	f := &fixture{
		items: items,
		nav:   navigation.NewMemory(nil),
		sched: &ManualScheduler{},
	}
	f.state = New(Config[testItem]{
		Source: func() []testItem { return f.items },
		ID:     func(it testItem) string { return it.ID },
		Search: func(items []testItem, q string) []testItem {
			q = strings.ToLower(q)
			var out []testItem
			for _, it := range items {
				if strings.Contains(strings.ToLower(it.Name), q) {
					out = append(out, it)
				}
			}
			return out
		},
		Filters: []FilterSection[testItem]{
			{ID: "kind", Kind: FilterCheckboxGroup, Values: func(it testItem) []string { return []string{it.Kind} }},
			{ID: "used", Kind: FilterToggle, Active: func(it testItem) bool { return it.Uses > 0 }},
		},
		Derive: func(it testItem) map[string]any {
			return map[string]any{"usageCount": it.Uses}
		},
		ColumnValue: func(it testItem, column string) any {
			switch column {
			case "name":
				return it.Name
			case "kind":
				return it.Kind
			default:
				return nil
			}
		},
		SortAliases:    map[string]string{"uses": "usageCount"},
		NumericColumns: map[string]bool{"usageCount": true},
		TrackEdits:     true,
		HighlightParam: "highlight",
		Nav:            f.nav,
		Scheduler:      f.sched,
	})
	return f
}

func stdItems() []testItem {
	return []testItem{
		{ID: "a", Name: "email", Kind: "string", Uses: 3},
		{ID: "b", Name: "age", Kind: "integer", Uses: 0},
		{ID: "c", Name: "Address", Kind: "string", Uses: 1},
	}
}

func rowIDs(rows []Row[testItem]) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Item.ID
	}
	return ids
}

func TestRowsPipeline(t *testing.T) {
	f := newFixture(t, stdItems())

	t.Run("DefaultOrderIsInsertion", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, rowIDs(f.state.Rows()))
	})

	t.Run("SearchNarrows", func(t *testing.T) {
		f.state.SetQuery("ad")
		assert.Equal(t, []string{"c"}, rowIDs(f.state.Rows()))
		f.state.SetQuery("")
	})

	t.Run("CheckboxGroupFilters", func(t *testing.T) {
		f.state.ToggleFilterValue("kind", "string")
		assert.Equal(t, []string{"a", "c"}, rowIDs(f.state.Rows()))

		f.state.ToggleFilterValue("kind", "integer")
		assert.Len(t, f.state.Rows(), 3, "adding a value widens the selection")

		f.state.ClearFilters()
		assert.Len(t, f.state.Rows(), 3)
	})

	t.Run("ToggleFilters", func(t *testing.T) {
		f.state.SetToggle("used", true)
		assert.Equal(t, []string{"a", "c"}, rowIDs(f.state.Rows()))
		f.state.SetToggle("used", false)
	})

	t.Run("DerivedFieldsAttached", func(t *testing.T) {
		rows := f.state.Rows()
		assert.Equal(t, 3, rows[0].Derived["usageCount"])
	})
}

func TestSortViaURL(t *testing.T) {
	f := newFixture(t, stdItems())

	f.state.HandleSortClick("name", false)
	assert.Equal(t, "name:asc", f.nav.Query().Get("sort"))
	assert.Equal(t, []string{"c", "b", "a"}, rowIDs(f.state.Rows()),
		"name sort must be case-insensitive")
	assert.Empty(t, f.nav.History, "sort clicks must not push history entries")
	assert.Equal(t, 1, f.nav.Replacements)

	f.state.HandleSortClick("name", false)
	assert.Equal(t, "name:desc", f.nav.Query().Get("sort"))

	f.state.HandleSortClick("name", false)
	assert.Empty(t, f.nav.Query().Get("sort"), "third click clears the sort")

	t.Run("AliasResolvesToDerivedColumn", func(t *testing.T) {
		f.nav.SetParam("sort", "uses:desc")
		assert.Equal(t, []string{"a", "c", "b"}, rowIDs(f.state.Rows()))
	})

	t.Run("ShiftStacksSecondaryKey", func(t *testing.T) {
		f.nav.SetParam("sort", "kind:asc")
		f.state.HandleSortClick("name", true)
		assert.Equal(t, "kind:asc,name:asc", f.nav.Query().Get("sort"))
		assert.Equal(t, []string{"b", "c", "a"}, rowIDs(f.state.Rows()))
	})

	t.Run("URLIsSourceOfTruth", func(t *testing.T) {
		f.nav.SetParam("sort", "name:asc")
		assert.Equal(t, []multisort.Key{{Column: "name", Direction: multisort.Asc}}, f.state.SortKeys())
	})
}

func TestDrawerLifecycle(t *testing.T) {
	f := newFixture(t, stdItems())

	require.Equal(t, DrawerClosed, f.state.Phase())

	f.state.Select("a")
	require.Equal(t, DrawerOpen, f.state.Phase())
	require.NotNil(t, f.state.Selected())
	assert.Equal(t, "a", f.state.Selected().ID)
	require.NotNil(t, f.state.Edited())

	t.Run("SameItemIsNoOp", func(t *testing.T) {
		f.state.Edited().Name = "changed"
		f.state.Select("a")
		assert.Equal(t, "changed", f.state.Edited().Name, "reselect must not reset the edit session")
	})

	t.Run("DifferentItemSwapsThroughClosing", func(t *testing.T) {
		f.state.Select("b")
		assert.Equal(t, DrawerClosing, f.state.Phase())
		require.Equal(t, 1, f.sched.Pending())

		f.sched.Fire()
		assert.Equal(t, DrawerOpen, f.state.Phase())
		assert.Equal(t, "b", f.state.Selected().ID)
	})

	t.Run("UnknownIDIgnored", func(t *testing.T) {
		f.state.Select("nope")
		assert.Equal(t, "b", f.state.Selected().ID)
	})
}

func TestDrawerCloseClearsAfterDelay(t *testing.T) {
	f := newFixture(t, stdItems())
	f.state.Select("a")
	f.state.SetValidationError("name", "required")
	f.state.SetDeleteConfirm(true)

	f.state.Close()
	assert.Equal(t, DrawerClosing, f.state.Phase())
	assert.NotNil(t, f.state.Selected(), "contents linger through the exit animation")

	f.sched.Fire()
	assert.Equal(t, DrawerClosed, f.state.Phase())
	assert.Nil(t, f.state.Selected())
	assert.Nil(t, f.state.Edited())
	assert.Empty(t, f.state.ValidationErrors())
	assert.False(t, f.state.DeleteConfirmVisible())
}

func TestReopenSupersedesPendingTeardown(t *testing.T) {
	f := newFixture(t, stdItems())
	f.state.Select("a")
	f.state.Close()
	require.Equal(t, DrawerClosing, f.state.Phase())

	// Reopen before the teardown timer fires.
	f.state.Select("b")
	assert.Equal(t, DrawerOpen, f.state.Phase())

	// The stale teardown must not clear the freshly opened drawer.
	f.sched.Fire()
	assert.Equal(t, DrawerOpen, f.state.Phase())
	require.NotNil(t, f.state.Selected())
	assert.Equal(t, "b", f.state.Selected().ID)
}

func TestEditSession(t *testing.T) {
	f := newFixture(t, stdItems())
	f.state.Select("a")

	assert.False(t, f.state.HasChanges())

	f.state.Edited().Name = "emailAddress"
	assert.True(t, f.state.HasChanges())

	t.Run("RevertingFieldClearsChanges", func(t *testing.T) {
		f.state.Edited().Name = "email"
		assert.False(t, f.state.HasChanges(), "diff is structural, not touch-based")
	})

	t.Run("UndoRestoresSnapshot", func(t *testing.T) {
		f.state.Edited().Name = "mangled"
		f.state.Edited().Flags = append(f.state.Edited().Flags, "x")
		f.state.Undo()
		assert.Equal(t, "email", f.state.Edited().Name)
		assert.False(t, f.state.HasChanges())
	})

	t.Run("SaveAdvancesBaseline", func(t *testing.T) {
		f.state.Edited().Name = "primaryEmail"
		var committed testItem
		err := f.state.Save(func(it testItem) error {
			committed = it
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "primaryEmail", committed.Name)
		assert.False(t, f.state.HasChanges(), "saved edits become the new baseline")
	})

	t.Run("FailedSaveKeepsChanges", func(t *testing.T) {
		f.state.Edited().Name = "again"
		err := f.state.Save(func(testItem) error { return assert.AnError })
		require.Error(t, err)
		assert.True(t, f.state.HasChanges())
	})
}

func TestHighlightDeepLink(t *testing.T) {
	f := newFixture(t, stdItems())
	var highlighted []string
	f.state.cfg.OnHighlight = func(it testItem) { highlighted = append(highlighted, it.ID) }

	f.nav.Replace(url.Values{"highlight": {"c"}})
	f.state.CheckHighlight()

	require.Equal(t, DrawerOpen, f.state.Phase())
	assert.Equal(t, "c", f.state.Selected().ID)
	assert.Equal(t, []string{"c"}, highlighted)
	assert.Empty(t, f.nav.Query().Get("highlight"), "parameter stripped after consumption")
	assert.Empty(t, f.nav.History, "stripping must not push a history entry")

	t.Run("StaleURLDoesNotRetrigger", func(t *testing.T) {
		f.state.Close()
		f.sched.Fire()
		// A re-render can observe the old URL value before the strip lands.
		f.nav.SetParam("highlight", "c")
		f.state.CheckHighlight()
		assert.Equal(t, DrawerClosed, f.state.Phase())
	})

	t.Run("ClearingResetsMemory", func(t *testing.T) {
		f.nav.SetParam("highlight", "")
		f.state.CheckHighlight()

		f.nav.SetParam("highlight", "c")
		f.state.CheckHighlight()
		assert.Equal(t, DrawerOpen, f.state.Phase())
		assert.Equal(t, []string{"c", "c"}, highlighted, "same ID re-applied must trigger again")
	})

	t.Run("OpenDrawerBlocksHighlight", func(t *testing.T) {
		f.nav.SetParam("highlight", "a")
		f.state.CheckHighlight()
		assert.Equal(t, "c", f.state.Selected().ID)
	})

	t.Run("UnknownIDIgnored", func(t *testing.T) {
		f.state.Close()
		f.sched.Fire()
		f.nav.SetParam("highlight", "missing")
		f.state.CheckHighlight()
		assert.Equal(t, DrawerClosed, f.state.Phase())
	})
}
