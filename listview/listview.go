// Package listview is a generic state container for a filterable, sortable
// list with a detail drawer. One instance backs one list screen: it owns the
// search query, the filter sections, the URL-bound multi-column sort, the
// drawer lifecycle with its delayed teardown, and the highlight deep link.
package listview

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mediancode/apidesign/clone"
	"github.com/mediancode/apidesign/multisort"
	"github.com/mediancode/apidesign/navigation"
)

// DefaultCloseDelay matches the drawer's exit animation.
const DefaultCloseDelay = 200 * time.Millisecond

// FilterKind selects how a filter section interprets its state.
type FilterKind string

const (
	// FilterCheckboxGroup keeps a row when any of its values is selected.
	// An empty selection means the section is inactive and keeps everything.
	FilterCheckboxGroup FilterKind = "checkbox-group"
	// FilterToggle applies a predicate while switched on.
	FilterToggle FilterKind = "toggle"
)

// FilterSection declares one filter control over the list.
type FilterSection[T any] struct {
	ID   string
	Kind FilterKind
	// Values extracts the row's values for a checkbox-group section.
	Values func(item T) []string
	// Active is the predicate for a toggle section.
	Active func(item T) bool
}

// Row pairs a source item with its derived per-row fields. Sort keys resolve
// against derived fields first, then against the raw column accessor.
type Row[T any] struct {
	Item    T
	Derived map[string]any
}

// Config wires a State to its data source and collaborators. Source, ID and
// Nav are required; everything else has a working zero value.
type Config[T any] struct {
	// Source returns the current items. Called on every Rows evaluation so
	// the view always reflects store state.
	Source func() []T
	// ID extracts the stable identifier used for selection and highlights.
	ID func(item T) string
	// Search narrows items by the free-text query. Empty query skips it.
	Search func(items []T, query string) []T

	Filters []FilterSection[T]

	// Derive computes per-row fields such as usage counts or display names.
	Derive func(item T) map[string]any
	// ColumnValue resolves a sort column against the raw item. Derived
	// fields shadow it.
	ColumnValue func(item T, column string) any
	// SortAliases remaps a clicked column name to the derived field that
	// actually backs it.
	SortAliases    map[string]string
	NumericColumns map[string]bool
	// SortParam is the URL query key holding the encoded sort. Defaults to
	// "sort".
	SortParam string

	// TrackEdits enables the edited/original snapshot pair on selection.
	TrackEdits bool
	// CloseDelay is how long drawer contents linger after a close, covering
	// the exit animation. Defaults to DefaultCloseDelay.
	CloseDelay time.Duration

	// HighlightParam names the deep-link query parameter. Empty disables
	// highlight handling.
	HighlightParam string
	// OnHighlight runs after a highlight auto-opens the drawer.
	OnHighlight func(item T)

	Nav       navigation.Port
	Scheduler Scheduler
	Log       zerolog.Logger
}

// DrawerPhase is the drawer lifecycle position.
type DrawerPhase int

const (
	DrawerClosed DrawerPhase = iota
	DrawerOpen
	DrawerClosing
)

// State is the live container. It is not safe for concurrent use; callers
// serialize access the way a UI event loop does.
type State[T any] struct {
	cfg Config[T]

	query      string
	selections map[string]map[string]bool
	toggles    map[string]bool

	phase             DrawerPhase
	selected          *T
	edited            *T
	original          *T
	validationErrs    map[string]string
	showDeleteConfirm bool

	// closeGen invalidates scheduled teardowns. Every open or close bumps
	// it; a deferred callback only acts if the generation it captured is
	// still current.
	closeGen uint64

	consumedHighlight string
}

// New builds a State from cfg, filling defaults.
func New[T any](cfg Config[T]) *State[T] {
	if cfg.SortParam == "" {
		cfg.SortParam = "sort"
	}
	if cfg.CloseDelay == 0 {
		cfg.CloseDelay = DefaultCloseDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	if cfg.Nav == nil {
		cfg.Nav = navigation.NewMemory(nil)
	}
	return &State[T]{
		cfg:            cfg,
		selections:     map[string]map[string]bool{},
		toggles:        map[string]bool{},
		validationErrs: map[string]string{},
	}
}

// Query returns the current search query.
func (s *State[T]) Query() string { return s.query }

// SetQuery updates the search query.
func (s *State[T]) SetQuery(q string) { s.query = q }

// ToggleFilterValue flips one checkbox in a checkbox-group section.
func (s *State[T]) ToggleFilterValue(sectionID, value string) {
	sel := s.selections[sectionID]
	if sel == nil {
		sel = map[string]bool{}
		s.selections[sectionID] = sel
	}
	if sel[value] {
		delete(sel, value)
	} else {
		sel[value] = true
	}
}

// SetToggle switches a toggle section on or off.
func (s *State[T]) SetToggle(sectionID string, on bool) {
	s.toggles[sectionID] = on
}

// ClearFilters resets the query and every filter section.
func (s *State[T]) ClearFilters() {
	s.query = ""
	s.selections = map[string]map[string]bool{}
	s.toggles = map[string]bool{}
}

// SortKeys returns the sort state parsed live from the URL, after alias
// remapping. The URL is the single source of truth; there is no cached copy
// to drift from it.
func (s *State[T]) SortKeys() []multisort.Key {
	keys := multisort.Parse(s.cfg.Nav.Query().Get(s.cfg.SortParam))
	for i, k := range keys {
		if alias, ok := s.cfg.SortAliases[k.Column]; ok {
			keys[i].Column = alias
		}
	}
	return keys
}

// HandleSortClick applies a column-header click to the URL sort parameter.
// The navigation is a Replace so sorting never pollutes browser history.
func (s *State[T]) HandleSortClick(column string, shift bool) {
	current := multisort.Parse(s.cfg.Nav.Query().Get(s.cfg.SortParam))
	next := multisort.HandleClick(column, current, shift)

	q := s.cfg.Nav.Query()
	if encoded := multisort.Encode(next); encoded == "" {
		q.Del(s.cfg.SortParam)
	} else {
		q.Set(s.cfg.SortParam, encoded)
	}
	s.cfg.Nav.Replace(q)
}

// Rows evaluates the pipeline: source, search, filters, derive, sort.
func (s *State[T]) Rows() []Row[T] {
	items := s.cfg.Source()

	if s.query != "" && s.cfg.Search != nil {
		items = s.cfg.Search(items, s.query)
	}
	items = s.applyFilters(items)

	rows := make([]Row[T], len(items))
	for i, item := range items {
		var derived map[string]any
		if s.cfg.Derive != nil {
			derived = s.cfg.Derive(item)
		}
		rows[i] = Row[T]{Item: item, Derived: derived}
	}

	keys := s.SortKeys()
	if len(keys) == 0 {
		return rows
	}
	return multisort.Apply(rows, keys, s.rowValue, s.cfg.NumericColumns)
}

func (s *State[T]) rowValue(row Row[T], column string) any {
	if v, ok := row.Derived[column]; ok {
		return v
	}
	if s.cfg.ColumnValue != nil {
		return s.cfg.ColumnValue(row.Item, column)
	}
	return nil
}

func (s *State[T]) applyFilters(items []T) []T {
	for _, section := range s.cfg.Filters {
		switch section.Kind {
		case FilterCheckboxGroup:
			sel := s.selections[section.ID]
			if len(sel) == 0 || section.Values == nil {
				continue
			}
			items = keep(items, func(item T) bool {
				for _, v := range section.Values(item) {
					if sel[v] {
						return true
					}
				}
				return false
			})
		case FilterToggle:
			if !s.toggles[section.ID] || section.Active == nil {
				continue
			}
			items = keep(items, section.Active)
		}
	}
	return items
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := items[:0:0]
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Phase returns the drawer lifecycle position.
func (s *State[T]) Phase() DrawerPhase { return s.phase }

// Selected returns the item the drawer shows, or nil when closed.
func (s *State[T]) Selected() *T { return s.selected }

// Edited returns the mutable working copy, or nil outside an edit session.
// Callers mutate it in place and call Save or Undo.
func (s *State[T]) Edited() *T { return s.edited }

// Select opens the drawer on the item with the given ID. Re-selecting the
// already open item is a no-op. Selecting a different item while the drawer
// is open passes through a brief closing phase so the panel visibly swaps;
// the reopen is deferred by the close delay and superseded if anything else
// moves the drawer first.
func (s *State[T]) Select(id string) {
	item, ok := s.find(id)
	if !ok {
		s.cfg.Log.Warn().Str("id", id).Msg("select: item not found")
		return
	}

	if s.phase == DrawerOpen && s.selected != nil && s.cfg.ID(*s.selected) == id {
		return
	}
	if s.phase == DrawerOpen {
		s.phase = DrawerClosing
		s.closeGen++
		gen := s.closeGen
		s.cfg.Scheduler.After(s.cfg.CloseDelay, func() {
			if s.closeGen == gen {
				s.open(item)
			}
		})
		return
	}

	// Closed, or closing with a teardown pending. Opening invalidates any
	// pending teardown.
	s.closeGen++
	s.open(item)
}

func (s *State[T]) open(item T) {
	s.selected = &item
	s.edited = nil
	s.original = nil
	if s.cfg.TrackEdits {
		edited := clone.MustOf(item)
		original := clone.MustOf(item)
		s.edited = &edited
		s.original = &original
	}
	s.validationErrs = map[string]string{}
	s.showDeleteConfirm = false
	s.phase = DrawerOpen
}

// Close starts the drawer teardown. The phase flips to closing immediately;
// the contents are cleared only after the close delay so the exit animation
// has something to render. A Select before the delay elapses cancels the
// clear.
func (s *State[T]) Close() {
	if s.phase != DrawerOpen {
		return
	}
	s.phase = DrawerClosing
	s.closeGen++
	gen := s.closeGen
	s.cfg.Scheduler.After(s.cfg.CloseDelay, func() {
		if s.closeGen != gen {
			return
		}
		s.phase = DrawerClosed
		s.selected = nil
		s.edited = nil
		s.original = nil
		s.validationErrs = map[string]string{}
		s.showDeleteConfirm = false
	})
}

// HasChanges reports whether the working copy diverged from the snapshot
// taken at selection. It is a deep structural comparison, so touching and
// reverting a field reports false.
func (s *State[T]) HasChanges() bool {
	if s.edited == nil || s.original == nil {
		return false
	}
	return !clone.Equal(*s.edited, *s.original)
}

// Undo discards edits by restoring the working copy from the snapshot.
func (s *State[T]) Undo() {
	if s.original == nil {
		return
	}
	restored := clone.MustOf(*s.original)
	s.edited = &restored
	s.validationErrs = map[string]string{}
}

// Save commits the working copy through the given function and, on success,
// advances the snapshot so HasChanges returns false again.
func (s *State[T]) Save(commit func(T) error) error {
	if s.edited == nil {
		return nil
	}
	if err := commit(*s.edited); err != nil {
		return err
	}
	committed := clone.MustOf(*s.edited)
	s.selected = &committed
	original := clone.MustOf(committed)
	s.original = &original
	return nil
}

// ValidationErrors returns the field-keyed error map for the edit session.
func (s *State[T]) ValidationErrors() map[string]string { return s.validationErrs }

// SetValidationError records or clears (empty message) one field error.
func (s *State[T]) SetValidationError(field, message string) {
	if message == "" {
		delete(s.validationErrs, field)
		return
	}
	s.validationErrs[field] = message
}

// DeleteConfirmVisible reports whether the delete confirmation is showing.
func (s *State[T]) DeleteConfirmVisible() bool { return s.showDeleteConfirm }

// SetDeleteConfirm shows or hides the delete confirmation.
func (s *State[T]) SetDeleteConfirm(visible bool) { s.showDeleteConfirm = visible }

// CheckHighlight reacts to the highlight deep-link parameter. When the
// parameter carries an ID that resolves and the drawer is closed, the drawer
// auto-opens on that item, the parameter is stripped with a Replace, and the
// value is remembered so re-renders observing a stale URL cannot re-trigger.
// Observing an empty parameter forgets the value, so applying the same ID
// again later triggers again.
func (s *State[T]) CheckHighlight() {
	if s.cfg.HighlightParam == "" {
		return
	}
	q := s.cfg.Nav.Query()
	value := q.Get(s.cfg.HighlightParam)
	if value == "" {
		s.consumedHighlight = ""
		return
	}
	if value == s.consumedHighlight || s.phase != DrawerClosed {
		return
	}
	item, ok := s.find(value)
	if !ok {
		return
	}

	s.consumedHighlight = value
	s.closeGen++
	s.open(item)

	q.Del(s.cfg.HighlightParam)
	s.cfg.Nav.Replace(q)

	if s.cfg.OnHighlight != nil {
		s.cfg.OnHighlight(item)
	}
}

func (s *State[T]) find(id string) (T, bool) {
	for _, item := range s.cfg.Source() {
		if s.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
