package store

import (
	"fmt"
	"strings"

	"github.com/mediancode/apidesign/internal/validation"
	"github.com/mediancode/apidesign/types"
)

// ValidatorStore owns the validator catalog, keyed by (namespaceId, name).
// Inline entries form the seeded, read-only library; custom entries are
// user-creatable and deletable.
type ValidatorStore struct {
	ctx        *Context
	validators []types.Validator
}

const pydanticDocs = "https://docs.pydantic.dev/latest/concepts/fields/"

func newValidatorStore(c *Context) *ValidatorStore {
	s := &ValidatorStore{ctx: c}
	seed := []types.Validator{
		{Name: "min_length", Kind: types.ValidatorString, ParameterType: "integer",
			Description: "Minimum string length", ExampleUsage: "min_length=3"},
		{Name: "max_length", Kind: types.ValidatorString, ParameterType: "integer",
			Description: "Maximum string length", ExampleUsage: "max_length=255"},
		{Name: "pattern", Kind: types.ValidatorString, ParameterType: "regex",
			Description: "Regular expression the value must match", ExampleUsage: `pattern=r"^[a-z]+$"`},
		{Name: "gt", Kind: types.ValidatorNumeric, ParameterType: "number",
			Description: "Value must be greater than", ExampleUsage: "gt=0"},
		{Name: "ge", Kind: types.ValidatorNumeric, ParameterType: "number",
			Description: "Value must be greater than or equal to", ExampleUsage: "ge=0"},
		{Name: "lt", Kind: types.ValidatorNumeric, ParameterType: "number",
			Description: "Value must be less than", ExampleUsage: "lt=100"},
		{Name: "le", Kind: types.ValidatorNumeric, ParameterType: "number",
			Description: "Value must be less than or equal to", ExampleUsage: "le=100"},
		{Name: "multiple_of", Kind: types.ValidatorNumeric, ParameterType: "number",
			Description: "Value must be a multiple of", ExampleUsage: "multiple_of=5"},
		{Name: "min_items", Kind: types.ValidatorCollection, ParameterType: "integer",
			Description: "Minimum number of items", ExampleUsage: "min_items=1"},
		{Name: "max_items", Kind: types.ValidatorCollection, ParameterType: "integer",
			Description: "Maximum number of items", ExampleUsage: "max_items=50"},
	}
	for _, v := range seed {
		v.NamespaceID = GlobalNamespaceID
		v.Category = types.ValidatorInline
		v.DocsURL = pydanticDocs
		s.validators = append(s.validators, v)
	}
	return s
}

// All returns the validators in insertion order.
func (s *ValidatorStore) All() []types.Validator {
	out := make([]types.Validator, len(s.validators))
	copy(out, s.validators)
	return out
}

// Get returns the validator keyed by (namespaceID, name), or nil. The name
// match is case-insensitive, like every uniqueness rule in the store.
func (s *ValidatorStore) Get(namespaceID, name string) *types.Validator {
	for i := range s.validators {
		if s.validators[i].NamespaceID == namespaceID &&
			validation.EqualFold(s.validators[i].Name, name) {
			v := s.validators[i]
			return &v
		}
	}
	return nil
}

// ByNamespace returns the validators scoped to a namespace.
func (s *ValidatorStore) ByNamespace(namespaceID string) []types.Validator {
	var out []types.Validator
	for _, v := range s.validators {
		if v.NamespaceID == namespaceID {
			out = append(out, v)
		}
	}
	return out
}

// CustomOptions carries the optional attributes for Create.
type CustomOptions struct {
	Kind          types.ValidatorKind
	Description   string
	ParameterType string
	ExampleUsage  string
	DocsURL       string
}

// Create adds a custom validator. The (namespace, name) key is unique
// case-insensitively; a collision returns nil.
func (s *ValidatorStore) Create(name, namespaceID string, opts CustomOptions) *types.Validator {
	if validation.ValidateName(name, "validator") != nil {
		return nil
	}
	if s.Get(namespaceID, name) != nil {
		return nil
	}
	if opts.Kind == "" {
		opts.Kind = types.ValidatorString
	}
	v := types.Validator{
		Name:          name,
		NamespaceID:   namespaceID,
		Kind:          opts.Kind,
		Description:   opts.Description,
		Category:      types.ValidatorCustom,
		ParameterType: opts.ParameterType,
		ExampleUsage:  opts.ExampleUsage,
		DocsURL:       opts.DocsURL,
	}
	s.validators = append(s.validators, v)
	s.ctx.log.Debug().Str("validator", name).Str("namespace", namespaceID).Msg("validator created")
	return &v
}

// Delete removes a custom validator. Inline library entries are read-only,
// and a validator still attached to fields is kept.
func (s *ValidatorStore) Delete(namespaceID, name string) types.DeletionResult {
	for i := range s.validators {
		v := s.validators[i]
		if v.NamespaceID != namespaceID || !validation.EqualFold(v.Name, name) {
			continue
		}
		if v.Category == types.ValidatorInline {
			return types.DeletionBlocked(fmt.Sprintf(
				"Cannot delete validator %q: it is a read-only library entry", v.Name))
		}
		if n := s.attachedFieldCount(namespaceID, v.Name); n > 0 {
			return types.DeletionBlocked(fmt.Sprintf(
				"Cannot delete validator %q: attached to %d field(s)", v.Name, n))
		}
		s.validators = append(s.validators[:i], s.validators[i+1:]...)
		s.ctx.log.Debug().Str("validator", v.Name).Msg("validator deleted")
		return types.Deleted(fmt.Sprintf("Deleted validator %q", v.Name))
	}
	return types.DeletionBlocked(fmt.Sprintf("validator not found: %s", name))
}

// Search filters validators by a case-insensitive substring match over name,
// description, kind, and example usage.
func (s *ValidatorStore) Search(validators []types.Validator, query string) []types.Validator {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return validators
	}
	var out []types.Validator
	for _, v := range validators {
		if containsFold(v.Name, query) ||
			containsFold(v.Description, query) ||
			containsFold(string(v.Kind), query) ||
			containsFold(v.ExampleUsage, query) {
			out = append(out, v)
		}
	}
	return out
}

func (s *ValidatorStore) attachedFieldCount(namespaceID, name string) int {
	count := 0
	for _, f := range s.ctx.Fields.fields {
		if f.NamespaceID != namespaceID {
			continue
		}
		for _, fv := range f.Validators {
			if validation.EqualFold(fv.Name, name) {
				count++
				break
			}
		}
	}
	return count
}
