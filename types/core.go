// Package types holds the core entity types shared by every layer of the
// design-state core. Entities are plain values owned by their collection;
// cross-entity relationships are always by ID, never by pointer.
package types

// FieldType enumerates the primitive types a field can carry.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeUUID     FieldType = "uuid"
)

// FieldTypes lists all primitive field types in display order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString,
		FieldTypeInteger,
		FieldTypeFloat,
		FieldTypeBoolean,
		FieldTypeDatetime,
		FieldTypeUUID,
	}
}

// Namespace scopes every other entity. Exactly one namespace (the global one)
// is locked; locked namespaces cannot be renamed or deleted.
type Namespace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Locked      bool   `json:"locked"`
}

// FieldValidator is an ordered validator attachment on a field. Validators are
// referenced by name, not ID: the validator catalog is (namespace, name) keyed.
type FieldValidator struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Field is a reusable data element (e.g. a column or payload property).
// UsedInAPIs is a denormalized reverse-reference list of endpoint IDs,
// maintained by the endpoint store; it exists to block unsafe deletes and to
// display usage counts.
type Field struct {
	ID           string           `json:"id"`
	NamespaceID  string           `json:"namespaceId"`
	Name         string           `json:"name"`
	Type         FieldType        `json:"type"`
	Description  string           `json:"description,omitempty"`
	DefaultValue string           `json:"defaultValue,omitempty"`
	Validators   []FieldValidator `json:"validators,omitempty"`
	UsedInAPIs   []string         `json:"usedInApis,omitempty"`
}

// ValidatorKind classifies what a validator applies to.
type ValidatorKind string

const (
	ValidatorNumeric    ValidatorKind = "numeric"
	ValidatorString     ValidatorKind = "string"
	ValidatorCollection ValidatorKind = "collection"
)

// ValidatorCategory separates the seeded, read-only library entries from
// user-created ones.
type ValidatorCategory string

const (
	ValidatorInline ValidatorCategory = "inline"
	ValidatorCustom ValidatorCategory = "custom"
)

// Validator is a validation rule definition, keyed by (namespaceId, name).
type Validator struct {
	Name          string            `json:"name"`
	NamespaceID   string            `json:"namespaceId"`
	Kind          ValidatorKind     `json:"type"`
	Description   string            `json:"description,omitempty"`
	Category      ValidatorCategory `json:"category"`
	ParameterType string            `json:"parameterType,omitempty"`
	ExampleUsage  string            `json:"exampleUsage,omitempty"`
	DocsURL       string            `json:"pydanticDocsUrl,omitempty"`
}

// ObjectFieldReference ties a field into an object definition.
type ObjectFieldReference struct {
	FieldID  string `json:"fieldId"`
	Required bool   `json:"required"`
}

// ObjectDefinition is a composed payload shape referencing fields by ID.
// Broken field references are tolerated at read time (filtered out), never an
// error.
type ObjectDefinition struct {
	ID          string                 `json:"id"`
	NamespaceID string                 `json:"namespaceId"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Fields      []ObjectFieldReference `json:"fields,omitempty"`
	UsedInAPIs  []string               `json:"usedInApis,omitempty"`
}

// APIMetadata describes the API being designed. Modeled as one global record.
type APIMetadata struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	BaseURL     string `json:"baseUrl,omitempty"`
	ServerURL   string `json:"serverUrl,omitempty"`
}

// EndpointTag groups endpoints. Name is unique per namespace.
type EndpointTag struct {
	ID          string `json:"id"`
	NamespaceID string `json:"namespaceId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EndpointParameter is a path or query parameter on an endpoint.
type EndpointParameter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// ResponseShape describes the top-level shape of an endpoint response body.
type ResponseShape string

const (
	ResponseObject    ResponseShape = "object"
	ResponseList      ResponseShape = "list"
	ResponsePrimitive ResponseShape = "primitive"
)

// APIEndpoint is a single designed route. Path always begins with "/".
// PathParams is derived from Path: every "{name}" token has a corresponding
// parameter entry, reconciled whenever the path changes.
type APIEndpoint struct {
	ID                       string              `json:"id"`
	NamespaceID              string              `json:"namespaceId"`
	Method                   string              `json:"method"`
	Path                     string              `json:"path"`
	Description              string              `json:"description,omitempty"`
	TagID                    string              `json:"tagId,omitempty"`
	PathParams               []EndpointParameter `json:"pathParams,omitempty"`
	QueryParams              []EndpointParameter `json:"queryParams,omitempty"`
	RequestBodyFieldIDs      []string            `json:"requestBodyFieldIds,omitempty"`
	ResponseBodyFieldIDs     []string            `json:"responseBodyFieldIds,omitempty"`
	UseEnvelope              bool                `json:"useEnvelope"`
	ResponseShape            ResponseShape       `json:"responseShape,omitempty"`
	ResponseItemShape        ResponseShape       `json:"responseItemShape,omitempty"`
	ResponsePrimitiveFieldID string              `json:"responsePrimitiveFieldId,omitempty"`
	Expanded                 bool                `json:"expanded,omitempty"`
}
