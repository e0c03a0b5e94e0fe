// Package store implements the in-memory domain collections behind the
// schema editor: namespaces, fields, validators, types, objects, tags,
// endpoints, and API metadata. All collections are owned by a single Context
// and mutated synchronously by one logical writer at a time; there is no
// hidden global state.
//
// Error conventions: uniqueness collisions return a nil entity, deletes
// return a structured DeletionResult, and not-found updates return an error
// value. None of these conditions panic.
package store

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediancode/apidesign/ids"
	"github.com/mediancode/apidesign/toast"
	"github.com/mediancode/apidesign/types"
)

// GlobalNamespaceID identifies the one locked, well-known namespace.
const GlobalNamespaceID = "ns-global"

// Context owns every domain collection for one workspace. Lifecycle is app
// startup to app shutdown; layers that need a collection receive the Context
// by handle.
type Context struct {
	WorkspaceID string

	log    zerolog.Logger
	ids    *ids.Generator
	toasts toast.Sink
	fs     FileSystem
	locks  FileLockFactory

	Namespaces *NamespaceStore
	Fields     *FieldStore
	Validators *ValidatorStore
	Types      *TypeStore
	Objects    *ObjectStore
	Tags       *TagStore
	Endpoints  *EndpointStore
	Metadata   *MetadataStore
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the structured logger used for mutation logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Context) { c.log = log }
}

// WithToasts sets the notification sink.
func WithToasts(sink toast.Sink) Option {
	return func(c *Context) { c.toasts = sink }
}

// WithGenerator sets the identifier generator. Tests seed it for
// reproducible IDs.
func WithGenerator(g *ids.Generator) Option {
	return func(c *Context) { c.ids = g }
}

// WithFileSystem overrides the filesystem used for workspace persistence.
func WithFileSystem(fs FileSystem) Option {
	return func(c *Context) { c.fs = fs }
}

// WithLockFactory overrides the file lock factory used for workspace
// persistence.
func WithLockFactory(f FileLockFactory) Option {
	return func(c *Context) { c.locks = f }
}

// NewContext builds a workspace context with the global namespace and the
// inline validator library seeded.
func NewContext(opts ...Option) *Context {
	c := &Context{
		WorkspaceID: uuid.New().String(),
		log:         zerolog.New(os.Stderr).Level(zerolog.Disabled),
		ids:         ids.New(),
		toasts:      toast.Discard{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fs == nil {
		c.fs = &OSFileSystem{}
	}
	if c.locks == nil {
		c.locks = &FlockFactory{}
	}

	c.Namespaces = newNamespaceStore(c)
	c.Fields = &FieldStore{ctx: c}
	c.Validators = newValidatorStore(c)
	c.Types = &TypeStore{ctx: c}
	c.Objects = &ObjectStore{ctx: c}
	c.Tags = &TagStore{ctx: c}
	c.Endpoints = &EndpointStore{ctx: c}
	c.Metadata = &MetadataStore{ctx: c}
	return c
}

// IDs exposes the identifier generator to the state containers.
func (c *Context) IDs() *ids.Generator { return c.ids }

// Toasts exposes the notification sink.
func (c *Context) Toasts() toast.Sink { return c.toasts }

// Notify forwards to the toast sink with the default duration.
func (c *Context) Notify(message string, kind types.ToastKind) {
	c.toasts.Show(message, kind, 0)
}
