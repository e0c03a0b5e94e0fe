package store

import "github.com/mediancode/apidesign/types"

// MetadataStore owns the single API metadata record.
type MetadataStore struct {
	ctx      *Context
	metadata types.APIMetadata
}

// Get returns the current metadata.
func (s *MetadataStore) Get() types.APIMetadata {
	return s.metadata
}

// MetadataUpdate is a partial update; nil fields are left untouched.
type MetadataUpdate struct {
	Title       *string
	Version     *string
	Description *string
	BaseURL     *string
	ServerURL   *string
}

// Update merges a partial update into the record.
func (s *MetadataStore) Update(upd MetadataUpdate) {
	if upd.Title != nil {
		s.metadata.Title = *upd.Title
	}
	if upd.Version != nil {
		s.metadata.Version = *upd.Version
	}
	if upd.Description != nil {
		s.metadata.Description = *upd.Description
	}
	if upd.BaseURL != nil {
		s.metadata.BaseURL = *upd.BaseURL
	}
	if upd.ServerURL != nil {
		s.metadata.ServerURL = *upd.ServerURL
	}
}
