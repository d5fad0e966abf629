// Package registry holds the fixed, ordered list of dashboard sections.
package registry

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/tuya/fastdata/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed sections.yml
var defaultSections []byte

// ErrEmpty is returned when a registry would contain no sections.
var ErrEmpty = errors.New("registry: no sections")

// Registry is an immutable ordered set of section descriptors.
type Registry struct {
	sections []model.SectionDescriptor
	byID     map[string]int
}

// New builds a registry from descriptors. IDs must be unique and non-empty.
func New(sections []model.SectionDescriptor) (*Registry, error) {
	if len(sections) == 0 {
		return nil, ErrEmpty
	}
	r := &Registry{
		sections: make([]model.SectionDescriptor, 0, len(sections)),
		byID:     make(map[string]int, len(sections)),
	}
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("registry: section %q has empty id", s.Title)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate section id %q", s.ID)
		}
		r.byID[s.ID] = len(r.sections)
		r.sections = append(r.sections, s)
	}
	return r, nil
}

// Parse decodes a YAML list of sections.
func Parse(data []byte) (*Registry, error) {
	var sections []model.SectionDescriptor
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("registry: decode sections: %w", err)
	}
	return New(sections)
}

// Default returns the built-in dashboard sections.
func Default() *Registry {
	r, err := Parse(defaultSections)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(err)
	}
	return r
}

// All returns a copy of the sections in display order.
func (r *Registry) All() []model.SectionDescriptor {
	return append([]model.SectionDescriptor(nil), r.sections...)
}

// Len returns the number of sections.
func (r *Registry) Len() int { return len(r.sections) }

// First returns the default section.
func (r *Registry) First() model.SectionDescriptor { return r.sections[0] }

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (model.SectionDescriptor, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return model.SectionDescriptor{}, false
	}
	return r.sections[idx], true
}

// Has reports whether id is a registered section.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Index returns the display position of id, or -1.
func (r *Registry) Index(id string) int {
	if idx, ok := r.byID[id]; ok {
		return idx
	}
	return -1
}

// Resolve returns the registered descriptor for id, or a bare {ID: id}
// descriptor when id is unknown.
func (r *Registry) Resolve(id string) model.SectionDescriptor {
	if s, ok := r.Lookup(id); ok {
		return s
	}
	return model.SectionDescriptor{ID: id}
}

// Title returns the human-readable title for id, or id itself when unknown.
func (r *Registry) Title(id string) string {
	if s, ok := r.Lookup(id); ok && s.Title != "" {
		return s.Title
	}
	return id
}
