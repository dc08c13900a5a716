// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is returned when a table name is not registered.
var ErrUnknownTable = errors.New("unknown table")

// Registry holds the components of a process by table name.
type Registry struct {
	comps map[string]*Component
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{comps: make(map[string]*Component)}
}

// Add registers c under its definition name.
func (r *Registry) Add(c *Component) error {
	name := c.Definition().Name
	if name == "" {
		return errors.New("table name is empty")
	}
	if _, dup := r.comps[name]; dup {
		return fmt.Errorf("table %q registered twice", name)
	}
	r.comps[name] = c
	r.order = append(r.order, name)
	return nil
}

// Get returns the component registered as name.
func (r *Registry) Get(name string) (*Component, error) {
	c, ok := r.comps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return c, nil
}

// Names lists registered tables in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
