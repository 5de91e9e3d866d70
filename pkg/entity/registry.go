package entity

import "fmt"

// Descriptor binds an entity name to a constructor for blank records.
type Descriptor struct {
	Name string
	New  func() Entity
}

// Registry holds entity descriptors in registration order.
// Registration happens at startup; the registry is read-only afterwards
// and safe for concurrent reads.
type Registry struct {
	order  []string
	byName map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds a descriptor for the entity produced by newFn.
// The name is taken from a blank instance.
func (r *Registry) Register(newFn func() Entity) error {
	proto := newFn()
	name := proto.EntityName()
	if name == "" {
		return fmt.Errorf("entity: register: empty name")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.byName[name] = Descriptor{Name: name, New: newFn}
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(newFn func() Entity) {
	if err := r.Register(newFn); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for a name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return d, nil
}

// All returns descriptors in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
