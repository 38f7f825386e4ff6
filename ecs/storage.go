package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns all entities and singletons of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype

	singletons     map[reflect.Type]reflect.Value
	singletonOrder []reflect.Type
}

// NewStorage creates an empty storage bound to registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity from the given component values (or pointers to
// them) and returns its id.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := sortedComponentTypes(components)
	id := archetypeHash(types)

	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
		s.order = append(s.order, archetype)
	}

	return archetype.insert(components)
}

// Delete removes the entity. It reports false when the id was not alive.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.remove(id)
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	_, live := archetype.resolve(id)
	return live
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	total := 0
	for _, a := range s.order {
		total += a.count
	}
	return total
}

// Archetype returns the archetype with the given id, if any.
func (s *Storage) Archetype(id uint32) (*Archetype, bool) {
	return s.archetypes.Get(id)
}

// Archetypes lists every archetype in creation order, including empty ones.
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, len(s.order))
	copy(out, s.order)
	return out
}

// GetComponent returns a pointer to the component of type t on the entity,
// or nil when the entity is gone or lacks the component.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	row, live := archetype.resolve(id)
	if !live {
		return nil
	}
	idx := archetype.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return archetype.columns[idx].get(row)
}

// HasComponent reports whether a live entity carries a component of type t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// ComponentReader is implemented by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}

// AddSingleton stores value as the world-wide instance of its type. An
// existing instance is overwritten in place, so outstanding pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	if existing, ok := s.singletons[t]; ok {
		existing.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = ptr
	s.singletonOrder = append(s.singletonOrder, t)
}

func (s *Storage) singletonPtr(t reflect.Type) unsafe.Pointer {
	ptr, ok := s.singletons[t]
	if !ok {
		return nil
	}
	return ptr.UnsafePointer()
}

// ReadSingleton points *target at the singleton of the matching type.
// target must be a **T. It reports false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}
	ptr, ok := s.singletons[rv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	rv.Elem().Set(ptr)
	return true
}

// Singletons yields every singleton as a pointer to its value, in the order
// they were added.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for _, t := range s.singletonOrder {
			if !yield(t, s.singletons[t].Interface()) {
				return
			}
		}
	}
}
