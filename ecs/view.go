package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	offset   uintptr
	typ      reflect.Type
	optional bool
	isId     bool
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
// A field of type EntityId receives the id of the entity being filled.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := range structType.NumField() {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{offset: field.Offset, isId: true})
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View struct fields must be pointer types or EntityId")
		}

		// Embedded fields are always required
		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		fields = append(fields, viewField{
			offset:   field.Offset,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}

	return &View[T]{storage: storage, fields: fields}
}

// matches reports whether archetype carries every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.isId || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) fill(ptr *T, archetype *Archetype, row int) bool {
	base := unsafe.Pointer(ptr)
	for _, f := range v.fields {
		fieldPtr := unsafe.Add(base, f.offset)
		if f.isId {
			*(*EntityId)(fieldPtr) = archetype.entity(row)
			continue
		}
		comp := archetype.componentPtr(f.typ, row)
		if comp == nil && !f.optional {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = comp
	}
	return true
}

// Fill populates ptr with component data for the given entity.
// Returns false if the entity is gone or missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	row, live := archetype.resolve(id)
	if !live {
		return false
	}
	return v.fill(ptr, archetype, row)
}

// Get returns a populated view struct for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for row := range archetype.rows() {
			if !v.fill(&result, archetype, row) {
				continue
			}
			if !yield(archetype.entity(row), result) {
				return
			}
		}
	}
}

// All yields every matching entity with its id, in archetype creation order.
func (v *View[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Iter yields every matching view struct.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Len counts the matching entities.
func (v *View[T]) Len() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
