package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentRegistry knows how to build column storage for every component
// type a Storage may hold. Each Storage owns the registry it was created with.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as an entity component or singleton.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// column stores one component type for every row of an archetype. Row
// allocation is owned by the archetype; a column only holds values.
type column interface {
	set(row int, value any)
	reset(row int)
	ptr(row int) unsafe.Pointer
	get(row int) any
}

// blockColumn keeps values in fixed-size heap blocks so pointers handed out
// by views stay valid while the column grows.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
}

func (c *blockColumn[T]) slot(row int) *T {
	block := row / blockSize
	for block >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	return &c.blocks[block][row%blockSize]
}

func (c *blockColumn[T]) set(row int, value any) {
	switch v := value.(type) {
	case T:
		*c.slot(row) = v
	case *T:
		*c.slot(row) = *v
	default:
		panic(fmt.Sprintf("ecs: cannot store %T in column of %s", value, reflect.TypeFor[T]()))
	}
}

func (c *blockColumn[T]) reset(row int) {
	var zero T
	*c.slot(row) = zero
}

func (c *blockColumn[T]) ptr(row int) unsafe.Pointer {
	return unsafe.Pointer(c.slot(row))
}

func (c *blockColumn[T]) get(row int) any {
	return c.slot(row)
}
