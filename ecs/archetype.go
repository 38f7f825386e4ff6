package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Archetype holds every entity that has exactly the same set of component
// types. Rows are reused after deletion; each reuse bumps the row's
// generation so stale ids no longer resolve.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	alive   []bool
	gens    []uint8
	free    []int
	count   int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of the archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) >= 0
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

func (a *Archetype) insert(components []any) EntityId {
	var row int
	if n := len(a.free); n > 0 {
		row = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		row = len(a.alive)
		if row > rowMask {
			panic("ecs: archetype row limit reached")
		}
		a.alive = append(a.alive, false)
		a.gens = append(a.gens, 0)
	}

	for _, comp := range components {
		a.columns[a.columnIndex(componentType(comp))].set(row, comp)
	}
	a.alive[row] = true
	a.count++
	return a.entity(row)
}

func (a *Archetype) remove(id EntityId) bool {
	row, ok := a.resolve(id)
	if !ok {
		return false
	}
	for _, col := range a.columns {
		col.reset(row)
	}
	a.alive[row] = false
	a.gens[row]++
	a.free = append(a.free, row)
	a.count--
	return true
}

func (a *Archetype) live(row int) bool {
	return row >= 0 && row < len(a.alive) && a.alive[row]
}

// entity returns the current id of a row.
func (a *Archetype) entity(row int) EntityId {
	return newSlotId(a.id, row, a.gens[row])
}

// resolve maps id to its row when the id still names a live entity.
func (a *Archetype) resolve(id EntityId) (int, bool) {
	row := id.Row()
	if !a.live(row) || a.gens[row] != id.Generation() {
		return 0, false
	}
	return row, true
}

func (a *Archetype) componentPtr(t reflect.Type, row int) unsafe.Pointer {
	idx := a.columnIndex(t)
	if idx < 0 || !a.live(row) {
		return nil
	}
	return a.columns[idx].ptr(row)
}

// rows yields the index of every live row in ascending order.
func (a *Archetype) rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for row, ok := range a.alive {
			if ok && !yield(row) {
				return
			}
		}
	}
}

// Iter yields the id of every live entity in the archetype.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for row := range a.rows() {
			if !yield(a.entity(row)) {
				return
			}
		}
	}
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// sortedComponentTypes returns the component types of components ordered by
// name, rejecting kinds that cannot be stored by value.
func sortedComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, t) {
			panic("ecs: duplicate component type " + t.String())
		}
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
	return types
}

// archetypeHash is FNV-1a over the sorted type names, so ids are stable
// between runs.
func archetypeHash(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)
	h := offset
	for _, t := range types {
		for _, b := range []byte(typeKey(t)) {
			h ^= uint32(b)
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}
	return h
}
