package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/plus3/pixitris/ecs"
)

// ArchetypeRow is one line of the archetype table.
type ArchetypeRow struct {
	ID         uint32
	Components []string
	Entities   int
}

// SortColumn selects the archetype table column to sort by.
type SortColumn int

const (
	ByID SortColumn = iota
	ByComponents
	ByEntities
)

// ArchetypeRows lists every archetype of storage, empty ones included.
func ArchetypeRows(storage *ecs.Storage) []ArchetypeRow {
	archetypes := storage.Archetypes()
	rows := make([]ArchetypeRow, 0, len(archetypes))
	for _, a := range archetypes {
		names := make([]string, len(a.Types()))
		for i, t := range a.Types() {
			names[i] = t.String()
		}
		rows = append(rows, ArchetypeRow{ID: a.ID(), Components: names, Entities: a.Len()})
	}
	return rows
}

// SortArchetypeRows orders rows in place. Ties fall back to the id.
func SortArchetypeRows(rows []ArchetypeRow, column SortColumn, ascending bool) {
	slices.SortStableFunc(rows, func(a, b ArchetypeRow) int {
		var c int
		switch column {
		case ByComponents:
			c = cmp.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		case ByEntities:
			c = cmp.Compare(a.Entities, b.Entities)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// FieldRow is one leaf value of an inspected component or singleton.
type FieldRow struct {
	Path  string
	Value string
}

const maxFieldDepth = 4

// Fields flattens the exported fields of v into dotted paths. Values with a
// String method are shown through it rather than expanded.
func Fields(v any) []FieldRow {
	var rows []FieldRow
	appendFields(&rows, "", reflect.ValueOf(v), 0)
	return rows
}

func appendFields(rows *[]FieldRow, path string, val reflect.Value, depth int) {
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			*rows = append(*rows, FieldRow{Path: path, Value: "nil"})
			return
		}
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct && depth < maxFieldDepth && stringer(val) == nil {
		fields := globalReflectionCache.exported(val.Type())
		if len(fields) > 0 {
			for _, f := range fields {
				name := f.Name
				if path != "" {
					name = path + "." + f.Name
				}
				appendFields(rows, name, val.Field(f.Index), depth+1)
			}
			return
		}
	}

	*rows = append(*rows, FieldRow{Path: path, Value: formatValue(val)})
}

func stringer(val reflect.Value) fmt.Stringer {
	if !val.IsValid() || !val.CanInterface() {
		return nil
	}
	if s, ok := val.Interface().(fmt.Stringer); ok {
		return s
	}
	if val.CanAddr() {
		if s, ok := val.Addr().Interface().(fmt.Stringer); ok {
			return s
		}
	}
	return nil
}

func formatValue(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	if s := stringer(val); s != nil {
		return s.String()
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Struct:
		return val.Type().String()
	case reflect.Func, reflect.Chan:
		return val.Type().String()
	}
	if !val.CanInterface() {
		return val.Type().String()
	}
	return fmt.Sprint(val.Interface())
}
