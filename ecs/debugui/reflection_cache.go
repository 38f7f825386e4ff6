package debugui

import (
	"reflect"
	"sync"
)

// fieldInfo describes one exported struct field.
type fieldInfo struct {
	Name  string
	Index int
}

type reflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func newReflectionCache() *reflectionCache {
	return &reflectionCache{fields: make(map[reflect.Type][]fieldInfo)}
}

// exported returns the exported fields of struct type t.
func (rc *reflectionCache) exported(t reflect.Type) []fieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, fieldInfo{Name: field.Name, Index: i})
		}
	}

	rc.fields[t] = fields
	return fields
}

var globalReflectionCache = newReflectionCache()
