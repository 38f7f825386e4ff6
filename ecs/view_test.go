package ecs_test

import (
	"testing"

	"github.com/plus3/pixitris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movable struct {
	ecs.EntityId
	*Position
	*Velocity
	Health *Health `ecs:"optional"`
}

func TestViewFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	full := storage.Spawn(Position{X: 1}, Velocity{DX: 2}, Health{Current: 3})
	partial := storage.Spawn(Position{X: 4}, Velocity{DX: 5})
	static := storage.Spawn(Position{X: 6})

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, full, item.EntityId)
	require.NotNil(t, item.Health)
	assert.Equal(t, 3, item.Health.Current)

	item = view.Get(partial)
	require.NotNil(t, item)
	assert.Nil(t, item.Health)
	assert.Equal(t, float32(5), item.DX)

	assert.Nil(t, view.Get(static))

	storage.Delete(partial)
	assert.Nil(t, view.Get(partial))
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	for item := range view.Iter() {
		item.X += item.DX
	}
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	a := storage.Spawn(Position{X: 1}, Velocity{})
	b := storage.Spawn(Position{X: 2}, Velocity{}, Health{})
	storage.Spawn(Position{X: 3})
	c := storage.Spawn(Position{X: 4}, Velocity{})

	var ids []ecs.EntityId
	for id, item := range view.All() {
		assert.Equal(t, id, item.EntityId)
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{a, c, b}, ids, "archetypes iterate in creation order, rows ascending")
	assert.Equal(t, 3, view.Len())
}

func TestViewRejectsBadStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Position](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQueryCaching(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { query.Iter() })

	storage.Spawn(Position{X: 1})
	query.Execute()
	assert.Equal(t, 1, query.Len())

	// new archetypes are picked up on the next Execute
	storage.Spawn(Position{X: 2}, Name("two"))
	assert.Equal(t, 1, query.Len())
	query.Execute()
	assert.Equal(t, 2, query.Len())

	first, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, float32(1), first.X)

	sum := float32(0)
	for item := range query.Iter() {
		sum += item.X
	}
	assert.Equal(t, float32(3), sum)

	empty := ecs.NewQuery[struct{ *Health }](storage)
	empty.Execute()
	_, ok = empty.First()
	assert.False(t, ok)
}
