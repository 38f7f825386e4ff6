package ecs

// EntityId packs the owning archetype (upper 32 bits) and the slot inside
// that archetype (lower 32 bits). A slot is a row (low 24 bits) plus the
// row's generation (high 8 bits), so the id of a deleted entity stops
// resolving once its row is reused.
type EntityId uint64

const (
	rowBits = 24
	rowMask = 1<<rowBits - 1
)

// NewEntityId builds an EntityId from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func newSlotId(archetypeId uint32, row int, gen uint8) EntityId {
	return NewEntityId(archetypeId, uint32(gen)<<rowBits|uint32(row)&rowMask)
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Row returns the row of the entity inside its archetype.
func (e EntityId) Row() int {
	return int(e.Index() & rowMask)
}

// Generation returns how many times the row had been reused when the id was
// handed out, modulo 256.
func (e EntityId) Generation() uint8 {
	return uint8(e.Index() >> rowBits)
}
