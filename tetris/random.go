package tetris

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Randomizer produces the sequence of shapes to play.
type Randomizer interface {
	Next() ShapeID
}

const (
	RandomUniform = "uniform"
	RandomBag     = "bag"
)

// NewSeed draws a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform picks every shape independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

func NewUniform(seed uint64) *Uniform {
	return &Uniform{rng: newRand(seed)}
}

func (u *Uniform) Next() ShapeID {
	return ShapeID(u.rng.IntN(NumShapes))
}

// Bag deals all seven shapes in a shuffled order before repeating any.
type Bag struct {
	rng *rand.Rand
	bag []ShapeID
}

func NewBag(seed uint64) *Bag {
	return &Bag{rng: newRand(seed)}
}

func (b *Bag) Next() ShapeID {
	if len(b.bag) == 0 {
		b.bag = []ShapeID{ShapeI, ShapeZ, ShapeS, ShapeO, ShapeJ, ShapeL, ShapeT}
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	next := b.bag[0]
	b.bag = b.bag[1:]
	return next
}

// NewRandomizer builds the randomizer named kind. A zero seed is replaced by
// one from NewSeed.
func NewRandomizer(kind string, seed uint64) (Randomizer, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	switch kind {
	case RandomUniform, "":
		return NewUniform(seed), nil
	case RandomBag:
		return NewBag(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRandomizer, kind)
}

// Queue buffers upcoming shapes so they can be previewed.
type Queue struct {
	src      Randomizer
	upcoming []ShapeID
}

func NewQueue(src Randomizer) *Queue {
	return &Queue{src: src}
}

// Next removes and returns the next shape.
func (q *Queue) Next() ShapeID {
	if len(q.upcoming) == 0 {
		return q.src.Next()
	}
	next := q.upcoming[0]
	q.upcoming = q.upcoming[1:]
	return next
}

// Preview returns the next n shapes without consuming them.
func (q *Queue) Preview(n int) []ShapeID {
	for len(q.upcoming) < n {
		q.upcoming = append(q.upcoming, q.src.Next())
	}
	out := make([]ShapeID, n)
	copy(out, q.upcoming)
	return out
}
