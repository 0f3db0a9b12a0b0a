package engine

import "fmt"

// Seed selects the randomizer seed. Text takes precedence when non-empty.
type Seed struct {
	Text  string
	Value int64
}

func (s Seed) apply(r *RNG) {
	if s.Text != "" {
		r.SeedString(s.Text)
		return
	}
	r.Seed(s.Value)
}

// Randomizer supplies the piece sequence.
type Randomizer interface {
	// Draw returns the next piece.
	Draw() PieceType
	// Reseed resets the generator and any pending queue.
	Reseed(seed Seed)
}

// RandomizerKind names a Randomizer implementation in configuration.
type RandomizerKind string

const (
	RandomizerBag     RandomizerKind = "bag"
	RandomizerUniform RandomizerKind = "uniform"
)

// ParseRandomizerKind validates a configured randomizer name.
func ParseRandomizerKind(s string) (RandomizerKind, error) {
	switch RandomizerKind(s) {
	case RandomizerBag, RandomizerUniform:
		return RandomizerKind(s), nil
	case "":
		return RandomizerBag, nil
	}
	return "", fmt.Errorf("unknown randomizer %q", s)
}

// NewRandomizer builds the randomizer named by kind on top of rng.
func NewRandomizer(kind RandomizerKind, rng *RNG) Randomizer {
	if kind == RandomizerUniform {
		return &Uniform{rng: rng}
	}
	return NewBag(rng)
}

// Bag is the 7-bag randomizer: every run of seven draws starting at a refill
// boundary contains each piece exactly once.
type Bag struct {
	rng   *RNG
	queue []PieceType
}

// NewBag returns an empty bag drawing from rng.
func NewBag(rng *RNG) *Bag {
	return &Bag{rng: rng, queue: make([]PieceType, 0, len(PieceTypes))}
}

// Reseed implements Randomizer.
func (b *Bag) Reseed(seed Seed) {
	seed.apply(b.rng)
	b.queue = b.queue[:0]
}

// Draw implements Randomizer. Pieces are taken from the end of the queue.
func (b *Bag) Draw() PieceType {
	if len(b.queue) == 0 {
		b.refill()
	}
	last := len(b.queue) - 1
	p := b.queue[last]
	b.queue = b.queue[:last]
	return p
}

// Remaining returns a copy of the undrawn pieces, next draw last.
func (b *Bag) Remaining() []PieceType {
	out := make([]PieceType, len(b.queue))
	copy(out, b.queue)
	return out
}

// refill shuffles the catalog with Fisher-Yates from the top index down.
func (b *Bag) refill() {
	types := PieceTypes
	for i := len(types) - 1; i > 0; i-- {
		j := int(b.rng.Next() * float64(i+1))
		types[i], types[j] = types[j], types[i]
	}
	b.queue = append(b.queue, types[:]...)
}

// Uniform draws every piece independently with equal probability.
type Uniform struct {
	rng *RNG
}

// Reseed implements Randomizer.
func (u *Uniform) Reseed(seed Seed) {
	seed.apply(u.rng)
}

// Draw implements Randomizer.
func (u *Uniform) Draw() PieceType {
	return PieceTypes[u.rng.Intn(len(PieceTypes))]
}
