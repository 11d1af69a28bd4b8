package quotes

import (
	"math/rand"
	"time"
)

// Random picks quote indexes uniformly. Repeats are allowed.
type Random struct {
	rnd *rand.Rand
}

// NewRandom returns a Random seeded with the current time.
func NewRandom() *Random {
	return NewRandomSeed(time.Now().UnixNano())
}

// NewRandomSeed returns a Random with a fixed seed.
func NewRandomSeed(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns an index in [0, n). It returns 0 when n <= 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rnd.Intn(n)
}
