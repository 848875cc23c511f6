package core

const (
	lehmerModulus    = 2147483647 // 2^31 - 1
	lehmerMultiplier = 48271
)

// Lehmer is a multiplicative linear congruential generator over the Mersenne
// prime 2^31-1. Two generators built from the same seed yield identical
// sequences; instances share no state.
type Lehmer struct {
	state uint64
}

// NewLehmer creates a generator from seed. The seed is reduced modulo m-1 and
// moved into [1, m-1] so zero is never reached.
func NewLehmer(seed int64) *Lehmer {
	s := seed % (lehmerModulus - 1)
	if s < 0 {
		s += lehmerModulus - 1
	}
	if s == 0 {
		s = lehmerModulus - 1
	}
	return &Lehmer{state: uint64(s)}
}

// Next advances the sequence and returns the new value in [1, 2^31-2].
func (l *Lehmer) Next() uint32 {
	l.state = l.state * lehmerMultiplier % lehmerModulus
	return uint32(l.state)
}

// Intn returns Next() modulo n, or 0 when n is not positive.
func (l *Lehmer) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(l.Next() % uint32(n))
}

// Uint8n returns a value in [0, n) as a cell state.
func (l *Lehmer) Uint8n(n int) uint8 {
	return uint8(l.Intn(n))
}
