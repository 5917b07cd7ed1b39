package game

// PseudoRand is a xorshift generator; games replay identically for a seed.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed uint64) *PseudoRand {
	r := &PseudoRand{}
	r.Seed(seed)
	return r
}

func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15 // xorshift is stuck at zero
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// Intn returns a number in [0, n). n must be positive.
func (r *PseudoRand) Intn(n int) int {
	return int(r.Uint64() % uint64(n))
}
