package market

const (
	lcgMul = 9301
	lcgInc = 49297
	lcgMod = 233280
)

// Rand is a linear congruential generator with explicit, owned state.
// Two Rand values built from the same seed yield the same sequence on
// every platform, which is what makes generated series reproducible.
type Rand struct {
	state int64
}

// NewRand returns a generator seeded with seed. The seed is reduced into
// [0, 233280) so that every output falls in [0, 1); seeds already in that
// range are used as-is.
func NewRand(seed int64) *Rand {
	s := seed % lcgMod
	if s < 0 {
		s += lcgMod
	}
	return &Rand{state: s}
}

// Next advances the generator and returns a value in [0, 1).
func (r *Rand) Next() float64 {
	r.state = (r.state*lcgMul + lcgInc) % lcgMod
	return float64(r.state) / lcgMod
}
