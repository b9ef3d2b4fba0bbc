/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

// Mulberry32 is a bit-exact port of the mulberry32 generator: a 32-bit
// accumulator stepped by a constant and scrambled by multiply-xorshift.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5

	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)

	return t ^ t>>14
}

// Float64 returns a float in [0,1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296
}

// Intn returns an int in [0,n), or 0 when n <= 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	i := int(m.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}

	return i
}
