package whodle

import "testing"

func TestMulberry32Sequence(t *testing.T) {
	cases := []struct {
		seed uint32
		want []float64
	}{
		{0, []float64{0.26642920868471265, 0.0003297457005828619, 0.2232720274478197}},
		{42, []float64{0.6011037519201636, 0.44829055899754167}},
		{538935996, []float64{0.8469590155873448, 0.461506724357605, 0.5168404460418969}},
	}
	for _, c := range cases {
		rng := NewMulberry32(c.seed)
		for i, want := range c.want {
			if got := rng.Float64(); got != want {
				t.Fatalf("seed %d draw %d = %v, want %v", c.seed, i, got, want)
			}
		}
	}
}

func TestMulberry32Range(t *testing.T) {
	rng := NewMulberry32(7)
	for i := 0; i < 10000; i++ {
		f := rng.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("draw %d = %v, out of [0,1)", i, f)
		}
	}

	if got := rng.Intn(0); got != 0 {
		t.Fatalf("Intn(0)=%d, want 0", got)
	}
}
