package terrain

import "math"

// Perlin is Ken Perlin's improved gradient noise over a seeded permutation.
// It is read-only after construction and safe for concurrent use.
type Perlin struct {
	perm [512]uint8
}

// NewPerlin builds a noise source whose permutation is shuffled from seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}

	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}

	// Fisher-Yates driven by a 64-bit LCG so the table is stable across Go releases.
	s := uint64(seed)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	for i := range p.perm {
		p.perm[i] = base[i&255]
	}
	return p
}

// Noise3 samples noise at (x, y, z). Output is roughly in [-1, 1] and is
// exactly 0 on integer lattice points.
func (p *Perlin) Noise3(x, y, z float64) float64 {
	return p.noise3(x, y, z, 0)
}

// noise3 is Noise3 with an extra hash offset so octaves decorrelate.
func (p *Perlin) noise3(x, y, z float64, seed int) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi := int(fx) & 255
	yi := int(fy) & 255
	zi := int(fz) & 255
	x -= fx
	y -= fy
	z -= fz

	u, v, w := fade(x), fade(y), fade(z)

	perm := &p.perm
	a := int(perm[(xi+seed)&255]) + yi
	aa := int(perm[a]) + zi
	ab := int(perm[a+1]) + zi
	b := int(perm[(xi+1+seed)&255]) + yi
	ba := int(perm[b]) + zi
	bb := int(perm[b+1]) + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(perm[aa], x, y, z), grad(perm[ba], x-1, y, z)),
			lerp(u, grad(perm[ab], x, y-1, z), grad(perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(perm[aa+1], x, y, z-1), grad(perm[ba+1], x-1, y, z-1)),
			lerp(u, grad(perm[ab+1], x, y-1, z-1), grad(perm[bb+1], x-1, y-1, z-1))))
}

// Turbulence3 sums the absolute value of successive octaves. Each octave
// multiplies frequency by lacunarity and amplitude by gain.
func (p *Perlin) Turbulence3(x, y, z, lacunarity, gain float64, octaves int) float64 {
	frequency := 1.0
	amplitude := 1.0
	sum := 0.0
	for i := 0; i < octaves; i++ {
		r := p.noise3(x*frequency, y*frequency, z*frequency, i) * amplitude
		sum += math.Abs(r)
		frequency *= lacunarity
		amplitude *= gain
	}
	return sum
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of 12 edge gradients from the low 4 bits of hash.
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
