// Package noise provides deterministic 2-D noise sources, used to shape
// arc costs over terrain-like fields.
package noise

import (
	"math"
	"math/rand"
)

// Source is a deterministic 2-D noise field.
type Source interface {
	// Sample returns the raw noise value at the given coordinates.
	Sample(x, y float32) float32
	// SampleNormalized returns the noise value rescaled into [-1, 1].
	SampleNormalized(x, y float32) float32
}

// Perlin is classic 2-D gradient noise over a seeded permutation table.
// The zero value is not usable; call NewPerlin.
type Perlin struct {
	perm [512]uint8
}

var _ Source = (*Perlin)(nil)

// NewPerlin returns a gradient noise source whose field is fully
// determined by the seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	table := rand.New(rand.NewSource(seed)).Perm(256)
	for i := 0; i < 256; i++ {
		p.perm[i] = uint8(table[i])
		p.perm[i+256] = uint8(table[i])
	}
	return p
}

// Sample returns the raw noise value at the given coordinates. Values at
// integer lattice points are exactly zero; elsewhere the magnitude stays
// below sqrt(2)/2.
func (p *Perlin) Sample(x, y float32) float32 {
	fx := float64(x)
	fy := float64(y)
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	xi := int(x0) & 255
	yi := int(y0) & 255
	dx := fx - x0
	dy := fy - y0

	u := fade(dx)
	v := fade(dy)

	aa := p.perm[int(p.perm[xi])+yi]
	ab := p.perm[int(p.perm[xi])+yi+1]
	ba := p.perm[int(p.perm[xi+1])+yi]
	bb := p.perm[int(p.perm[xi+1])+yi+1]

	bottom := lerp(grad(aa, dx, dy), grad(ba, dx-1, dy), u)
	top := lerp(grad(ab, dx, dy-1), grad(bb, dx-1, dy-1), u)
	return float32(lerp(bottom, top, v))
}

// SampleNormalized returns the noise value rescaled into [-1, 1].
func (p *Perlin) SampleNormalized(x, y float32) float32 {
	v := float64(p.Sample(x, y)) * math.Sqrt2
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return float32(v)
}

const invSqrt2 = 0.7071067811865476

// The eight unit gradients of 2-D Perlin noise.
var gradients = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{invSqrt2, invSqrt2}, {-invSqrt2, invSqrt2},
	{invSqrt2, -invSqrt2}, {-invSqrt2, -invSqrt2},
}

func grad(hash uint8, x, y float64) float64 {
	g := gradients[hash&7]
	return g[0]*x + g[1]*y
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
