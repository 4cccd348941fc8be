package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmath "trace-engine/math"
)

func TestTriangleDirectHit(t *testing.T) {
	tri := NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)
	ray := NewRay(tmath.NewPoint3(0, 0, 5), tmath.NewVec3(0, 0, -1))

	dist, ok := tri.DistanceTo(ray)
	require.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-5)
}

func TestTriangleMiss(t *testing.T) {
	tri := NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)
	ray := NewRay(tmath.NewPoint3(0, 10, 5), tmath.NewVec3(0, 0, -1))

	_, ok := tri.DistanceTo(ray)
	assert.False(t, ok)
}

func TestTriangleBackFaceCulled(t *testing.T) {
	tri := NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)
	// Approaching from behind flips the determinant sign
	ray := NewRay(tmath.NewPoint3(0, 0, -5), tmath.NewVec3(0, 0, 1))

	_, ok := tri.DistanceTo(ray)
	assert.False(t, ok)
}

func TestTriangleDegenerateNeverHits(t *testing.T) {
	// Collinear vertices: zero-area triangle must silently miss
	tri := NewTriangle(
		tmath.NewPoint3(0, 0, 0),
		tmath.NewPoint3(1, 1, 1),
		tmath.NewPoint3(2, 2, 2),
	)
	for i := 0; i < 50; i++ {
		dir := tmath.NewVec3(rand.Float32()*2-1, rand.Float32()*2-1, rand.Float32()*2-1).Normalize()
		_, ok := tri.DistanceTo(NewRay(tmath.NewPoint3(0, 0, 5), dir))
		assert.False(t, ok)
	}
}

func TestSphereNearRootPreferred(t *testing.T) {
	s := NewSphere(tmath.NewPoint3(0, 0, -5), 1)
	ray := NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1))

	dist, ok := s.DistanceTo(ray)
	require.True(t, ok)
	assert.InDelta(t, 4.0, dist, 1e-5)
}

func TestSphereOriginInsideUsesFarRoot(t *testing.T) {
	s := NewSphere(tmath.NewPoint3(0, 0, 0), 2)
	ray := NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1))

	dist, ok := s.DistanceTo(ray)
	require.True(t, ok)
	assert.InDelta(t, 2.0, dist, 1e-5)
}

func TestSphereBehindMisses(t *testing.T) {
	s := NewSphere(tmath.NewPoint3(0, 0, 5), 1)
	ray := NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1))

	_, ok := s.DistanceTo(ray)
	assert.False(t, ok)
}

func TestSphereNormal(t *testing.T) {
	s := NewSphere(tmath.NewPoint3(0, 0, 0), 2)
	n := s.Normal(tmath.NewPoint3(2, 0, 0))
	assert.InDelta(t, 1.0, n.X, 1e-5)
	assert.InDelta(t, 0.0, n.Y, 1e-5)
	assert.InDelta(t, 1.0, n.Length(), 1e-5)
}

func TestAABBUnion(t *testing.T) {
	a := NewAABB(tmath.NewPoint3(0, 0, 0), tmath.NewPoint3(1, 1, 1))
	b := NewAABB(tmath.NewPoint3(-1, 0.5, 0), tmath.NewPoint3(0.5, 2, 3))

	u := a.Union(b)
	assert.Equal(t, tmath.NewPoint3(-1, 0, 0), u.Min)
	assert.Equal(t, tmath.NewPoint3(1, 2, 3), u.Max)

	// Union with the empty box is identity, and union is commutative
	assert.Equal(t, a, EmptyAABB().Union(a))
	assert.Equal(t, a, a.Union(EmptyAABB()))
	assert.Equal(t, u, b.Union(a))
}

func TestAABBDistanceOutside(t *testing.T) {
	b := NewAABB(tmath.NewPoint3(-1, -1, -1), tmath.NewPoint3(1, 1, 1))
	ray := NewRay(tmath.NewPoint3(0, 0, 5), tmath.NewVec3(0, 0, -1))

	dist, ok := b.DistanceTo(ray)
	require.True(t, ok)
	assert.InDelta(t, 4.0, dist, 1e-5)
}

func TestAABBDistanceInsideReturnsExit(t *testing.T) {
	b := NewAABB(tmath.NewPoint3(-1, -1, -1), tmath.NewPoint3(1, 1, 1))
	ray := NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1))

	dist, ok := b.DistanceTo(ray)
	require.True(t, ok)
	assert.InDelta(t, 1.0, dist, 1e-5, "ray inside the box reports the exit distance")
}

func TestAABBDistanceMiss(t *testing.T) {
	b := NewAABB(tmath.NewPoint3(-1, -1, -1), tmath.NewPoint3(1, 1, 1))
	ray := NewRay(tmath.NewPoint3(0, 5, 5), tmath.NewVec3(0, 0, -1))

	_, ok := b.DistanceTo(ray)
	assert.False(t, ok)
}

func TestPointOnRay(t *testing.T) {
	p := NewPoint(tmath.NewPoint3(1, 1, 1))
	origin := tmath.NewPoint3(0, 0, 5)

	dir := p.P.Sub(origin).Normalize()
	dist, ok := p.DistanceTo(NewRay(origin, dir))
	require.True(t, ok)
	assert.InDelta(t, p.P.Sub(origin).Length(), dist, 1e-4)

	_, ok = p.DistanceTo(NewRay(origin, tmath.NewVec3(0, 0, -1)))
	assert.False(t, ok)
}

func TestCentroidInsideBoundingBox(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randPt := func() tmath.Point3 {
		return tmath.NewPoint3(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
	}

	prims := []Primitive{
		NewSphere(randPt(), rng.Float32()+0.1),
		NewPoint(randPt()),
	}
	for i := 0; i < 50; i++ {
		prims = append(prims, NewTriangle(randPt(), randPt(), randPt()))
	}

	for _, p := range prims {
		bb := p.BoundingBox()
		c := p.Centroid()
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, bb.Min.Axis(axis), c.Axis(axis))
			assert.GreaterOrEqual(t, bb.Max.Axis(axis), c.Axis(axis))
		}
	}
}

func TestTriangleTransform(t *testing.T) {
	tri := NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)
	moved := tri.Transform(tmath.Mat4Identity().Translate(tmath.NewVec3(0, 0, -10)))

	dist, ok := moved.DistanceTo(NewRay(tmath.NewPoint3(0, 0, 5), tmath.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.InDelta(t, 15.0, dist, 1e-4)
}

func TestSphereTransformKeepsRadius(t *testing.T) {
	s := NewSphere(tmath.NewPoint3(1, 0, 0), 2)
	scaled := s.Transform(tmath.Mat4Identity().Scale(tmath.NewVec3(3, 3, 3))).(Sphere)

	assert.Equal(t, float32(3), scaled.Center.X)
	assert.Equal(t, float32(2), scaled.Radius, "radius is not rescaled by Transform")
}
