package lbvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trace-engine/geometry"
	tmath "trace-engine/math"
)

// bruteForceNearest is the reference the traversal must agree with: scan
// every primitive and keep the smallest distance.
func bruteForceNearest(prims []geometry.Primitive, r geometry.Ray) (Hit, bool) {
	best := Hit{}
	found := false
	for i, p := range prims {
		d, ok := p.DistanceTo(r)
		if !ok {
			continue
		}
		if !found || d < best.Distance {
			best = Hit{Index: i, Distance: d}
			found = true
		}
	}
	return best, found
}

func TestTraverseSingleTriangleHit(t *testing.T) {
	prims := []geometry.Primitive{geometry.NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)}
	tree := Build(prims, DefaultLeafCapacity)

	hit, ok := tree.Traverse(geometry.NewRay(tmath.NewPoint3(0, 0, 5), tmath.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.Equal(t, 0, hit.Index)
	assert.InDelta(t, 5.0, hit.Distance, 1e-5)
}

func TestTraverseMissAboveTriangle(t *testing.T) {
	prims := []geometry.Primitive{geometry.NewTriangle(
		tmath.NewPoint3(-1, -1, 0),
		tmath.NewPoint3(1, -1, 0),
		tmath.NewPoint3(0, 1, 0),
	)}
	tree := Build(prims, DefaultLeafCapacity)

	_, ok := tree.Traverse(geometry.NewRay(tmath.NewPoint3(0, 10, 5), tmath.NewVec3(0, 0, -1)))
	assert.False(t, ok)
}

func TestTraverseNearerSphereWins(t *testing.T) {
	prims := []geometry.Primitive{
		geometry.NewSphere(tmath.NewPoint3(0, 0, -10), 1),
		geometry.NewSphere(tmath.NewPoint3(0, 0, -5), 1),
	}
	tree := Build(prims, DefaultLeafCapacity)

	hit, ok := tree.Traverse(geometry.NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
	assert.InDelta(t, 4.0, hit.Distance, 1e-5)
}

func TestTraverseCubeCornerPoints(t *testing.T) {
	corners := []tmath.Point3{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: -1, Y: -1, Z: -1},
	}
	prims := pointPrims(corners...)
	tree := Build(prims, 2)
	origin := tmath.NewPoint3(0, 0, 4)

	// Straight through the cube's center: no corner lies on this ray
	_, ok := tree.Traverse(geometry.NewRay(origin, tmath.NewVec3(0, 0, -1)))
	assert.False(t, ok)

	// Aimed at each corner in turn, the hit is that corner at its metric
	// distance: √11 for the near (z=+1) face, √27 for the far (z=−1) face
	for i, c := range corners {
		toCorner := c.Sub(origin)
		ray := geometry.NewRay(origin, toCorner.Normalize())
		hit, ok := tree.Traverse(ray)
		require.Truef(t, ok, "corner %d", i)
		assert.Equalf(t, i, hit.Index, "corner %d", i)
		assert.InDeltaf(t, float64(toCorner.Length()), float64(hit.Distance), 1e-4, "corner %d", i)
		want := math.Sqrt(27)
		if c.Z > 0 {
			want = math.Sqrt(11)
		}
		assert.InDeltaf(t, want, float64(hit.Distance), 1e-4, "corner %d", i)
	}
}

func TestTraverseMatchesBruteForce(t *testing.T) {
	nTriangles, nRays := 10_000, 1_000
	if testing.Short() {
		nTriangles, nRays = 1_000, 200
	}

	rng := rand.New(rand.NewSource(2024))
	prims := randomTriangles(rng, nTriangles)
	tree := Build(prims, DefaultLeafCapacity)
	checkInvariants(t, tree)

	const tol = 1e-4
	for i := 0; i < nRays; i++ {
		// Origins outside the scene, aimed at a random point inside it
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		origin := tmath.NewPoint3(
			float32(3*math.Sin(phi)*math.Cos(theta)),
			float32(3*math.Sin(phi)*math.Sin(theta)),
			float32(3*math.Cos(phi)),
		)
		target := tmath.NewPoint3(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1)
		ray := geometry.NewRay(origin, target.Sub(origin).Normalize())

		want, wantOK := bruteForceNearest(prims, ray)
		got, gotOK := tree.Traverse(ray)

		require.Equalf(t, wantOK, gotOK, "ray %d", i)
		if !wantOK {
			continue
		}
		assert.InDeltaf(t, float64(want.Distance), float64(got.Distance), tol, "ray %d", i)
		if got.Index != want.Index {
			// A different index is only acceptable for a tie in distance
			d, ok := prims[got.Index].DistanceTo(ray)
			require.Truef(t, ok, "ray %d: winning primitive misses", i)
			assert.InDeltaf(t, float64(want.Distance), float64(d), tol, "ray %d", i)
		}
	}
}

func TestTraversePermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	prims := randomTriangles(rng, 300)

	perm := rng.Perm(len(prims))
	shuffled := make([]geometry.Primitive, len(prims))
	for to, from := range perm {
		shuffled[to] = prims[from]
	}

	orig := Build(prims, DefaultLeafCapacity)
	permuted := Build(shuffled, DefaultLeafCapacity)

	for i := 0; i < 200; i++ {
		origin := tmath.NewPoint3(0, 0, 3)
		target := tmath.NewPoint3(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1)
		ray := geometry.NewRay(origin, target.Sub(origin).Normalize())

		a, aOK := orig.Traverse(ray)
		b, bOK := permuted.Traverse(ray)

		require.Equal(t, aOK, bOK)
		if !aOK {
			continue
		}
		assert.InDelta(t, float64(a.Distance), float64(b.Distance), 1e-4)
		// Map the permuted winner back to its original index; it must be
		// the same primitive up to a distance tie
		if perm[b.Index] != a.Index {
			d, ok := prims[perm[b.Index]].DistanceTo(ray)
			require.True(t, ok)
			assert.InDelta(t, float64(a.Distance), float64(d), 1e-4)
		}
	}
}

func TestTraverseOriginInsideScene(t *testing.T) {
	// The ray starts inside the root bounding box; the enclosing subtree
	// must still be explored via the AABB exit-distance policy
	prims := []geometry.Primitive{
		geometry.NewSphere(tmath.NewPoint3(0, 0, -5), 1),
		geometry.NewSphere(tmath.NewPoint3(0, 0, 5), 1),
	}
	tree := Build(prims, 1)

	hit, ok := tree.Traverse(geometry.NewRay(tmath.NewPoint3(0, 0, 0), tmath.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.Equal(t, 0, hit.Index)
	assert.InDelta(t, 4.0, hit.Distance, 1e-5)
}

func BenchmarkTraverse(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	prims := randomTriangles(rng, 10_000)
	tree := Build(prims, DefaultLeafCapacity)
	ray := geometry.NewRay(tmath.NewPoint3(0, 0, 3), tmath.NewVec3(0, 0, -1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Traverse(ray)
	}
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	prims := randomTriangles(rng, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(prims, DefaultLeafCapacity)
	}
}
