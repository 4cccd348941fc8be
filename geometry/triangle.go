package geometry

import tmath "trace-engine/math"

// mtEpsilon is the Möller–Trumbore determinant cutoff. Rejecting det below
// it culls back faces and near-parallel rays in one test, and keeps
// degenerate triangles from producing NaN barycentrics.
const mtEpsilon = 0.001

// Triangle is an ordered vertex triple with a cached unit face normal.
type Triangle struct {
	V      [3]tmath.Point3
	normal tmath.Vec3
}

func NewTriangle(v0, v1, v2 tmath.Point3) Triangle {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	return Triangle{
		V:      [3]tmath.Point3{v0, v1, v2},
		normal: e1.Cross(e2).Normalize(),
	}
}

// mollerTrumbore returns (t, u, v): the parametric ray distance and the
// barycentric surface coordinates. One-sided: rays striking the back face
// are rejected by the determinant sign. No t ≥ 0 clamp is applied here.
func (tr Triangle) mollerTrumbore(r Ray) (t, u, v float32, ok bool) {
	e1 := tr.V[1].Sub(tr.V[0])
	e2 := tr.V[2].Sub(tr.V[0])
	pvec := r.Direction.Cross(e2)
	det := e1.Dot(pvec)

	if det < mtEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	tvec := r.Origin.Sub(tr.V[0])
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(e1)
	v = r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(qvec) * invDet
	return t, u, v, true
}

func (tr Triangle) DistanceTo(r Ray) (float32, bool) {
	t, _, _, ok := tr.mollerTrumbore(r)
	return t, ok
}

// Normal returns the cached face normal regardless of the surface point.
func (tr Triangle) Normal(_ tmath.Point3) tmath.Vec3 {
	return tr.normal
}

func (tr Triangle) BoundingBox() AABB {
	return AABB{
		Min: tmath.NewPoint3(
			min32(tr.V[0].X, min32(tr.V[1].X, tr.V[2].X)),
			min32(tr.V[0].Y, min32(tr.V[1].Y, tr.V[2].Y)),
			min32(tr.V[0].Z, min32(tr.V[1].Z, tr.V[2].Z)),
		),
		Max: tmath.NewPoint3(
			max32(tr.V[0].X, max32(tr.V[1].X, tr.V[2].X)),
			max32(tr.V[0].Y, max32(tr.V[1].Y, tr.V[2].Y)),
			max32(tr.V[0].Z, max32(tr.V[1].Z, tr.V[2].Z)),
		),
	}
}

// Centroid returns the arithmetic mean of the vertices.
func (tr Triangle) Centroid() tmath.Point3 {
	return tmath.NewPoint3(
		(tr.V[0].X+tr.V[1].X+tr.V[2].X)/3,
		(tr.V[0].Y+tr.V[1].Y+tr.V[2].Y)/3,
		(tr.V[0].Z+tr.V[1].Z+tr.V[2].Z)/3,
	)
}

// Transform applies m to each vertex and recomputes the face normal.
func (tr Triangle) Transform(m tmath.Mat4) Primitive {
	return NewTriangle(
		m.MulPoint3(tr.V[0]),
		m.MulPoint3(tr.V[1]),
		m.MulPoint3(tr.V[2]),
	)
}
