package geometry

import tmath "trace-engine/math"

// pointOnRayCos is how closely the origin-to-point direction must align with
// the ray direction for the point to count as lying on the ray.
const pointOnRayCos = 0.99999

// Point is a dimensionless primitive. It is mostly useful for exercising the
// spatial index: its bounding box is itself and its ray distance is the
// metric distance when the point lies (almost) on the ray.
type Point struct {
	P tmath.Point3
}

func NewPoint(p tmath.Point3) Point {
	return Point{P: p}
}

// DistanceTo reports the distance from the ray origin when the point is
// collinear with the ray, within a cosine tolerance.
func (p Point) DistanceTo(r Ray) (float32, bool) {
	toPoint := p.P.Sub(r.Origin)
	cos := toPoint.Normalize().Dot(r.Direction.Normalize())
	if cos > pointOnRayCos {
		return toPoint.Length(), true
	}
	return 0, false
}

// Normal is meaningless for a point; it returns the zero vector.
func (p Point) Normal(_ tmath.Point3) tmath.Vec3 {
	return tmath.Vec3Zero
}

func (p Point) BoundingBox() AABB {
	return AABB{Min: p.P, Max: p.P}
}

func (p Point) Centroid() tmath.Point3 {
	return p.P
}

func (p Point) Transform(m tmath.Mat4) Primitive {
	return NewPoint(m.MulPoint3(p.P))
}
