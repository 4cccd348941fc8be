package geometry

import tmath "trace-engine/math"

// Primitive is the capability set ray traversal needs from any shape.
//
// DistanceTo reports the parametric distance along the ray at which the ray
// strikes the surface, with ok = false when there is no intersection.
// Numerically degenerate shapes (zero-area triangles, zero-radius spheres)
// never intersect; they return ok = false rather than NaN distances.
type Primitive interface {
	DistanceTo(r Ray) (t float32, ok bool)
	Normal(surface tmath.Point3) tmath.Vec3
	BoundingBox() AABB
	Centroid() tmath.Point3
	Transform(m tmath.Mat4) Primitive
}
