package geometry

import (
	"math"

	tmath "trace-engine/math"
)

// Sphere is a center plus radius.
type Sphere struct {
	Center tmath.Point3
	Radius float32
}

func NewSphere(center tmath.Point3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// DistanceTo solves the ray/sphere quadratic geometrically: prefer the near
// root when it is in front of the origin, fall back to the far root when the
// origin is inside the sphere. A zero-radius sphere never intersects.
func (s Sphere) DistanceTo(r Ray) (float32, bool) {
	if s.Radius == 0 {
		return 0, false
	}
	l := s.Center.Sub(r.Origin)
	tca := l.Dot(r.Direction)
	dSquared := l.Dot(l) - tca*tca
	if dSquared > s.Radius*s.Radius {
		return 0, false
	}
	thc := float32(math.Sqrt(float64(s.Radius*s.Radius - dSquared)))
	t0 := tca - thc
	t1 := tca + thc
	switch {
	case t0 >= 0:
		return t0, true
	case t1 >= 0:
		return t1, true
	}
	return 0, false
}

func (s Sphere) Normal(surface tmath.Point3) tmath.Vec3 {
	return surface.Sub(s.Center).Normalize()
}

func (s Sphere) BoundingBox() AABB {
	return AABB{
		Min: s.Center.SubScalar(s.Radius),
		Max: s.Center.AddScalar(s.Radius),
	}
}

func (s Sphere) Centroid() tmath.Point3 {
	return s.Center
}

// Transform moves the center through m. The radius is not rescaled, so a
// scaling transform leaves the sphere's extent unchanged.
func (s Sphere) Transform(m tmath.Mat4) Primitive {
	return NewSphere(m.MulPoint3(s.Center), s.Radius)
}
