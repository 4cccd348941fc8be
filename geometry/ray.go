package geometry

import tmath "trace-engine/math"

// Ray is a parametric ray origin + t·direction. The direction is not forced
// to unit length, but distances reported by DistanceTo are parametric, so
// callers that want metric distances should normalize.
type Ray struct {
	Origin    tmath.Point3
	Direction tmath.Vec3
}

func NewRay(origin tmath.Point3, direction tmath.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) tmath.Point3 {
	return r.Origin.AddVec(r.Direction.Mul(t))
}
