package geometry

import (
	"fmt"
	"math"

	tmath "trace-engine/math"
)

// AABB is an axis-aligned bounding box. The zero-volume empty box returned
// by EmptyAABB is the identity of Union, so boxes can be accumulated from it.
type AABB struct {
	Min, Max tmath.Point3
}

// EmptyAABB returns the empty box sentinel: min at +∞, max at −∞.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: tmath.NewPoint3(inf, inf, inf),
		Max: tmath.NewPoint3(-inf, -inf, -inf),
	}
}

func NewAABB(min, max tmath.Point3) AABB {
	return AABB{Min: min, Max: max}
}

// Union returns the smallest box enclosing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: tmath.NewPoint3(
			min32(b.Min.X, other.Min.X),
			min32(b.Min.Y, other.Min.Y),
			min32(b.Min.Z, other.Min.Z),
		),
		Max: tmath.NewPoint3(
			max32(b.Max.X, other.Max.X),
			max32(b.Max.Y, other.Max.Y),
			max32(b.Max.Z, other.Max.Z),
		),
	}
}

func (b AABB) String() string {
	return fmt.Sprintf("[%g, %g, %g],[%g, %g, %g]",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

// DistanceTo intersects the ray with the box by the slab method. When the
// ray originates inside the box (or past the near slab, tmin < 0) it reports
// the exit distance tmax instead, so a hierarchy node containing the origin
// still tests as hit. That makes this a traversal query, not a general
// surface-distance query.
func (b AABB) DistanceTo(r Ray) (float32, bool) {
	tmin := (b.Min.X - r.Origin.X) / r.Direction.X
	tmax := (b.Max.X - r.Origin.X) / r.Direction.X
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}

	tymin := (b.Min.Y - r.Origin.Y) / r.Direction.Y
	tymax := (b.Max.Y - r.Origin.Y) / r.Direction.Y
	if tymin > tymax {
		tymin, tymax = tymax, tymin
	}

	if tmin > tymax || tymin > tmax {
		return 0, false
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin := (b.Min.Z - r.Origin.Z) / r.Direction.Z
	tzmax := (b.Max.Z - r.Origin.Z) / r.Direction.Z
	if tzmin > tzmax {
		tzmin, tzmax = tzmax, tzmin
	}

	if tmin > tzmax || tzmin > tmax {
		return 0, false
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// Normal is unspecified for a box; traversal never asks for it.
func (b AABB) Normal(_ tmath.Point3) tmath.Vec3 {
	return tmath.Vec3Zero
}

func (b AABB) BoundingBox() AABB {
	return b
}

// Centroid returns the midpoint of the box.
func (b AABB) Centroid() tmath.Point3 {
	return tmath.NewPoint3(
		(b.Min.X+b.Max.X)*0.5,
		(b.Min.Y+b.Max.Y)*0.5,
		(b.Min.Z+b.Max.Z)*0.5,
	)
}

func (b AABB) Transform(m tmath.Mat4) Primitive {
	return NewAABB(m.MulPoint3(b.Min), m.MulPoint3(b.Max))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
