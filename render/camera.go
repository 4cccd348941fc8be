package render

import (
	"math"

	"trace-engine/geometry"
	tmath "trace-engine/math"
)

// Camera maps pixel coordinates to world-space primary rays through a
// screen-to-world matrix: pixel (x, y) is carried to a point on the
// z = −1 plane, and the ray runs from the eye through that point. Pixel
// y grows upward; the Renderer flips rows when it writes the image.
type Camera struct {
	Eye           tmath.Point3
	screenToWorld tmath.Mat4
}

// NewCamera places the eye at the origin looking down −z with the given
// vertical field of view in degrees.
func NewCamera(width, height int, fovVertDeg float32) *Camera {
	w := float32(width)
	h := float32(height)
	aspect := w / h
	// Scale viewport coordinates to NDC, then onto the fov-scaled plane
	f := float32(math.Tan(float64(fovVertDeg) / 2 * math.Pi / 180))

	return &Camera{
		Eye: tmath.NewPoint3(0, 0, 0),
		screenToWorld: tmath.Mat4FromRows(
			[4]float32{2 * f * aspect / w, 0, 0, -f * aspect},
			[4]float32{0, 2 * f / h, 0, -f},
			[4]float32{0, 0, 1, 0},
			[4]float32{0, 0, 0, 1},
		),
	}
}

// PrimaryRay returns the normalized ray through pixel (x, y).
func (c *Camera) PrimaryRay(x, y int) geometry.Ray {
	aim := c.screenToWorld.MulPoint4(tmath.NewPoint4(float32(x), float32(y), -1, 1)).ToPoint3()
	return geometry.NewRay(c.Eye, aim.Sub(c.Eye).Normalize())
}
