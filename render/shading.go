package render

import (
	tmath "trace-engine/math"
	"trace-engine/scene"
)

// Shader computes scalar illumination at a surface point. Results above 1
// are clamped by the renderer.
type Shader func(surface, eye tmath.Point3, normal tmath.Vec3, lights []scene.Light) float32

// Phong is a diffuse-only Phong shader: a constant ambient term plus one
// Lambertian contribution per light facing the surface.
func Phong(surface, eye tmath.Point3, normal tmath.Vec3, lights []scene.Light) float32 {
	const (
		ambientReflection = 0.1
		diffuseReflection = 1.0
	)

	illumination := float32(ambientReflection)
	for _, l := range lights {
		surfaceToLight := l.Position.Sub(surface).Normalize()
		if cos := surfaceToLight.Dot(normal); cos > 0 {
			illumination += cos * diffuseReflection
		}
	}
	return illumination
}
