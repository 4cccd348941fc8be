package scene

import tmath "trace-engine/math"

// Light is a point light.
type Light struct {
	Position  tmath.Point3
	Intensity float32
}

func NewLight(position tmath.Point3, intensity float32) Light {
	return Light{Position: position, Intensity: intensity}
}
