package math

import "math"

// Mat4 is a row-major 4×4 affine transform. Points transform as M×p with p a
// column Point4, so the translation lives in column 3.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func Mat4FromRows(a, b, c, d [4]float32) Mat4 {
	return Mat4{a, b, c, d}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulPoint4 computes M×p with p as a column vector.
func (m Mat4) MulPoint4(p Point4) Point4 {
	var result Point4
	for i := 0; i < 4; i++ {
		var sum float32
		for j := 0; j < 4; j++ {
			sum += m[i][j] * p.Axis(j)
		}
		result.setAxis(i, sum)
	}
	return result
}

// MulPoint3 lifts p to w = 1, transforms, and projects back through w.
func (m Mat4) MulPoint3(p Point3) Point3 {
	return m.MulPoint4(p.ToPoint4()).ToPoint3()
}

// The builders below multiply onto the receiver from the right, so
// Mat4Identity().Translate(t).RotateX(a).Scale(s) applies scale first and
// translation last when the result multiplies a point.

// Translate appends a translation by v.
func (m Mat4) Translate(v Vec3) Mat4 {
	t := Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
	return m.Mul(t)
}

// Scale appends a per-axis scale by v.
func (m Mat4) Scale(v Vec3) Mat4 {
	s := Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(s)
}

// RotateX appends a rotation about the x axis by angleDeg degrees.
func (m Mat4) RotateX(angleDeg float32) Mat4 {
	s, c := sincosDeg(angleDeg)
	rx := Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(rx)
}

// RotateY appends a rotation about the y axis by angleDeg degrees.
func (m Mat4) RotateY(angleDeg float32) Mat4 {
	s, c := sincosDeg(angleDeg)
	ry := Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(ry)
}

// RotateZ appends a rotation about the z axis by angleDeg degrees.
func (m Mat4) RotateZ(angleDeg float32) Mat4 {
	s, c := sincosDeg(angleDeg)
	rz := Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(rz)
}

func sincosDeg(angleDeg float32) (sin, cos float32) {
	rad := float64(angleDeg) * math.Pi / 180
	s, c := math.Sincos(rad)
	return float32(s), float32(c)
}
